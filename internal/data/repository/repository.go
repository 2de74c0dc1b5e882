package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Hotel   HotelRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Hotel:   NewHotelRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
