package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Hotel   HotelService
	Booking BookingService
}

// NewService builds every service. publisher may be nil when no broker is configured.
func NewService(repo *repository.Repository, config *utils.Config, publisher EventPublisher, log *zap.Logger) *Service {
	bookingOpts := []BookingOption{}
	if publisher != nil {
		bookingOpts = append(bookingOpts, WithPublisher(publisher))
	}

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Hotel:   NewHotelService(repo.Hotel, log),
		Booking: NewBookingService(repo, log, bookingOpts...),
	}
}
