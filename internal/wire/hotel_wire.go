package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHotel(r chi.Router, hotelHandler *adaptor.HotelHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/hotels", hotelHandler.ListHotels)
	r.Get("/api/hotels/{id}", hotelHandler.GetHotel)

	// ==================== VENDOR ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.RequireRole(log, entity.RoleVendor),
	).Post("/api/vendor/hotels", hotelHandler.CreateHotel)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.RequireRole(log, entity.RoleAdmin),
	).Put("/api/admin/hotels/{id}/status", hotelHandler.UpdateHotelStatus)
}
