package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	deps Deps,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, log)

	r.Route("/api/hotel-bookings", func(r chi.Router) {
		r.Use(auth)

		// ==================== ADMIN ROUTES ====================
		// registered before /{id} so "admin" is never read as a booking id
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleAdmin))

			r.Get("/all", bookingHandler.GetAllBookings)
			r.Put("/{id}/status", bookingHandler.UpdateStatusByAdmin)
		})

		// ==================== USER ROUTES ====================
		r.With(
			middleware.RequireRole(log, entity.RoleUser),
			middleware.RateLimit(config.RateLimit, deps.Redis, log),
		).Post("/", bookingHandler.CreateBooking)

		r.With(middleware.RequireRole(log, entity.RoleUser)).Get("/", bookingHandler.GetUserBookings)
		r.With(middleware.RequireRole(log, entity.RoleUser)).Put("/{id}/cancel", bookingHandler.CancelBooking)

		// owner check happens in the service; admins may read any booking
		r.With(middleware.RequireRole(log, entity.RoleUser, entity.RoleAdmin)).Get("/{id}", bookingHandler.GetBookingByID)
	})

	// ==================== VENDOR ROUTES ====================
	r.Route("/api/vendor/bookings", func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, entity.RoleVendor))

		r.Get("/", bookingHandler.GetVendorBookings)
		r.Put("/{id}/status", bookingHandler.UpdateStatusByVendor)
	})
}
