package adaptor

import (
	"net/http"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/hotel-bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// GetUserBookings handles GET /api/hotel-bookings?status=&page=&per_page=
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), parseBookingList(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/hotel-bookings/{id}; owner or admin
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	booking, err := h.service.GetBookingByID(r.Context(), chi.URLParam(r, "id"), userID.String(), entity.UserRole(role))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/hotel-bookings/{id}/cancel. The body is optional.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CancelBookingRequest
	if !decodeOptional(w, r, &req) {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// ==================== VENDOR METHODS ====================

// GetVendorBookings handles GET /api/vendor/bookings
func (h *BookingHandler) GetVendorBookings(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetVendorBookings(r.Context(), vendorID.String(), parseBookingList(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get vendor bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateStatusByVendor handles PUT /api/vendor/bookings/{id}/status
func (h *BookingHandler) UpdateStatusByVendor(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.VendorUpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateStatusByVendor(r.Context(), chi.URLParam(r, "id"), vendorID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated successfully", booking)
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/hotel-bookings/admin/all?status=&hotel_id=
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context(), parseBookingList(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateStatusByAdmin handles PUT /api/hotel-bookings/admin/{id}/status
func (h *BookingHandler) UpdateStatusByAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.AdminUpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateStatusByAdmin(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "admin update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated successfully", booking)
}

func parseBookingList(r *http.Request) *request.BookingListRequest {
	query := r.URL.Query()
	return &request.BookingListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status:  utils.OptionalString(query.Get("status")),
		HotelID: utils.OptionalString(query.Get("hotel_id")),
	}
}
