package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HotelHandler struct {
	service usecase.HotelService
	log     *zap.Logger
}

func NewHotelHandler(service usecase.HotelService, log *zap.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log.With(zap.String("handler", "hotel")),
	}
}

// ListHotels handles GET /api/hotels?city=&page=&per_page=
func (h *HotelHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.HotelListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		City: utils.OptionalString(query.Get("city")),
	}

	hotels, err := h.service.ListHotels(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list hotels")
		return
	}

	utils.ResponseSuccess(w, "success", hotels)
}

// GetHotel handles GET /api/hotels/{id}
func (h *HotelHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.service.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get hotel")
		return
	}

	utils.ResponseSuccess(w, "success", hotel)
}

// CreateHotel handles POST /api/vendor/hotels
func (h *HotelHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateHotelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hotel, err := h.service.CreateHotel(r.Context(), vendorID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hotel")
		return
	}

	utils.ResponseCreated(w, "Hotel submitted for approval", hotel)
}

// UpdateHotelStatus handles PUT /api/admin/hotels/{id}/status
func (h *HotelHandler) UpdateHotelStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateHotelStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hotel, err := h.service.UpdateHotelStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update hotel status")
		return
	}

	utils.ResponseSuccess(w, "Hotel status updated", hotel)
}
