package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Hotel   *HotelHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Hotel:   NewHotelHandler(service.Hotel, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// decodeAndValidate reads a JSON body into dst and runs struct validation,
// writing the 400 response itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// decodeOptional is decodeAndValidate for bodies the client may omit. An empty
// body leaves dst at its zero value, whatever the Content-Length says.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// handleServiceError maps usecase sentinels to HTTP statuses. Anything
// unrecognised is logged and hidden behind a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidID),
		errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrInvalidGuestCount),
		errors.Is(err, usecase.ErrRoomsUnavailable),
		errors.Is(err, usecase.ErrHotelUnavailable),
		errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrImmutable),
		errors.Is(err, usecase.ErrInvalidStatus):
		log.Debug(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
