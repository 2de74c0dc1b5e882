package usecase

import "errors"

var (
	ErrInvalidID         = errors.New("invalid id")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("already exists")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidGuestCount = errors.New("at least one adult is required")
	ErrRoomsUnavailable  = errors.New("not enough rooms available for the selected dates")
	ErrHotelUnavailable  = errors.New("hotel is not accepting bookings")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrImmutable         = errors.New("booking can no longer be modified")
	ErrInvalidStatus     = errors.New("invalid status")
)
