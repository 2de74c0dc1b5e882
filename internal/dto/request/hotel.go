package request

type CreateHotelRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=150"`
	City          string  `json:"city" validate:"required,max=100"`
	Address       string  `json:"address" validate:"required"`
	Description   *string `json:"description,omitempty"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
}

type UpdateHotelStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive pending_approval suspended"`
}

type HotelListRequest struct {
	PaginatedRequest
	City *string
}
