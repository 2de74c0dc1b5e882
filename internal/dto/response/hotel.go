package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type HotelResponse struct {
	ID            string             `json:"id"`
	VendorID      string             `json:"vendor_id"`
	Name          string             `json:"name"`
	City          string             `json:"city"`
	Address       string             `json:"address"`
	Description   *string            `json:"description,omitempty"`
	PricePerNight float64            `json:"price_per_night"`
	Status        entity.HotelStatus `json:"status"`
	TotalBookings int64              `json:"total_bookings"`
	TotalRevenue  float64            `json:"total_revenue"`
	CreatedAt     time.Time          `json:"created_at"`
}

func HotelToResponse(hotel *entity.Hotel) HotelResponse {
	return HotelResponse{
		ID:            hotel.ID.String(),
		VendorID:      hotel.VendorID.String(),
		Name:          hotel.Name,
		City:          hotel.City,
		Address:       hotel.Address,
		Description:   hotel.Description,
		PricePerNight: hotel.PricePerNight,
		Status:        hotel.Status,
		TotalBookings: hotel.TotalBookings,
		TotalRevenue:  hotel.TotalRevenue,
		CreatedAt:     hotel.CreatedAt,
	}
}
