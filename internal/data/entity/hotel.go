package entity

import "github.com/google/uuid"

type HotelStatus string

const (
	HotelStatusActive          HotelStatus = "active"
	HotelStatusInactive        HotelStatus = "inactive"
	HotelStatusPendingApproval HotelStatus = "pending_approval"
	HotelStatusSuspended       HotelStatus = "suspended"
)

func (s HotelStatus) IsValid() bool {
	switch s {
	case HotelStatusActive, HotelStatusInactive, HotelStatusPendingApproval, HotelStatusSuspended:
		return true
	}
	return false
}

// Hotel is owned by a vendor. TotalBookings and TotalRevenue are aggregate
// counters maintained by the booking lifecycle through atomic deltas.
type Hotel struct {
	BaseNoDelete
	VendorID      uuid.UUID   `db:"vendor_id"`
	Name          string      `db:"name"`
	City          string      `db:"city"`
	Address       string      `db:"address"`
	Description   *string     `db:"description"`
	PricePerNight float64     `db:"price_per_night"`
	Status        HotelStatus `db:"status"`
	TotalBookings int64       `db:"total_bookings"`
	TotalRevenue  float64     `db:"total_revenue"`
}
