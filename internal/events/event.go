package events

import "time"

type EventType string

const (
	BookingCreated       EventType = "booking.created"
	BookingCancelled     EventType = "booking.cancelled"
	BookingStatusChanged EventType = "booking.status_changed"
)

// BookingEvent is the payload written to the booking topic, keyed by booking ID
type BookingEvent struct {
	Type             EventType `json:"type"`
	BookingID        string    `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	HotelID          string    `json:"hotel_id"`
	UserID           string    `json:"user_id"`
	VendorID         string    `json:"vendor_id"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previous_status,omitempty"`
	PaymentStatus    string    `json:"payment_status"`
	RefundStatus     string    `json:"refund_status,omitempty"`
	TotalAmount      float64   `json:"total_amount"`
	Actor            string    `json:"actor"`
	OccurredAt       time.Time `json:"occurred_at"`
}
