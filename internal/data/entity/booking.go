package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusNoShow     BookingStatus = "no_show"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusNoShow:
		return true
	}
	return false
}

// OccupiesRooms lists the statuses counted by the availability check
func OccupiesRooms() []BookingStatus {
	return []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn}
}

// StaysOverlap is the three-way overlap test used by the availability check:
// the new check-in falls inside the existing stay, the new check-out falls
// inside it, or the new stay contains it. Stays that only touch at a boundary
// day do not overlap.
func StaysOverlap(existingIn, existingOut, newIn, newOut time.Time) bool {
	checkInInside := !existingIn.After(newIn) && existingOut.After(newIn)
	checkOutInside := existingIn.Before(newOut) && !existingOut.Before(newOut)
	contains := !newIn.After(existingIn) && !newOut.Before(existingOut)
	return checkInInside || checkOutInside || contains
}

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusCompleted         PaymentStatus = "completed"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "net_banking"
	PaymentMethodWallet     PaymentMethod = "wallet"
	PaymentMethodPayAtHotel PaymentMethod = "pay_at_hotel"
)

type CancelledBy string

const (
	CancelledByUser   CancelledBy = "user"
	CancelledByVendor CancelledBy = "vendor"
	CancelledByAdmin  CancelledBy = "admin"
)

type RefundStatus string

const (
	RefundStatusNotApplicable RefundStatus = "not_applicable"
	RefundStatusPending       RefundStatus = "pending"
	RefundStatusProcessed     RefundStatus = "processed"
	RefundStatusRejected      RefundStatus = "rejected"
)

type EmergencyContact struct {
	Name     *string `db:"emergency_contact_name"`
	Phone    *string `db:"emergency_contact_phone"`
	Relation *string `db:"emergency_contact_rel"`
}

type ContactDetails struct {
	Name      string `db:"contact_name"`
	Email     string `db:"contact_email"`
	Phone     string `db:"contact_phone"`
	Emergency EmergencyContact
}

// Pricing is computed once when the booking is created and never recomputed
type Pricing struct {
	RoomTotal   float64 `db:"room_total"`
	Taxes       float64 `db:"taxes"`
	ServiceFee  float64 `db:"service_fee"`
	Discount    float64 `db:"discount"`
	TotalAmount float64 `db:"total_amount"`
}

type PaymentDetails struct {
	Method         PaymentMethod `db:"payment_method"`
	Status         PaymentStatus `db:"payment_status"`
	TransactionID  *string       `db:"transaction_id"`
	PaidAmount     float64       `db:"paid_amount"`
	RefundedAmount float64       `db:"refunded_amount"`
}

type Cancellation struct {
	CancelledAt  time.Time    `db:"cancelled_at"`
	CancelledBy  CancelledBy  `db:"cancelled_by"`
	Reason       string       `db:"cancellation_reason"`
	RefundStatus RefundStatus `db:"refund_status"`
}

// Booking is a hotel stay reservation. VendorID is a copy of the hotel's
// vendor at creation time and is never refreshed.
type Booking struct {
	BaseNoDelete
	BookingReference string    `db:"booking_reference"`
	UserID           uuid.UUID `db:"user_id"`
	HotelID          uuid.UUID `db:"hotel_id"`
	VendorID         uuid.UUID `db:"vendor_id"`

	RoomType      string  `db:"room_type"`
	NumberOfRooms int     `db:"number_of_rooms"`
	PricePerRoom  float64 `db:"price_per_room"`

	Adults   int `db:"adults"`
	Children int `db:"children"`
	Infants  int `db:"infants"`

	CheckInDate    time.Time `db:"check_in_date"`
	CheckOutDate   time.Time `db:"check_out_date"`
	NumberOfNights int       `db:"number_of_nights"`

	Contact         ContactDetails
	SpecialRequests *string `db:"special_requests"`

	Pricing Pricing
	Payment PaymentDetails

	Status       BookingStatus `db:"booking_status"`
	Cancellation *Cancellation

	VendorNotes *string `db:"vendor_notes"`
	AdminNotes  *string `db:"admin_notes"`
}

// BookingDetail is a booking with its hotel and vendor summaries attached
type BookingDetail struct {
	Booking
	HotelName   string
	HotelCity   string
	VendorName  string
	VendorEmail string
}
