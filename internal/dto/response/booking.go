package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type HotelSummary struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	City string `json:"city,omitempty"`
}

type VendorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type GuestsResponse struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type EmergencyContactResponse struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Relation *string `json:"relation,omitempty"`
}

type ContactDetailsResponse struct {
	Name             string                    `json:"name"`
	Email            string                    `json:"email"`
	Phone            string                    `json:"phone"`
	EmergencyContact *EmergencyContactResponse `json:"emergency_contact,omitempty"`
}

type PricingResponse struct {
	RoomTotal   float64 `json:"room_total"`
	Taxes       float64 `json:"taxes"`
	ServiceFee  float64 `json:"service_fee"`
	Discount    float64 `json:"discount"`
	TotalAmount float64 `json:"total_amount"`
}

type PaymentResponse struct {
	Method         entity.PaymentMethod `json:"method"`
	Status         entity.PaymentStatus `json:"status"`
	TransactionID  *string              `json:"transaction_id,omitempty"`
	PaidAmount     float64              `json:"paid_amount"`
	RefundedAmount float64              `json:"refunded_amount"`
}

type CancellationResponse struct {
	CancelledAt  time.Time           `json:"cancelled_at"`
	CancelledBy  entity.CancelledBy  `json:"cancelled_by"`
	Reason       string              `json:"reason"`
	RefundStatus entity.RefundStatus `json:"refund_status"`
}

type BookingResponse struct {
	ID               string                 `json:"id"`
	BookingReference string                 `json:"booking_reference"`
	UserID           string                 `json:"user_id"`
	Hotel            HotelSummary           `json:"hotel"`
	Vendor           VendorSummary          `json:"vendor"`
	RoomType         string                 `json:"room_type"`
	NumberOfRooms    int                    `json:"number_of_rooms"`
	PricePerRoom     float64                `json:"price_per_room"`
	Guests           GuestsResponse         `json:"guests"`
	CheckInDate      time.Time              `json:"check_in_date"`
	CheckOutDate     time.Time              `json:"check_out_date"`
	NumberOfNights   int                    `json:"number_of_nights"`
	ContactDetails   ContactDetailsResponse `json:"contact_details"`
	SpecialRequests  *string                `json:"special_requests,omitempty"`
	Pricing          PricingResponse        `json:"pricing"`
	Payment          PaymentResponse        `json:"payment"`
	Status           entity.BookingStatus   `json:"booking_status"`
	Cancellation     *CancellationResponse  `json:"cancellation,omitempty"`
	VendorNotes      *string                `json:"vendor_notes,omitempty"`
	AdminNotes       *string                `json:"admin_notes,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func BookingToResponse(d *entity.BookingDetail) BookingResponse {
	b := d.Booking
	resp := BookingResponse{
		ID:               b.ID.String(),
		BookingReference: b.BookingReference,
		UserID:           b.UserID.String(),
		Hotel: HotelSummary{
			ID:   b.HotelID.String(),
			Name: d.HotelName,
			City: d.HotelCity,
		},
		Vendor: VendorSummary{
			ID:    b.VendorID.String(),
			Name:  d.VendorName,
			Email: d.VendorEmail,
		},
		RoomType:      b.RoomType,
		NumberOfRooms: b.NumberOfRooms,
		PricePerRoom:  b.PricePerRoom,
		Guests: GuestsResponse{
			Adults:   b.Adults,
			Children: b.Children,
			Infants:  b.Infants,
		},
		CheckInDate:    b.CheckInDate,
		CheckOutDate:   b.CheckOutDate,
		NumberOfNights: b.NumberOfNights,
		ContactDetails: ContactDetailsResponse{
			Name:  b.Contact.Name,
			Email: b.Contact.Email,
			Phone: b.Contact.Phone,
		},
		SpecialRequests: b.SpecialRequests,
		Pricing: PricingResponse{
			RoomTotal:   b.Pricing.RoomTotal,
			Taxes:       b.Pricing.Taxes,
			ServiceFee:  b.Pricing.ServiceFee,
			Discount:    b.Pricing.Discount,
			TotalAmount: b.Pricing.TotalAmount,
		},
		Payment: PaymentResponse{
			Method:         b.Payment.Method,
			Status:         b.Payment.Status,
			TransactionID:  b.Payment.TransactionID,
			PaidAmount:     b.Payment.PaidAmount,
			RefundedAmount: b.Payment.RefundedAmount,
		},
		Status:      b.Status,
		VendorNotes: b.VendorNotes,
		AdminNotes:  b.AdminNotes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if e := b.Contact.Emergency; e.Name != nil || e.Phone != nil || e.Relation != nil {
		resp.ContactDetails.EmergencyContact = &EmergencyContactResponse{
			Name:     e.Name,
			Phone:    e.Phone,
			Relation: e.Relation,
		}
	}

	if c := b.Cancellation; c != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledAt:  c.CancelledAt,
			CancelledBy:  c.CancelledBy,
			Reason:       c.Reason,
			RefundStatus: c.RefundStatus,
		}
	}

	return resp
}
