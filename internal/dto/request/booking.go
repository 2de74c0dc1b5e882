package request

type GuestsRequest struct {
	// adults is checked by the booking service so a zero count gets its own error
	Adults   int `json:"adults" validate:"gte=0"`
	Children int `json:"children" validate:"gte=0"`
	Infants  int `json:"infants" validate:"gte=0"`
}

type EmergencyContactRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Relation *string `json:"relation,omitempty" validate:"omitempty,max=50"`
}

type ContactDetailsRequest struct {
	Name             string                   `json:"name" validate:"required,max=100"`
	Email            string                   `json:"email" validate:"required,email"`
	Phone            string                   `json:"phone" validate:"required,min=7,max=20"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact,omitempty"`
}

type CreateBookingRequest struct {
	HotelID         string                `json:"hotel_id" validate:"required"`
	RoomType        string                `json:"room_type" validate:"required,max=50"`
	NumberOfRooms   int                   `json:"number_of_rooms" validate:"required,gte=1"`
	Guests          GuestsRequest         `json:"guests"`
	CheckInDate     string                `json:"check_in_date" validate:"required"`
	CheckOutDate    string                `json:"check_out_date" validate:"required"`
	ContactDetails  ContactDetailsRequest `json:"contact_details"`
	SpecialRequests *string               `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
	PaymentMethod   string                `json:"payment_method" validate:"required,oneof=credit_card debit_card upi net_banking wallet pay_at_hotel"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type VendorUpdateStatusRequest struct {
	Status      string  `json:"status" validate:"required"`
	VendorNotes *string `json:"vendor_notes,omitempty" validate:"omitempty,max=1000"`
}

type AdminUpdateStatusRequest struct {
	BookingStatus *string `json:"booking_status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
	AdminNotes    *string `json:"admin_notes,omitempty" validate:"omitempty,max=1000"`
}

// BookingListRequest carries paging plus the optional list filters
type BookingListRequest struct {
	PaginatedRequest
	Status  *string
	HotelID *string
}
