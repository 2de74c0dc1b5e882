package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/events"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// EventPublisher receives booking lifecycle events. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

type BookingService interface {
	// User endpoints
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID, userID string, role entity.UserRole) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)

	// Vendor endpoints
	GetVendorBookings(ctx context.Context, vendorID string, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatusByVendor(ctx context.Context, bookingID, vendorID string, req *request.VendorUpdateStatusRequest) (*response.BookingResponse, error)

	// Admin endpoints
	GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatusByAdmin(ctx context.Context, bookingID string, req *request.AdminUpdateStatusRequest) (*response.BookingResponse, error)
}

type BookingOption func(*bookingService)

// WithClock replaces time.Now, used by tests that pin refund windows
func WithClock(now func() time.Time) BookingOption {
	return func(s *bookingService) { s.now = now }
}

func WithPublisher(publisher EventPublisher) BookingOption {
	return func(s *bookingService) { s.publisher = publisher }
}

type bookingService struct {
	repo      *repository.Repository
	publisher EventPublisher
	now       func() time.Time
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger, opts ...BookingOption) BookingService {
	s := &bookingService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "booking")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q", ErrUnauthorized, userID)
	}

	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("%w: hotel id %q", ErrInvalidID, req.HotelID)
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, hotelID)
	if err != nil {
		s.log.Error("Failed to load hotel for booking", zap.Error(err), zap.String("hotel_id", req.HotelID))
		return nil, fmt.Errorf("load hotel: %w", err)
	}
	if hotel == nil {
		return nil, fmt.Errorf("%w: hotel %s", ErrNotFound, req.HotelID)
	}
	if hotel.Status != entity.HotelStatusActive {
		return nil, fmt.Errorf("%w: status is %s", ErrHotelUnavailable, hotel.Status)
	}

	checkIn, err := parseStayDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseStayDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if checkIn.Before(startOfDayUTC(now)) {
		return nil, fmt.Errorf("%w: check-in date cannot be in the past", ErrInvalidDateRange)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrInvalidDateRange)
	}

	if req.Guests.Adults < 1 {
		return nil, ErrInvalidGuestCount
	}

	nights := CalculateNights(checkIn, checkOut)
	pricing := CalculatePricing(hotel.PricePerNight, req.NumberOfRooms, nights, 0)

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingReference: generateReference(now),
		UserID:           userUUID,
		HotelID:          hotel.ID,
		VendorID:         hotel.VendorID,
		RoomType:         req.RoomType,
		NumberOfRooms:    req.NumberOfRooms,
		PricePerRoom:     hotel.PricePerNight,
		Adults:           req.Guests.Adults,
		Children:         req.Guests.Children,
		Infants:          req.Guests.Infants,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		NumberOfNights:   nights,
		Contact: entity.ContactDetails{
			Name:  req.ContactDetails.Name,
			Email: req.ContactDetails.Email,
			Phone: req.ContactDetails.Phone,
		},
		SpecialRequests: req.SpecialRequests,
		Pricing:         pricing,
		Payment: entity.PaymentDetails{
			Method: entity.PaymentMethod(req.PaymentMethod),
			Status: entity.PaymentStatusPending,
		},
		Status: entity.BookingStatusPending,
	}
	if ec := req.ContactDetails.EmergencyContact; ec != nil {
		booking.Contact.Emergency = entity.EmergencyContact{
			Name:     ec.Name,
			Phone:    ec.Phone,
			Relation: ec.Relation,
		}
	}

	requested := int64(req.NumberOfRooms)
	err = s.repo.Booking.CreateWithinCapacity(ctx, booking, func(booked int64) error {
		if booked+requested > HotelCapacity {
			return fmt.Errorf("%w: %d of %d rooms already booked", ErrRoomsUnavailable, booked, HotelCapacity)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomsUnavailable):
			s.log.Warn("Rooms unavailable",
				zap.String("hotel_id", hotel.ID.String()),
				zap.Int("requested", req.NumberOfRooms),
				zap.Time("check_in", checkIn),
				zap.Time("check_out", checkOut),
			)
			return nil, err
		case errors.Is(err, repository.ErrHotelMissing):
			return nil, fmt.Errorf("%w: hotel %s", ErrNotFound, req.HotelID)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("hotel_id", req.HotelID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.applyDelta(ctx, hotel.ID, 1, 0)

	detail := s.reload(ctx, booking, hotel)
	s.publish(ctx, events.BookingCreated, &detail.Booking, "", entity.RoleUser)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_reference", booking.BookingReference),
		zap.String("user_id", userID),
		zap.Int("rooms", booking.NumberOfRooms),
		zap.Int("nights", nights),
		zap.Float64("total_amount", pricing.TotalAmount),
	)

	resp := response.BookingToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q", ErrUnauthorized, userID)
	}

	filter, err := bookingFilter(req)
	if err != nil {
		return nil, err
	}
	filter.UserID = &userUUID

	return s.listBookings(ctx, filter, req)
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID, userID string, role entity.UserRole) (*response.BookingResponse, error) {
	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if role != entity.RoleAdmin && detail.UserID.String() != userID {
		s.log.Warn("Booking access denied",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}

	resp := response.BookingToResponse(detail)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if detail.UserID.String() != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}

	switch detail.Status {
	case entity.BookingStatusCancelled:
		return nil, ErrAlreadyCancelled
	case entity.BookingStatusCheckedOut:
		return nil, fmt.Errorf("%w: stay already completed", ErrImmutable)
	}

	now := s.now()
	decision := userRefundPolicy(detail.CheckInDate.Sub(now).Hours())

	reason := defaultUserCancelReason
	if req != nil && req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}

	previous := detail.Status
	detail.Status = entity.BookingStatusCancelled
	detail.Cancellation = &entity.Cancellation{
		CancelledAt:  now,
		CancelledBy:  entity.CancelledByUser,
		Reason:       reason,
		RefundStatus: decision.status,
	}
	if decision.refundPayment {
		detail.Payment.Status = entity.PaymentStatusRefunded
	}
	detail.UpdatedAt = now

	if err := s.repo.Booking.UpdateState(ctx, &detail.Booking); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.applyDelta(ctx, detail.HotelID, -1, 0)
	s.publish(ctx, events.BookingCancelled, &detail.Booking, previous, entity.RoleUser)

	s.log.Info("Booking cancelled by user",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.String("refund_status", string(decision.status)),
	)

	resp := response.BookingToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetVendorBookings(ctx context.Context, vendorID string, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor %q", ErrUnauthorized, vendorID)
	}

	filter, err := bookingFilter(req)
	if err != nil {
		return nil, err
	}
	filter.VendorID = &vendorUUID

	return s.listBookings(ctx, filter, req)
}

// vendorSettableStatuses excludes pending: a vendor cannot send a booking back
var vendorSettableStatuses = map[entity.BookingStatus]bool{
	entity.BookingStatusConfirmed:  true,
	entity.BookingStatusCancelled:  true,
	entity.BookingStatusCheckedIn:  true,
	entity.BookingStatusCheckedOut: true,
	entity.BookingStatusNoShow:     true,
}

func (s *bookingService) UpdateStatusByVendor(ctx context.Context, bookingID, vendorID string, req *request.VendorUpdateStatusRequest) (*response.BookingResponse, error) {
	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// a foreign booking looks exactly like a missing one
	if detail.VendorID.String() != vendorID {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	next := entity.BookingStatus(req.Status)
	if !vendorSettableStatuses[next] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	previous := detail.Status
	if previous == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: booking is cancelled", ErrImmutable)
	}
	if previous == entity.BookingStatusCheckedOut && next != entity.BookingStatusCheckedOut {
		return nil, fmt.Errorf("%w: guest already checked out", ErrImmutable)
	}

	now := s.now()
	detail.Status = next
	detail.UpdatedAt = now
	if req.VendorNotes != nil {
		detail.VendorNotes = req.VendorNotes
	}

	if next == entity.BookingStatusCancelled {
		decision := vendorRefundPolicy(detail.CheckInDate.Sub(now).Hours())

		reason := defaultVendorCancelReason
		if req.VendorNotes != nil && *req.VendorNotes != "" {
			reason = *req.VendorNotes
		}

		detail.Cancellation = &entity.Cancellation{
			CancelledAt:  now,
			CancelledBy:  entity.CancelledByVendor,
			Reason:       reason,
			RefundStatus: decision.status,
		}
		if decision.refundPayment {
			detail.Payment.Status = entity.PaymentStatusRefunded
		}
	}

	if err := s.repo.Booking.UpdateState(ctx, &detail.Booking); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", req.Status),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if next == entity.BookingStatusConfirmed && previous != entity.BookingStatusConfirmed {
		s.applyDelta(ctx, detail.HotelID, 1, 0)
	}
	if next == entity.BookingStatusCheckedOut && previous != entity.BookingStatusCheckedOut &&
		detail.Payment.Status == entity.PaymentStatusCompleted {
		s.applyDelta(ctx, detail.HotelID, 0, detail.Pricing.TotalAmount)
	}

	eventType := events.BookingStatusChanged
	if next == entity.BookingStatusCancelled {
		eventType = events.BookingCancelled
	}
	s.publish(ctx, eventType, &detail.Booking, previous, entity.RoleVendor)

	s.log.Info("Booking status updated by vendor",
		zap.String("booking_id", bookingID),
		zap.String("vendor_id", vendorID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)

	resp := response.BookingToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter, err := bookingFilter(req)
	if err != nil {
		return nil, err
	}
	return s.listBookings(ctx, filter, req)
}

// UpdateStatusByAdmin overwrites whatever fields are supplied. No transition
// rules apply and hotel counters are left alone.
func (s *bookingService) UpdateStatusByAdmin(ctx context.Context, bookingID string, req *request.AdminUpdateStatusRequest) (*response.BookingResponse, error) {
	if !utils.IsValidID(bookingID) {
		return nil, fmt.Errorf("%w: booking id %q", ErrInvalidID, bookingID)
	}

	if req.BookingStatus != nil && !entity.BookingStatus(*req.BookingStatus).IsValid() {
		return nil, fmt.Errorf("%w: booking status %q", ErrInvalidStatus, *req.BookingStatus)
	}
	if req.PaymentStatus != nil && !entity.PaymentStatus(*req.PaymentStatus).IsValid() {
		return nil, fmt.Errorf("%w: payment status %q", ErrInvalidStatus, *req.PaymentStatus)
	}

	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	previous := detail.Status
	if req.BookingStatus != nil {
		detail.Status = entity.BookingStatus(*req.BookingStatus)
	}
	if req.PaymentStatus != nil {
		detail.Payment.Status = entity.PaymentStatus(*req.PaymentStatus)
	}
	if req.AdminNotes != nil {
		detail.AdminNotes = req.AdminNotes
	}
	detail.UpdatedAt = s.now()

	if err := s.repo.Booking.UpdateState(ctx, &detail.Booking); err != nil {
		s.log.Error("Failed to update booking as admin", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.publish(ctx, events.BookingStatusChanged, &detail.Booking, previous, entity.RoleAdmin)

	s.log.Info("Booking updated by admin",
		zap.String("booking_id", bookingID),
		zap.String("status", string(detail.Status)),
		zap.String("payment_status", string(detail.Payment.Status)),
	)

	resp := response.BookingToResponse(detail)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

// generateReference is swapped in tests that need a fixed reference
var generateReference = utils.GenerateBookingReference

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.BookingDetail, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking id %q", ErrInvalidID, bookingID)
	}

	detail, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	return detail, nil
}

func bookingFilter(req *request.BookingListRequest) (repository.BookingFilter, error) {
	var filter repository.BookingFilter
	if req == nil {
		return filter, nil
	}

	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	if req.HotelID != nil {
		hotelID, err := uuid.Parse(*req.HotelID)
		if err != nil {
			return filter, fmt.Errorf("%w: hotel id %q", ErrInvalidID, *req.HotelID)
		}
		filter.HotelID = &hotelID
	}

	return filter, nil
}

func (s *bookingService) listBookings(ctx context.Context, filter repository.BookingFilter, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	page := request.PaginatedRequest{Page: 1, PerPage: 10}
	if req != nil {
		page = req.PaginatedRequest
	}
	if page.Page < 1 {
		page.Page = 1
	}
	limit, offset := page.Limit(), page.Offset()

	bookings, err := s.repo.Booking.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	data := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		data[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(data, page.Page, limit, total), nil
}

// reload fetches the stored booking with its joins, falling back to the
// in-memory copy when the read fails.
func (s *bookingService) reload(ctx context.Context, booking *entity.Booking, hotel *entity.Hotel) *entity.BookingDetail {
	detail, err := s.repo.Booking.FindByID(ctx, booking.ID)
	if err != nil || detail == nil {
		s.log.Warn("Failed to reload booking after create",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return &entity.BookingDetail{
			Booking:   *booking,
			HotelName: hotel.Name,
			HotelCity: hotel.City,
		}
	}
	return detail
}

// applyDelta updates hotel counters outside the booking write. Failures are
// logged and never surface to the caller.
func (s *bookingService) applyDelta(ctx context.Context, hotelID uuid.UUID, bookings int, revenue float64) {
	if err := s.repo.Hotel.ApplyBookingDelta(ctx, hotelID, bookings, revenue); err != nil {
		s.log.Error("Failed to update hotel counters",
			zap.Error(err),
			zap.String("hotel_id", hotelID.String()),
			zap.Int("bookings_delta", bookings),
			zap.Float64("revenue_delta", revenue),
		)
	}
}

func (s *bookingService) publish(ctx context.Context, eventType events.EventType, b *entity.Booking, previous entity.BookingStatus, actor entity.UserRole) {
	if s.publisher == nil {
		return
	}

	event := events.BookingEvent{
		Type:             eventType,
		BookingID:        b.ID.String(),
		BookingReference: b.BookingReference,
		HotelID:          b.HotelID.String(),
		UserID:           b.UserID.String(),
		VendorID:         b.VendorID.String(),
		Status:           string(b.Status),
		PreviousStatus:   string(previous),
		PaymentStatus:    string(b.Payment.Status),
		TotalAmount:      b.Pricing.TotalAmount,
		Actor:            string(actor),
		OccurredAt:       s.now().UTC(),
	}
	if b.Cancellation != nil {
		event.RefundStatus = string(b.Cancellation.RefundStatus)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(eventType)),
			zap.String("booking_id", event.BookingID),
		)
	}
}
