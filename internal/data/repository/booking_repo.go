package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrHotelMissing is returned when the hotel row vanished between lookup and lock
var ErrHotelMissing = errors.New("hotel not found")

// CapacityCheck receives the number of overlapping room-occupying bookings and
// rejects the insert by returning an error.
type CapacityCheck func(bookedRooms int64) error

type BookingFilter struct {
	UserID   *uuid.UUID
	VendorID *uuid.UUID
	HotelID  *uuid.UUID
	Status   *entity.BookingStatus
}

type BookingRepository interface {
	CreateWithinCapacity(ctx context.Context, booking *entity.Booking, check CapacityCheck) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.BookingDetail, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)

	// UpdateState persists status, payment status, cancellation and notes.
	// Reference, stay length and pricing are never written after insert.
	UpdateState(ctx context.Context, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
		b.id, b.booking_reference, b.user_id, b.hotel_id, b.vendor_id,
		b.room_type, b.number_of_rooms, b.price_per_room,
		b.adults, b.children, b.infants,
		b.check_in_date, b.check_out_date, b.number_of_nights,
		b.contact_name, b.contact_email, b.contact_phone,
		b.emergency_contact_name, b.emergency_contact_phone, b.emergency_contact_rel,
		b.special_requests,
		b.room_total, b.taxes, b.service_fee, b.discount, b.total_amount,
		b.payment_method, b.payment_status, b.transaction_id, b.paid_amount, b.refunded_amount,
		b.booking_status, b.cancelled_at, b.cancelled_by, b.cancellation_reason, b.refund_status,
		b.vendor_notes, b.admin_notes, b.created_at, b.updated_at,
		h.name, h.city, v.username, v.email`

const bookingJoins = `
		FROM hotel_bookings b
		JOIN hotels h ON h.id = b.hotel_id
		JOIN users v ON v.id = b.vendor_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingDetail(row rowScanner) (*entity.BookingDetail, error) {
	var (
		d            entity.BookingDetail
		cancelledAt  *time.Time
		cancelledBy  *string
		cancelReason *string
		refundStatus *string
	)

	err := row.Scan(
		&d.ID, &d.BookingReference, &d.UserID, &d.HotelID, &d.VendorID,
		&d.RoomType, &d.NumberOfRooms, &d.PricePerRoom,
		&d.Adults, &d.Children, &d.Infants,
		&d.CheckInDate, &d.CheckOutDate, &d.NumberOfNights,
		&d.Contact.Name, &d.Contact.Email, &d.Contact.Phone,
		&d.Contact.Emergency.Name, &d.Contact.Emergency.Phone, &d.Contact.Emergency.Relation,
		&d.SpecialRequests,
		&d.Pricing.RoomTotal, &d.Pricing.Taxes, &d.Pricing.ServiceFee, &d.Pricing.Discount, &d.Pricing.TotalAmount,
		&d.Payment.Method, &d.Payment.Status, &d.Payment.TransactionID, &d.Payment.PaidAmount, &d.Payment.RefundedAmount,
		&d.Status, &cancelledAt, &cancelledBy, &cancelReason, &refundStatus,
		&d.VendorNotes, &d.AdminNotes, &d.CreatedAt, &d.UpdatedAt,
		&d.HotelName, &d.HotelCity, &d.VendorName, &d.VendorEmail,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt != nil {
		c := &entity.Cancellation{CancelledAt: *cancelledAt}
		if cancelledBy != nil {
			c.CancelledBy = entity.CancelledBy(*cancelledBy)
		}
		if cancelReason != nil {
			c.Reason = *cancelReason
		}
		if refundStatus != nil {
			c.RefundStatus = entity.RefundStatus(*refundStatus)
		}
		d.Cancellation = c
	}

	return &d, nil
}

func occupyingStatuses() []string {
	statuses := entity.OccupiesRooms()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// CreateWithinCapacity locks the hotel row, counts overlapping bookings, lets
// check decide, then inserts. Concurrent requests for the same hotel queue on
// the row lock, so two of them cannot both pass the check on stale counts.
func (r *bookingRepository) CreateWithinCapacity(ctx context.Context, booking *entity.Booking, check CapacityCheck) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM hotels WHERE id = $1 FOR UPDATE`, booking.HotelID).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrHotelMissing
	}
	if err != nil {
		r.log.Error("Failed to lock hotel row",
			zap.Error(err),
			zap.String("hotel_id", booking.HotelID.String()),
		)
		return fmt.Errorf("lock hotel %s: %w", booking.HotelID.String(), err)
	}

	booked, err := r.countOverlapping(ctx, tx, booking)
	if err != nil {
		r.log.Error("Failed to count overlapping bookings",
			zap.Error(err),
			zap.String("hotel_id", booking.HotelID.String()),
		)
		return fmt.Errorf("count overlapping bookings for hotel %s: %w", booking.HotelID.String(), err)
	}

	if err := check(booked); err != nil {
		return err
	}

	insert := `
		INSERT INTO hotel_bookings (
			id, booking_reference, user_id, hotel_id, vendor_id,
			room_type, number_of_rooms, price_per_room,
			adults, children, infants,
			check_in_date, check_out_date, number_of_nights,
			contact_name, contact_email, contact_phone,
			emergency_contact_name, emergency_contact_phone, emergency_contact_rel,
			special_requests,
			room_total, taxes, service_fee, discount, total_amount,
			payment_method, payment_status, transaction_id, paid_amount, refunded_amount,
			booking_status, vendor_notes, admin_notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11,
			$12, $13, $14,
			$15, $16, $17,
			$18, $19, $20,
			$21,
			$22, $23, $24, $25, $26,
			$27, $28, $29, $30, $31,
			$32, $33, $34, $35, $36
		)
	`

	_, err = tx.Exec(ctx, insert,
		booking.ID, booking.BookingReference, booking.UserID, booking.HotelID, booking.VendorID,
		booking.RoomType, booking.NumberOfRooms, booking.PricePerRoom,
		booking.Adults, booking.Children, booking.Infants,
		booking.CheckInDate, booking.CheckOutDate, booking.NumberOfNights,
		booking.Contact.Name, booking.Contact.Email, booking.Contact.Phone,
		booking.Contact.Emergency.Name, booking.Contact.Emergency.Phone, booking.Contact.Emergency.Relation,
		booking.SpecialRequests,
		booking.Pricing.RoomTotal, booking.Pricing.Taxes, booking.Pricing.ServiceFee, booking.Pricing.Discount, booking.Pricing.TotalAmount,
		booking.Payment.Method, booking.Payment.Status, booking.Payment.TransactionID, booking.Payment.PaidAmount, booking.Payment.RefundedAmount,
		booking.Status, booking.VendorNotes, booking.AdminNotes, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_reference", booking.BookingReference),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingReference, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking", zap.Error(err))
		return fmt.Errorf("commit booking %s: %w", booking.BookingReference, err)
	}

	return nil
}

// countOverlapping reads the room-occupying stays of the locked hotel and
// counts those that overlap the new booking's stay.
func (r *bookingRepository) countOverlapping(ctx context.Context, tx pgx.Tx, booking *entity.Booking) (int64, error) {
	query := `
		SELECT check_in_date, check_out_date
		FROM hotel_bookings
		WHERE hotel_id = $1
		  AND booking_status = ANY($2)
	`

	rows, err := tx.Query(ctx, query, booking.HotelID, occupyingStatuses())
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var booked int64
	for rows.Next() {
		var checkIn, checkOut time.Time
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return 0, err
		}
		if entity.StaysOverlap(checkIn, checkOut, booking.CheckInDate, booking.CheckOutDate) {
			booked++
		}
	}

	return booked, rows.Err()
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE b.id = $1`

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return detail, nil
}

// buildWhere renders the filter starting at placeholder $1
func (f BookingFilter) buildWhere() (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")

	args := []any{}
	add := func(clause string, value any) {
		args = append(args, value)
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", clause, len(args)))
	}

	if f.UserID != nil {
		add("b.user_id", *f.UserID)
	}
	if f.VendorID != nil {
		add("b.vendor_id", *f.VendorID)
	}
	if f.HotelID != nil {
		add("b.hotel_id", *f.HotelID)
	}
	if f.Status != nil {
		add("b.booking_status", string(*f.Status))
	}

	return sb.String(), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.BookingDetail, error) {
	where, args := filter.buildWhere()
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, bookingJoins, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := filter.buildWhere()
	query := `SELECT COUNT(*) FROM hotel_bookings b` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateState(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE hotel_bookings
		SET booking_status = $2,
		    payment_status = $3,
		    cancelled_at = $4,
		    cancelled_by = $5,
		    cancellation_reason = $6,
		    refund_status = $7,
		    vendor_notes = $8,
		    admin_notes = $9,
		    updated_at = $10
		WHERE id = $1
	`

	var (
		cancelledAt  *time.Time
		cancelledBy  *string
		cancelReason *string
		refundStatus *string
	)
	if c := booking.Cancellation; c != nil {
		at, by, reason, refund := c.CancelledAt, string(c.CancelledBy), c.Reason, string(c.RefundStatus)
		cancelledAt, cancelledBy, cancelReason, refundStatus = &at, &by, &reason, &refund
	}

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.Payment.Status,
		cancelledAt,
		cancelledBy,
		cancelReason,
		refundStatus,
		booking.VendorNotes,
		booking.AdminNotes,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking state",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}
