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

type HotelFilter struct {
	City     *string
	Status   *entity.HotelStatus
	VendorID *uuid.UUID
}

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	FindAll(ctx context.Context, limit, offset int, filter HotelFilter) ([]*entity.Hotel, error)
	CountAll(ctx context.Context, filter HotelFilter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.HotelStatus) error

	// ApplyBookingDelta adjusts the aggregate counters in one statement so
	// concurrent lifecycle changes never lose an update.
	ApplyBookingDelta(ctx context.Context, id uuid.UUID, bookingsDelta int, revenueDelta float64) error
}

type hotelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHotelRepository(db database.PgxIface, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

const hotelColumns = `id, vendor_id, name, city, address, description, price_per_night,
		       status, total_bookings, total_revenue, created_at, updated_at`

func scanHotel(row rowScanner) (*entity.Hotel, error) {
	var hotel entity.Hotel
	err := row.Scan(
		&hotel.ID,
		&hotel.VendorID,
		&hotel.Name,
		&hotel.City,
		&hotel.Address,
		&hotel.Description,
		&hotel.PricePerNight,
		&hotel.Status,
		&hotel.TotalBookings,
		&hotel.TotalRevenue,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (id, vendor_id, name, city, address, description,
		                    price_per_night, status, total_bookings, total_revenue,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		hotel.ID,
		hotel.VendorID,
		hotel.Name,
		hotel.City,
		hotel.Address,
		hotel.Description,
		hotel.PricePerNight,
		hotel.Status,
		hotel.TotalBookings,
		hotel.TotalRevenue,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create hotel",
			zap.Error(err),
			zap.String("name", hotel.Name),
			zap.String("city", hotel.City),
		)
		return fmt.Errorf("create hotel %s: %w", hotel.Name, err)
	}

	return nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1`

	hotel, err := scanHotel(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return nil, fmt.Errorf("find hotel by ID %s: %w", id.String(), err)
	}

	return hotel, nil
}

func (f HotelFilter) buildWhere() (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")

	args := []any{}
	if f.City != nil && *f.City != "" {
		args = append(args, "%"+*f.City+"%")
		sb.WriteString(fmt.Sprintf(" AND city ILIKE $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	if f.VendorID != nil {
		args = append(args, *f.VendorID)
		sb.WriteString(fmt.Sprintf(" AND vendor_id = $%d", len(args)))
	}

	return sb.String(), args
}

func (r *hotelRepository) FindAll(ctx context.Context, limit, offset int, filter HotelFilter) ([]*entity.Hotel, error) {
	where, args := filter.buildWhere()
	query := fmt.Sprintf(`SELECT %s FROM hotels %s ORDER BY city, name LIMIT $%d OFFSET $%d`,
		hotelColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all hotels",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("city_filter", filter.City),
		)
		return nil, fmt.Errorf("find all hotels limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var hotels []*entity.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			r.log.Error("Failed to scan hotel row", zap.Error(err))
			return nil, fmt.Errorf("scan hotel row: %w", err)
		}
		hotels = append(hotels, hotel)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate hotel rows: %w", err)
	}

	return hotels, nil
}

func (r *hotelRepository) CountAll(ctx context.Context, filter HotelFilter) (int64, error) {
	where, args := filter.buildWhere()
	query := `SELECT COUNT(*) FROM hotels` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count hotels",
			zap.Error(err),
			zap.Stringp("city_filter", filter.City),
		)
		return 0, fmt.Errorf("count all hotels: %w", err)
	}

	return total, nil
}

func (r *hotelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.HotelStatus) error {
	query := `UPDATE hotels SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to update hotel status",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update hotel %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hotel %s not found", id.String())
	}

	return nil
}

func (r *hotelRepository) ApplyBookingDelta(ctx context.Context, id uuid.UUID, bookingsDelta int, revenueDelta float64) error {
	query := `
		UPDATE hotels
		SET total_bookings = total_bookings + $2,
		    total_revenue = total_revenue + $3,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, bookingsDelta, revenueDelta)
	if err != nil {
		r.log.Error("Failed to apply booking delta",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
			zap.Int("bookings_delta", bookingsDelta),
			zap.Float64("revenue_delta", revenueDelta),
		)
		return fmt.Errorf("apply booking delta to hotel %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hotel %s not found", id.String())
	}

	return nil
}
