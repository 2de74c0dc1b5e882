package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	lockHotelSQL = regexp.QuoteMeta(`SELECT id FROM hotels WHERE id = $1 FOR UPDATE`)
	occupiedSQL  = `SELECT check_in_date, check_out_date\s+FROM hotel_bookings\s+WHERE hotel_id = \$1\s+AND booking_status = ANY\(\$2\)`
	insertSQL    = `INSERT INTO hotel_bookings`
)

// insertArgs matches the 36 placeholders of the booking insert
func insertArgs() []any {
	args := make([]any, 36)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

const fullHotel = 20

func stayRows(stays ...[2]string) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"check_in_date", "check_out_date"})
	for _, s := range stays {
		rows.AddRow(stayDay(s[0]), stayDay(s[1]))
	}
	return rows
}

func stayDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newBooking() *entity.Booking {
	checkIn := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	return &entity.Booking{
		BaseNoDelete:     entity.BaseNoDelete{ID: uuid.New()},
		BookingReference: "HB123456ABCDEF",
		UserID:           uuid.New(),
		HotelID:          uuid.New(),
		VendorID:         uuid.New(),
		NumberOfRooms:    2,
		CheckInDate:      checkIn,
		CheckOutDate:     checkIn.AddDate(0, 0, 2),
		Status:           entity.BookingStatusPending,
	}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestNewBookingRepository(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	assert.NotNil(t, repo)
}

func TestCreateWithinCapacity_Commits(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	b := newBooking()

	pool.ExpectBegin()
	pool.ExpectQuery(lockHotelSQL).
		WithArgs(b.HotelID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(b.HotelID.String()))
	// stay under test is 2026-03-20 to 2026-03-22
	pool.ExpectQuery(occupiedSQL).
		WithArgs(b.HotelID, []string{"confirmed", "checked_in"}).
		WillReturnRows(stayRows(
			[2]string{"2026-03-19", "2026-03-21"},
			[2]string{"2026-03-21", "2026-03-25"},
			[2]string{"2026-03-18", "2026-03-20"},
			[2]string{"2026-03-22", "2026-03-23"},
		))
	pool.ExpectExec(insertSQL).
		WithArgs(insertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	var seen int64 = -1
	err := repo.CreateWithinCapacity(context.Background(), b, func(booked int64) error {
		seen = booked
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), seen)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCreateWithinCapacity_CheckRejects(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	b := newBooking()
	full := errors.New("full")

	pool.ExpectBegin()
	pool.ExpectQuery(lockHotelSQL).
		WithArgs(b.HotelID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(b.HotelID.String()))
	overlapping := make([][2]string, fullHotel)
	for i := range overlapping {
		overlapping[i] = [2]string{"2026-03-19", "2026-03-21"}
	}
	pool.ExpectQuery(occupiedSQL).
		WithArgs(b.HotelID, pgxmock.AnyArg()).
		WillReturnRows(stayRows(overlapping...))
	pool.ExpectRollback()

	var seen int64
	err := repo.CreateWithinCapacity(context.Background(), b, func(booked int64) error {
		seen = booked
		return full
	})

	assert.ErrorIs(t, err, full)
	assert.Equal(t, int64(fullHotel), seen)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCreateWithinCapacity_DisjointStayIgnoresFullDates(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	b := newBooking()

	// 20 bookings end the day the new stay starts, so none overlap
	touching := make([][2]string, fullHotel)
	for i := range touching {
		touching[i] = [2]string{"2026-03-15", "2026-03-20"}
	}

	pool.ExpectBegin()
	pool.ExpectQuery(lockHotelSQL).
		WithArgs(b.HotelID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(b.HotelID.String()))
	pool.ExpectQuery(occupiedSQL).
		WithArgs(b.HotelID, []string{"confirmed", "checked_in"}).
		WillReturnRows(stayRows(touching...))
	pool.ExpectExec(insertSQL).
		WithArgs(insertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	err := repo.CreateWithinCapacity(context.Background(), b, func(booked int64) error {
		assert.Zero(t, booked)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCreateWithinCapacity_HotelMissing(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	b := newBooking()

	pool.ExpectBegin()
	pool.ExpectQuery(lockHotelSQL).WithArgs(b.HotelID).WillReturnError(pgx.ErrNoRows)
	pool.ExpectRollback()

	err := repo.CreateWithinCapacity(context.Background(), b, func(int64) error {
		t.Fatal("check must not run without a locked hotel")
		return nil
	})

	assert.ErrorIs(t, err, ErrHotelMissing)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCreateWithinCapacity_InsertFails(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	b := newBooking()
	dup := errors.New("duplicate key value violates unique constraint")

	pool.ExpectBegin()
	pool.ExpectQuery(lockHotelSQL).
		WithArgs(b.HotelID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(b.HotelID.String()))
	pool.ExpectQuery(occupiedSQL).
		WithArgs(b.HotelID, pgxmock.AnyArg()).
		WillReturnRows(stayRows())
	pool.ExpectExec(insertSQL).
		WithArgs(insertArgs()...).
		WillReturnError(dup)
	pool.ExpectRollback()

	err := repo.CreateWithinCapacity(context.Background(), b, func(int64) error { return nil })

	assert.ErrorIs(t, err, dup)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestBookingFindByID_NotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	id := uuid.New()

	pool.ExpectQuery(`FROM hotel_bookings b`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	detail, err := repo.FindByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Nil(t, detail)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestBookingCountAll_Filter(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	vendorID := uuid.New()
	status := entity.BookingStatusConfirmed

	pool.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM hotel_bookings b WHERE 1=1 AND b.vendor_id = $1 AND b.booking_status = $2`)).
		WithArgs(vendorID, "confirmed").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.CountAll(context.Background(), BookingFilter{VendorID: &vendorID, Status: &status})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestBookingFilter_BuildWhere(t *testing.T) {
	userID, hotelID := uuid.New(), uuid.New()

	where, args := BookingFilter{}.buildWhere()
	assert.Equal(t, " WHERE 1=1", where)
	assert.Empty(t, args)

	where, args = BookingFilter{UserID: &userID, HotelID: &hotelID}.buildWhere()
	assert.Equal(t, " WHERE 1=1 AND b.user_id = $1 AND b.hotel_id = $2", where)
	assert.Equal(t, []any{userID, hotelID}, args)
}

func TestUpdateState(t *testing.T) {
	pool := newMockPool(t)
	repo := NewBookingRepository(pool, zap.NewNop())
	b := newBooking()
	b.Status = entity.BookingStatusCancelled
	b.Cancellation = &entity.Cancellation{
		CancelledAt:  time.Now(),
		CancelledBy:  entity.CancelledByUser,
		Reason:       "Cancelled by user",
		RefundStatus: entity.RefundStatusPending,
	}

	pool.ExpectExec(`UPDATE hotel_bookings`).
		WithArgs(b.ID, b.Status, b.Payment.Status,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			b.VendorNotes, b.AdminNotes, b.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectExec(`UPDATE hotel_bookings`).
		WithArgs(b.ID, b.Status, b.Payment.Status,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			b.VendorNotes, b.AdminNotes, b.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateState(context.Background(), b))
	assert.Error(t, repo.UpdateState(context.Background(), b))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestOccupyingStatuses(t *testing.T) {
	assert.Equal(t, []string{"confirmed", "checked_in"}, occupyingStatuses())
}
