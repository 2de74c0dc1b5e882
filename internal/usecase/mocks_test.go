package usecase

import (
	"context"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBookingRepository feeds the booked-room count it is given to the
// capacity check, so tests exercise the real check closure.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithinCapacity(ctx context.Context, booking *entity.Booking, check repository.CapacityCheck) error {
	args := m.Called(ctx, booking)
	if err := args.Error(1); err != nil {
		return err
	}
	return check(args.Get(0).(int64))
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) UpdateState(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Hotel), args.Error(1)
}

func (m *MockHotelRepository) FindAll(ctx context.Context, limit, offset int, filter repository.HotelFilter) ([]*entity.Hotel, error) {
	args := m.Called(ctx, limit, offset, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Hotel), args.Error(1)
}

func (m *MockHotelRepository) CountAll(ctx context.Context, filter repository.HotelFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHotelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.HotelStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockHotelRepository) ApplyBookingDelta(ctx context.Context, id uuid.UUID, bookingsDelta int, revenueDelta float64) error {
	args := m.Called(ctx, id, bookingsDelta, revenueDelta)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
