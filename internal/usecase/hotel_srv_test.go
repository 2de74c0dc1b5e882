package usecase

import (
	"context"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListHotels_OnlyActive(t *testing.T) {
	hotels := new(MockHotelRepository)
	svc := NewHotelService(hotels, zap.NewNop())
	city := "Lisbon"

	onlyActive := mock.MatchedBy(func(f repository.HotelFilter) bool {
		return f.Status != nil && *f.Status == entity.HotelStatusActive && f.City != nil && *f.City == city
	})
	hotels.On("FindAll", mock.Anything, 10, 0, onlyActive).Return([]*entity.Hotel{activeHotel()}, nil)
	hotels.On("CountAll", mock.Anything, onlyActive).Return(int64(1), nil)

	resp, err := svc.ListHotels(context.Background(), &request.HotelListRequest{City: &city})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Pagination.Page)
	hotels.AssertExpectations(t)
}

func TestCreateHotel_PendingApproval(t *testing.T) {
	hotels := new(MockHotelRepository)
	svc := NewHotelService(hotels, zap.NewNop())
	vendorID := uuid.New()

	hotels.On("Create", mock.Anything, mock.MatchedBy(func(h *entity.Hotel) bool {
		return h.VendorID == vendorID && h.Status == entity.HotelStatusPendingApproval
	})).Return(nil)

	resp, err := svc.CreateHotel(context.Background(), vendorID.String(), &request.CreateHotelRequest{
		Name:          "Harbour View",
		City:          "Lisbon",
		Address:       "Rua 1",
		PricePerNight: 120,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.HotelStatusPendingApproval, resp.Status)
	hotels.AssertExpectations(t)
}

func TestUpdateHotelStatus(t *testing.T) {
	hotels := new(MockHotelRepository)
	svc := NewHotelService(hotels, zap.NewNop())
	hotel := activeHotel()
	hotel.Status = entity.HotelStatusPendingApproval
	missing := uuid.New()

	hotels.On("FindByID", mock.Anything, hotel.ID).Return(hotel, nil)
	hotels.On("FindByID", mock.Anything, missing).Return(nil, nil)
	hotels.On("UpdateStatus", mock.Anything, hotel.ID, entity.HotelStatusActive).Return(nil)

	resp, err := svc.UpdateHotelStatus(context.Background(), hotel.ID.String(), &request.UpdateHotelStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, entity.HotelStatusActive, resp.Status)

	_, err = svc.UpdateHotelStatus(context.Background(), missing.String(), &request.UpdateHotelStatusRequest{Status: "active"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateHotelStatus(context.Background(), hotel.ID.String(), &request.UpdateHotelStatusRequest{Status: "closed"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetProfile(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "ana", Role: entity.RoleUser}
	missing := uuid.New()

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("FindByID", mock.Anything, missing).Return(nil, nil)

	resp, err := svc.GetProfile(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)

	_, err = svc.GetProfile(context.Background(), missing.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
}
