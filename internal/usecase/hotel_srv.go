package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HotelService interface {
	ListHotels(ctx context.Context, req *request.HotelListRequest) (*response.PaginatedResponse[response.HotelResponse], error)
	GetHotel(ctx context.Context, hotelID string) (*response.HotelResponse, error)
	CreateHotel(ctx context.Context, vendorID string, req *request.CreateHotelRequest) (*response.HotelResponse, error)
	UpdateHotelStatus(ctx context.Context, hotelID string, req *request.UpdateHotelStatusRequest) (*response.HotelResponse, error)
}

type hotelService struct {
	hotelRepo repository.HotelRepository
	log       *zap.Logger
}

func NewHotelService(hotelRepo repository.HotelRepository, log *zap.Logger) HotelService {
	return &hotelService{
		hotelRepo: hotelRepo,
		log:       log.With(zap.String("service", "hotel")),
	}
}

// ListHotels shows only hotels open for booking
func (s *hotelService) ListHotels(ctx context.Context, req *request.HotelListRequest) (*response.PaginatedResponse[response.HotelResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	limit, offset := req.Limit(), req.Offset()

	active := entity.HotelStatusActive
	filter := repository.HotelFilter{City: req.City, Status: &active}

	hotels, err := s.hotelRepo.FindAll(ctx, limit, offset, filter)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	total, err := s.hotelRepo.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count hotels: %w", err)
	}

	data := make([]response.HotelResponse, len(hotels))
	for i, h := range hotels {
		data[i] = response.HotelToResponse(h)
	}

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}

func (s *hotelService) GetHotel(ctx context.Context, hotelID string) (*response.HotelResponse, error) {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

// CreateHotel registers a vendor's hotel; it stays hidden until an admin activates it
func (s *hotelService) CreateHotel(ctx context.Context, vendorID string, req *request.CreateHotelRequest) (*response.HotelResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor %q", ErrUnauthorized, vendorID)
	}

	now := time.Now()
	hotel := &entity.Hotel{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VendorID:      vendorUUID,
		Name:          req.Name,
		City:          req.City,
		Address:       req.Address,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Status:        entity.HotelStatusPendingApproval,
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	s.log.Info("Hotel created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("vendor_id", vendorID),
	)

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *hotelService) UpdateHotelStatus(ctx context.Context, hotelID string, req *request.UpdateHotelStatusRequest) (*response.HotelResponse, error) {
	status := entity.HotelStatus(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if err := s.hotelRepo.UpdateStatus(ctx, hotel.ID, status); err != nil {
		return nil, fmt.Errorf("update hotel status: %w", err)
	}
	hotel.Status = status

	s.log.Info("Hotel status updated",
		zap.String("hotel_id", hotelID),
		zap.String("status", req.Status),
	)

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *hotelService) findHotel(ctx context.Context, hotelID string) (*entity.Hotel, error) {
	id, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, fmt.Errorf("%w: hotel id %q", ErrInvalidID, hotelID)
	}

	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load hotel: %w", err)
	}
	if hotel == nil {
		return nil, fmt.Errorf("%w: hotel %s", ErrNotFound, hotelID)
	}

	return hotel, nil
}
