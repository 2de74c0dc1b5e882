package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID string, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID, userID string, role entity.UserRole) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID, userID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetVendorBookings(ctx context.Context, vendorID string, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, vendorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) UpdateStatusByVendor(ctx context.Context, bookingID, vendorID string, req *request.VendorUpdateStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, vendorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) UpdateStatusByAdmin(ctx context.Context, bookingID string, req *request.AdminUpdateStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func bookingRouter(h *BookingHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/hotel-bookings", h.CreateBooking)
	r.Get("/api/hotel-bookings", h.GetUserBookings)
	r.Get("/api/hotel-bookings/{id}", h.GetBookingByID)
	r.Put("/api/hotel-bookings/{id}/cancel", h.CancelBooking)
	r.Put("/api/vendor/bookings/{id}/status", h.UpdateStatusByVendor)
	return r
}

func authedRequest(method, target, body string, userID uuid.UUID, role entity.UserRole) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(utils.SetUserContext(req.Context(), userID, string(role)))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const createBody = `{
	"hotel_id": "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
	"room_type": "deluxe",
	"number_of_rooms": 1,
	"guests": {"adults": 2},
	"check_in_date": "2026-03-20",
	"check_out_date": "2026-03-22",
	"contact_details": {"name": "Ana", "email": "ana@example.com", "phone": "+351900000"},
	"payment_method": "upi"
}`

func TestCreateBooking_Created(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())
	userID := uuid.New()

	svc.On("CreateBooking", mock.Anything, userID.String(), mock.AnythingOfType("*request.CreateBookingRequest")).
		Return(&response.BookingResponse{BookingReference: "HB123456ABCDEF", Status: entity.BookingStatusPending}, nil)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/hotel-bookings", createBody, userID, entity.RoleUser))

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Status)
	assert.Equal(t, "Booking created successfully", env.Message)
	svc.AssertExpectations(t)
}

func TestCreateBooking_ValidationFailed(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/hotel-bookings",
		`{"hotel_id": "x", "number_of_rooms": 0}`, uuid.New(), entity.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.NotNil(t, env.Errors)
	svc.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/hotel-bookings", `{`, uuid.New(), entity.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeEnvelope(t, rec).Message)
}

func TestCreateBooking_Unauthenticated(t *testing.T) {
	h := NewBookingHandler(new(MockBookingService), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/hotel-bookings", strings.NewReader(createBody))
	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBooking_ServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{usecase.ErrNotFound, http.StatusNotFound},
		{usecase.ErrHotelUnavailable, http.StatusBadRequest},
		{usecase.ErrRoomsUnavailable, http.StatusBadRequest},
		{usecase.ErrInvalidDateRange, http.StatusBadRequest},
		{usecase.ErrInvalidGuestCount, http.StatusBadRequest},
		{usecase.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(MockBookingService)
			h := NewBookingHandler(svc, zap.NewNop())
			svc.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, fmt.Errorf("wrapped: %w", tt.err))

			rec := httptest.NewRecorder()
			bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/hotel-bookings", createBody, uuid.New(), entity.RoleUser))

			assert.Equal(t, tt.code, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Status)
			if tt.code == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", env.Message)
			}
		})
	}
}

func TestGetBookingByID_PassesRole(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())
	adminID := uuid.New()
	bookingID := uuid.NewString()

	svc.On("GetBookingByID", mock.Anything, bookingID, adminID.String(), entity.RoleAdmin).
		Return(&response.BookingResponse{ID: bookingID}, nil)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/hotel-bookings/"+bookingID, "", adminID, entity.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetBookingByID_Forbidden(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	svc.On("GetBookingByID", mock.Anything, mock.Anything, mock.Anything, entity.RoleUser).
		Return(nil, usecase.ErrForbidden)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/hotel-bookings/"+uuid.NewString(), "", uuid.New(), entity.RoleUser))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelBooking_EmptyBody(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())
	bookingID := uuid.NewString()
	userID := uuid.New()

	svc.On("CancelBooking", mock.Anything, bookingID, userID.String(), &request.CancelBookingRequest{}).
		Return(&response.BookingResponse{ID: bookingID, Status: entity.BookingStatusCancelled}, nil)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/hotel-bookings/"+bookingID+"/cancel", "", userID, entity.RoleUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking cancelled successfully", decodeEnvelope(t, rec).Message)
	svc.AssertExpectations(t)
}

func TestCancelBooking_ChunkedEmptyBody(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())
	bookingID := uuid.NewString()
	userID := uuid.New()

	svc.On("CancelBooking", mock.Anything, bookingID, userID.String(), &request.CancelBookingRequest{}).
		Return(&response.BookingResponse{ID: bookingID, Status: entity.BookingStatusCancelled}, nil)

	req := authedRequest(http.MethodPut, "/api/hotel-bookings/"+bookingID+"/cancel", "", userID, entity.RoleUser)
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCancelBooking_MalformedBody(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/hotel-bookings/"+uuid.NewString()+"/cancel",
		`{"reason":`, uuid.New(), entity.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	svc.On("CancelBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, usecase.ErrAlreadyCancelled)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/hotel-bookings/"+uuid.NewString()+"/cancel",
		`{"reason": "plans changed"}`, uuid.New(), entity.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "already cancelled")
}

func TestGetUserBookings_QueryParams(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())
	userID := uuid.New()

	svc.On("GetUserBookings", mock.Anything, userID.String(), mock.MatchedBy(func(r *request.BookingListRequest) bool {
		return r.Page == 3 && r.PerPage == 20 && r.Status != nil && *r.Status == "confirmed" && r.HotelID == nil
	})).Return(response.NewPaginatedResponse([]response.BookingResponse{}, 3, 20, 0), nil)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/hotel-bookings?page=3&per_page=20&status=confirmed", "", userID, entity.RoleUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateStatusByVendor_ForeignBooking(t *testing.T) {
	svc := new(MockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	svc.On("UpdateStatusByVendor", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, usecase.ErrNotFound)

	rec := httptest.NewRecorder()
	bookingRouter(h).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/vendor/bookings/"+uuid.NewString()+"/status",
		`{"status": "confirmed"}`, uuid.New(), entity.RoleVendor))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
