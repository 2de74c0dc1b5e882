package usecase

import (
	"context"
	"fmt"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: user id %q", ErrInvalidID, userID)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
