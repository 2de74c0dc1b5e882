package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, repo *repository.Repository, log *zap.Logger) {
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/user/profile", userHandler.GetProfile)
}
