package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, repo *repository.Repository, log *zap.Logger) {
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/logout", authHandler.Logout)
}
