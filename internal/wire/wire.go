package wire

import (
	"context"
	"net/http"
	"time"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries the optional infrastructure the router needs besides repositories
type Deps struct {
	DB        Pinger
	Redis     *redis.Client
	Publisher usecase.EventPublisher
}

type App struct {
	Router *chi.Mux
}

func Wiring(repo *repository.Repository, deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, deps.Publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, deps, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	deps Deps,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireHotel(r, handler.Hotel, repo, logger)
	wireBooking(r, handler.Booking, repo, deps, config, logger)

	r.Get("/health", healthHandler(deps.DB))

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
