package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/events"
	"travel-booking/internal/wire"
	"travel-booking/pkg/database"
	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			autoMigrate, _ := cmd.Flags().GetBool("auto-migrate")
			return runServer(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().Bool("auto-migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServer(ctx context.Context, autoMigrate bool) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := connectDB(config, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if autoMigrate {
		migrator, err := database.NewMigrator(db.Pool(), logger)
		if err != nil {
			return err
		}
		err = migrator.Up(ctx)
		migrator.Close()
		if err != nil {
			return err
		}
	}

	deps := wire.Deps{DB: db}

	if rdb := newRedisClient(ctx, config.Redis, logger); rdb != nil {
		defer rdb.Close()
		deps.Redis = rdb
	}

	if len(config.Kafka.Brokers) > 0 {
		producer := events.NewProducer(config.Kafka.Brokers, config.Kafka.BookingTopic, logger)
		defer producer.Close()
		deps.Publisher = producer
		logger.Info("Booking events enabled",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.BookingTopic),
		)
	}

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, deps, config, logger)

	return serveHTTP(ctx, app.Router, config.App, logger)
}

// newRedisClient returns nil when redis is not configured or unreachable;
// rate limiting is then skipped.
func newRedisClient(ctx context.Context, cfg utils.RedisConfig, logger *zap.Logger) *redis.Client {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, rate limiting disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, rate limiting disabled", zap.Error(err), zap.String("addr", cfg.Addr))
		rdb.Close()
		return nil
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr))
	return rdb
}

// serveHTTP blocks until SIGINT/SIGTERM, then drains in-flight requests
func serveHTTP(ctx context.Context, handler http.Handler, cfg utils.AppConfig, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
