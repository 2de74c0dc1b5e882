package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/events"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func workerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume booking events into the audit log and prune expired sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("session-cleanup-interval")
			return runWorker(cmd.Context(), interval)
		},
	}
	cmd.Flags().Duration("session-cleanup-interval", time.Hour, "how often expired sessions are deleted")
	return cmd
}

func runWorker(ctx context.Context, cleanupInterval time.Duration) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := connectDB(config, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := repository.NewRepository(db, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	if len(config.Kafka.Brokers) > 0 {
		consumer := events.NewConsumer(config.Kafka.Brokers, config.Kafka.GroupID, config.Kafka.BookingTopic, logger)
		defer consumer.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Consuming booking events", zap.String("topic", config.Kafka.BookingTopic))
			if err := consumer.Consume(ctx, events.AuditLogger(logger)); err != nil {
				logger.Error("Event consumer stopped", zap.Error(err))
				stop()
			}
		}()
	} else {
		logger.Warn("KAFKA_BROKERS not set, audit consumer disabled")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanSessions(ctx, repos.Session, cleanupInterval, logger)
	}()

	<-ctx.Done()
	logger.Info("Worker shutting down")
	wg.Wait()
	return nil
}

func cleanSessions(ctx context.Context, sessions repository.SessionRepository, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				continue
			}
			logger.Info("Expired sessions removed", zap.Int64("count", removed))
		}
	}
}
