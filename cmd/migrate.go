package cmd

import (
	"context"
	"fmt"

	"travel-booking/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					return m.Up(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					return m.Down(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					if err := m.Status(ctx); err != nil {
						return err
					}
					version, err := m.Version(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("Current version: %d\n", version)
					return nil
				})
			},
		},
	)

	return cmd
}

func withMigrator(ctx context.Context, fn func(context.Context, *database.Migrator) error) error {
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

	migrator, err := database.NewMigrator(db.Pool(), logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := fn(ctx, migrator); err != nil {
		logger.Error("Migration command failed", zap.Error(err))
		return err
	}
	return nil
}
