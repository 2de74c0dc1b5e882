package cmd

import (
	"fmt"
	"log"
	"os"

	"travel-booking/pkg/database"
	"travel-booking/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "travel-booking",
	Short: "Hotel booking REST API",
}

func init() {
	rootCmd.AddCommand(serveCmd(), migrateCmd(), workerCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and the logger shared by every command
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

func connectDB(config *utils.Config, logger *zap.Logger) (*database.DB, error) {
	db, err := database.InitDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connected",
		zap.String("host", config.Database.Host),
		zap.String("name", config.Database.Name),
	)
	return db, nil
}
