package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrator runs the embedded goose migrations against the pool
type Migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, log *zap.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose needs database/sql
	return &Migrator{
		db:  stdlib.OpenDBFromPool(pool),
		log: log.With(zap.String("component", "migrator")),
	}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	m.log.Info("Applying database migrations")
	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	m.log.Info("Migrations applied")
	return nil
}

func (m *Migrator) Down(ctx context.Context) error {
	if err := goose.DownContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	m.log.Info("Rolled back one migration")
	return nil
}

func (m *Migrator) Status(ctx context.Context) error {
	return goose.StatusContext(ctx, m.db, migrationsDir)
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// Close closes the sql.DB handle only; the pool is owned by the caller
func (m *Migrator) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
