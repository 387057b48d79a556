// Package postgres stores snapshots in a shared PostgreSQL database.
package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/OCAP2/planner/internal/config"
	"github.com/OCAP2/planner/internal/database"
	gormstorage "github.com/OCAP2/planner/internal/storage/gorm"
)

// Backend wraps the GORM backend for PostgreSQL.
type Backend struct {
	*gormstorage.Backend
}

// New connects to the database described by cfg.
func New(cfg config.DBConfig, logger *slog.Logger) (*Backend, error) {
	db, err := database.OpenPostgres(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:     db,
			Logger: logger.With("storage", "postgres", "host", cfg.Host, "database", cfg.Database),
		}),
	}, nil
}

// Init checks the connection before migrating.
func (b *Backend) Init() error {
	sqlDB, err := b.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to reach postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	return b.Backend.Init()
}
