// Package sqlitestorage stores snapshots in a local SQLite file through the
// cgo-free glebarez driver.
package sqlitestorage

import (
	"log/slog"

	"github.com/OCAP2/planner/internal/config"
	"github.com/OCAP2/planner/internal/database"
	gormstorage "github.com/OCAP2/planner/internal/storage/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	path string
}

// New opens the database at cfg.Path. An empty path keeps snapshots in
// memory for the life of the process.
func New(cfg config.SQLiteConfig, logger *slog.Logger) (*Backend, error) {
	db, err := database.OpenSQLite(cfg.Path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:     db,
			Logger: logger.With("storage", "sqlite", "path", cfg.Path),
		}),
		path: cfg.Path,
	}, nil
}

// Path is the database file, empty when in memory.
func (b *Backend) Path() string {
	return b.path
}

// Close lets SQLite refresh its query planner statistics before closing.
func (b *Backend) Close() error {
	_ = b.DB().Exec("PRAGMA optimize;").Error
	return b.Backend.Close()
}
