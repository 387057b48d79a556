package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OCAP2/planner/internal/config"
	"github.com/OCAP2/planner/internal/report"
	"github.com/OCAP2/planner/internal/storage/postgres"
	sqlitestorage "github.com/OCAP2/planner/internal/storage/sqlite"
	"github.com/OCAP2/planner/pkg/core"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, db config.DBConfig, logger *slog.Logger) (Backend, error) {
	switch cfg.Type {
	case "", "none":
		return discard{}, nil
	case "sqlite":
		b, err := sqlitestorage.New(cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "postgres":
		b, err := postgres.New(db, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// discard drops every snapshot.
type discard struct{}

func (discard) Init() error  { return nil }
func (discard) Close() error { return nil }

func (discard) SaveSnapshot(context.Context, *report.Plan) (string, error) {
	return "", nil
}

func (discard) LatestSnapshot(context.Context, core.Side) (*report.Plan, error) {
	return nil, ErrNotFound
}
