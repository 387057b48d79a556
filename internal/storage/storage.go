// Package storage persists plan snapshots.
package storage

import (
	"context"

	"github.com/OCAP2/planner/internal/report"
	gormstorage "github.com/OCAP2/planner/internal/storage/gorm"
	"github.com/OCAP2/planner/pkg/core"
)

// ErrNotFound is returned when no snapshot matches a lookup.
var ErrNotFound = gormstorage.ErrNotFound

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveSnapshot stores p and returns the snapshot's id.
	SaveSnapshot(ctx context.Context, p *report.Plan) (string, error)

	// LatestSnapshot returns the most recent plan stored for side.
	LatestSnapshot(ctx context.Context, side core.Side) (*report.Plan, error)
}
