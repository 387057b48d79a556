// Package gormstorage stores plan snapshots through GORM. The sqlite and
// postgres backends embed it and only differ in how they connect.
package gormstorage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OCAP2/planner/internal/database"
	"github.com/OCAP2/planner/internal/model"
	"github.com/OCAP2/planner/internal/model/convert"
	"github.com/OCAP2/planner/internal/report"
	"github.com/OCAP2/planner/pkg/core"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no snapshot matches a lookup.
var ErrNotFound = errors.New("snapshot not found")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger

	// NewID generates snapshot ids. Defaults to uuid.New.
	NewID func() uuid.UUID
}

// Backend stores snapshots in any database gorm can talk to.
type Backend struct {
	db     *gorm.DB
	logger *slog.Logger
	newID  func() uuid.UUID
}

// New creates a GORM backend. Call Init before use.
func New(deps Dependencies) *Backend {
	b := &Backend{
		db:     deps.DB,
		logger: deps.Logger,
		newID:  deps.NewID,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.newID == nil {
		b.newID = uuid.New
	}
	return b
}

// DB exposes the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the snapshot schema.
func (b *Backend) Init() error {
	if err := database.Migrate(b.db); err != nil {
		return err
	}
	b.logger.Debug("Snapshot schema migrated", "dialect", b.db.Dialector.Name())
	return nil
}

// Close closes the database connection.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// SaveSnapshot stores p with all its sections in one transaction.
func (b *Backend) SaveSnapshot(ctx context.Context, p *report.Plan) (string, error) {
	s, err := convert.PlanToSnapshot(p, b.newID())
	if err != nil {
		return "", fmt.Errorf("converting plan: %w", err)
	}
	err = b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&s).Error
	})
	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}
	b.logger.Info("Snapshot saved", "uuid", s.UUID, "side", s.Side, "sections", len(s.Sections))
	return s.UUID, nil
}

// LatestSnapshot returns the most recently planned snapshot for side.
func (b *Backend) LatestSnapshot(ctx context.Context, side core.Side) (*report.Plan, error) {
	var s model.Snapshot
	err := b.withSections(ctx).
		Where("side = ?", string(side)).
		Order("planned_at DESC").
		Order("id DESC").
		First(&s).Error
	return b.toPlan(s, err)
}

// Snapshot returns the snapshot with the given id.
func (b *Backend) Snapshot(ctx context.Context, id string) (*report.Plan, error) {
	var s model.Snapshot
	err := b.withSections(ctx).Where("uuid = ?", id).First(&s).Error
	return b.toPlan(s, err)
}

func (b *Backend) withSections(ctx context.Context) *gorm.DB {
	return b.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Sections.Objectives", func(db *gorm.DB) *gorm.DB { return db.Order("rank") })
}

func (b *Backend) toPlan(s model.Snapshot, err error) (*report.Plan, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return convert.SnapshotToPlan(s)
}
