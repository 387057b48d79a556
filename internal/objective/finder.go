// Package objective decides which theater entities a side may plan missions
// against and in which order. Every enumeration is a lazy iterator; ranked
// enumerations collect and sort their candidates when iteration starts.
package objective

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/OCAP2/planner/internal/cache"
	"github.com/OCAP2/planner/internal/doctrine"
	"github.com/OCAP2/planner/pkg/core"
	"go.opentelemetry.io/otel/metric"
)

// AirfieldThreatRange is how close an enemy operational airfield must be for
// a friendly control point to count as vulnerable.
const AirfieldThreatRange = core.Distance(150 * core.MetersPerNauticalMile)

// ErrNoFriendlyControlPoints means the side holds no territory left to
// operate from. Callers should treat it as the end of the campaign rather
// than retry.
var ErrNoFriendlyControlPoints = errors.New("no friendly control points remain")

// Theater is the read-only view of the world the finder enumerates.
type Theater interface {
	ControlPoints() iter.Seq[*core.ControlPoint]
	Conflicts() iter.Seq[*core.FrontLine]
}

// ThreatZone is the threat posed by the opposing side.
type ThreatZone interface {
	ThreatenedByAirDefense(target core.MissionTarget) bool
	DistanceToThreat(pos core.Position3D) core.Distance
}

// DistanceCache looks up the airfields closest to a target.
type DistanceCache interface {
	ClosestAirfields(target core.MissionTarget) *cache.ClosestAirfields
}

// TransferRegistry filters pending transfers by destination.
type TransferRegistry interface {
	ConvoysTravellingTo(cp *core.ControlPoint) iter.Seq[*core.Convoy]
	CargoShipsTravellingTo(cp *core.ControlPoint) iter.Seq[*core.CargoShip]
}

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Dependencies holds everything a Finder reads from.
type Dependencies struct {
	Theater   Theater
	Threats   ThreatZone
	Airfields DistanceCache
	Transfers TransferRegistry

	// Doctrine backs the default EWR policy when EWRPolicy is nil.
	Doctrine  doctrine.Doctrine
	EWRPolicy doctrine.RangePolicy

	Logger Logger       // defaults to slog.Default()
	Meter  metric.Meter // defaults to the global meter
}

// Finder enumerates candidate objectives for one side.
type Finder struct {
	side      core.Side
	theater   Theater
	threats   ThreatZone
	airfields DistanceCache
	transfers TransferRegistry
	ewrPolicy doctrine.RangePolicy
	logger    Logger

	rankings   metric.Int64Counter
	candidates metric.Int64Counter
}

// New creates a finder planning for side.
func New(side core.Side, deps Dependencies) (*Finder, error) {
	if !side.IsValid() {
		return nil, fmt.Errorf("invalid side %q", side)
	}
	switch {
	case deps.Theater == nil:
		return nil, errors.New("theater is required")
	case deps.Threats == nil:
		return nil, errors.New("threat zone is required")
	case deps.Airfields == nil:
		return nil, errors.New("distance cache is required")
	case deps.Transfers == nil:
		return nil, errors.New("transfer registry is required")
	}

	f := &Finder{
		side:      side,
		theater:   deps.Theater,
		threats:   deps.Threats,
		airfields: deps.Airfields,
		transfers: deps.Transfers,
		ewrPolicy: deps.EWRPolicy,
		logger:    deps.Logger,
	}
	if f.ewrPolicy == nil {
		f.ewrPolicy = doctrine.CoveredIngressPolicy{Doctrine: deps.Doctrine}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	m := deps.Meter
	if m == nil {
		m = meter()
	}

	var err error
	f.rankings, err = m.Int64Counter(
		"objective.rankings",
		metric.WithDescription("Ranked enumerations started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rankings counter: %w", err)
	}

	f.candidates, err = m.Int64Counter(
		"objective.candidates",
		metric.WithDescription("Candidates collected by ranked enumerations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating candidates counter: %w", err)
	}

	return f, nil
}

// Side is the perspective the finder plans for.
func (f *Finder) Side() core.Side {
	return f.side
}

// ClosestAirfieldsTo forwards to the distance cache.
func (f *Finder) ClosestAirfieldsTo(target core.MissionTarget) *cache.ClosestAirfields {
	return f.airfields.ClosestAirfields(target)
}
