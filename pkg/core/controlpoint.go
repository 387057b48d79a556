// pkg/core/controlpoint.go
package core

import (
	"fmt"
	"strings"
)

// ControlPointKind distinguishes the kinds of side-owned locations.
type ControlPointKind uint8

const (
	KindAirfield ControlPointKind = iota + 1
	KindCarrier
	KindLHA
	KindFOB
	KindOffMapSpawn
)

var controlPointKindNames = map[ControlPointKind]string{
	KindAirfield:    "airfield",
	KindCarrier:     "carrier",
	KindLHA:         "lha",
	KindFOB:         "fob",
	KindOffMapSpawn: "off_map",
}

func (k ControlPointKind) String() string {
	if name, ok := controlPointKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ControlPointKind(%d)", k)
}

// ParseControlPointKind is the inverse of ControlPointKind.String.
func ParseControlPointKind(s string) (ControlPointKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range controlPointKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown control point kind: %q", s)
}

// ControlPoint is a side-owned location: airfield, ship, FOB or off-map
// spawn. Ground objects and connections are kept in insertion order so that
// enumerations over a theater are stable.
type ControlPoint struct {
	ID       uint
	Name     string
	Kind     ControlPointKind
	Owner    Side
	Position Position3D

	// RunwayOperational is false while the runway (or flight deck) is
	// damaged beyond use.
	RunwayOperational bool

	// Aircraft maps airframe type to the number parked at this base.
	Aircraft map[string]int

	GroundObjects []*GroundObject
	Connected     []*ControlPoint
}

func (cp *ControlPoint) TargetName() string         { return cp.Name }
func (cp *ControlPoint) TargetPosition() Position3D { return cp.Position }

// IsFriendly reports whether the control point is owned by side.
func (cp *ControlPoint) IsFriendly(side Side) bool {
	return cp.Owner == side
}

// IsOffMap reports whether the control point is an off-map spawn.
func (cp *ControlPoint) IsOffMap() bool {
	return cp.Kind == KindOffMapSpawn
}

// IsFleet reports whether the control point is a ship.
func (cp *ControlPoint) IsFleet() bool {
	return cp.Kind == KindCarrier || cp.Kind == KindLHA
}

// RunwayIsOperational reports whether aircraft can currently operate from
// the control point. Off-map spawns are never on the map to begin with.
func (cp *ControlPoint) RunwayIsOperational() bool {
	switch cp.Kind {
	case KindAirfield, KindCarrier, KindLHA, KindFOB:
		return cp.RunwayOperational
	case KindOffMapSpawn:
		return false
	default:
		panic(fmt.Sprintf("unhandled control point kind %v", cp.Kind))
	}
}

// TotalAircraft is the size of the parked aircraft inventory.
func (cp *ControlPoint) TotalAircraft() int {
	total := 0
	for _, n := range cp.Aircraft {
		total += n
	}
	return total
}

// AddGroundObject attaches g to the control point.
func (cp *ControlPoint) AddGroundObject(g *GroundObject) {
	g.ControlPoint = cp
	cp.GroundObjects = append(cp.GroundObjects, g)
}

// Connect links two control points in both directions. Repeated calls are
// no-ops.
func (cp *ControlPoint) Connect(other *ControlPoint) {
	if cp == other || cp.IsConnected(other) {
		return
	}
	cp.Connected = append(cp.Connected, other)
	other.Connected = append(other.Connected, cp)
}

// IsConnected reports whether other is directly connected to cp.
func (cp *ControlPoint) IsConnected(other *ControlPoint) bool {
	for _, c := range cp.Connected {
		if c == other {
			return true
		}
	}
	return false
}
