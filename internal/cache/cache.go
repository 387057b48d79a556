package cache

import (
	"iter"
	"slices"
	"sync"

	"github.com/OCAP2/planner/pkg/core"
)

// targetKey identifies a mission target. controlPoint is set only for
// control point targets, whose own entry leaves them out.
type targetKey struct {
	name         string
	position     core.Position3D
	controlPoint *core.ControlPoint
}

func keyOf(target core.MissionTarget) targetKey {
	cp, _ := target.(*core.ControlPoint)
	return targetKey{name: target.TargetName(), position: target.TargetPosition(), controlPoint: cp}
}

// ObjectiveDistanceCache memoizes the closest airfields to each mission
// target. Sorting every control point by distance is the expensive part of
// planning a package, and the same targets are looked up many times per
// turn. Call Reset whenever control points change hands or move.
type ObjectiveDistanceCache struct {
	mu            sync.RWMutex
	controlPoints []*core.ControlPoint
	closest       map[targetKey]*ClosestAirfields
}

// NewObjectiveDistanceCache snapshots the given control points.
func NewObjectiveDistanceCache(controlPoints iter.Seq[*core.ControlPoint]) *ObjectiveDistanceCache {
	return &ObjectiveDistanceCache{
		controlPoints: slices.Collect(controlPoints),
		closest:       make(map[targetKey]*ClosestAirfields),
	}
}

// ClosestAirfields returns the airfields closest to target, computing and
// storing them on first use.
func (c *ObjectiveDistanceCache) ClosestAirfields(target core.MissionTarget) *ClosestAirfields {
	key := keyOf(target)

	c.mu.RLock()
	ca, ok := c.closest[key]
	c.mu.RUnlock()
	if ok {
		return ca
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ca, ok := c.closest[key]; ok {
		return ca
	}
	ca = NewClosestAirfields(target, slices.Values(c.controlPoints))
	c.closest[key] = ca
	return ca
}

// Len returns the number of memoized targets.
func (c *ObjectiveDistanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.closest)
}

// Reset drops all memoized lookups and replaces the control point snapshot.
func (c *ObjectiveDistanceCache) Reset(controlPoints iter.Seq[*core.ControlPoint]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controlPoints = slices.Collect(controlPoints)
	c.closest = make(map[targetKey]*ClosestAirfields)
}
