package cache

import (
	"cmp"
	"iter"
	"slices"

	"github.com/OCAP2/planner/pkg/core"
)

type airfieldDistance struct {
	controlPoint *core.ControlPoint
	distance     core.Distance
}

// ClosestAirfields is every on-map control point ordered by distance from
// a target, closest first.
type ClosestAirfields struct {
	Target    core.MissionTarget
	airfields []airfieldDistance
}

// NewClosestAirfields sorts controlPoints by distance to target. The target
// itself and off-map spawns are left out. Equal distances keep input order.
func NewClosestAirfields(target core.MissionTarget, controlPoints iter.Seq[*core.ControlPoint]) *ClosestAirfields {
	self, _ := target.(*core.ControlPoint)
	var airfields []airfieldDistance
	for cp := range controlPoints {
		if cp == self || cp.IsOffMap() {
			continue
		}
		airfields = append(airfields, airfieldDistance{
			controlPoint: cp,
			distance:     core.DistanceBetween(target, cp),
		})
	}
	slices.SortStableFunc(airfields, func(a, b airfieldDistance) int {
		return cmp.Compare(a.distance, b.distance)
	})
	return &ClosestAirfields{Target: target, airfields: airfields}
}

// All yields every airfield with its distance to the target.
func (c *ClosestAirfields) All() iter.Seq2[*core.ControlPoint, core.Distance] {
	return func(yield func(*core.ControlPoint, core.Distance) bool) {
		for _, a := range c.airfields {
			if !yield(a.controlPoint, a.distance) {
				return
			}
		}
	}
}

// AirfieldsWithin yields airfields no farther than r from the target.
func (c *ClosestAirfields) AirfieldsWithin(r core.Distance) iter.Seq[*core.ControlPoint] {
	return func(yield func(*core.ControlPoint) bool) {
		for _, a := range c.airfields {
			if a.distance > r {
				return
			}
			if !yield(a.controlPoint) {
				return
			}
		}
	}
}

// OperationalAirfieldsWithin is AirfieldsWithin restricted to airfields
// whose runway can currently launch aircraft.
func (c *ClosestAirfields) OperationalAirfieldsWithin(r core.Distance) iter.Seq[*core.ControlPoint] {
	return func(yield func(*core.ControlPoint) bool) {
		for cp := range c.AirfieldsWithin(r) {
			if !cp.RunwayIsOperational() {
				continue
			}
			if !yield(cp) {
				return
			}
		}
	}
}
