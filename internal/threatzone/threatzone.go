// Package threatzone approximates the airspace a side can defend: circles
// around its air defenses and around airbases that can launch fighters.
package threatzone

import (
	"fmt"
	"iter"

	"github.com/OCAP2/planner/internal/doctrine"
	"github.com/OCAP2/planner/pkg/core"
)

type circle struct {
	name   string
	center core.Position3D
	radius core.Distance
}

// distanceTo is zero inside the circle.
func (c circle) distanceTo(p core.Position3D) core.Distance {
	d := c.center.DistanceTo(p) - c.radius
	if d < 0 {
		return 0
	}
	return d
}

func (c circle) contains(p core.Position3D) bool {
	return c.center.DistanceTo(p) <= c.radius
}

// ThreatZones is the threat posed by one side.
type ThreatZones struct {
	Side        core.Side
	airDefenses []circle
	airbases    []circle
}

// ForSide builds the threat zones posed by side from the given control
// points. Dead ground objects, off-map spawns and bases without aircraft
// contribute nothing.
func ForSide(controlPoints iter.Seq[*core.ControlPoint], side core.Side, d doctrine.Doctrine) *ThreatZones {
	z := &ThreatZones{Side: side}
	for cp := range controlPoints {
		if !cp.IsFriendly(side) || cp.IsOffMap() {
			continue
		}
		if cp.RunwayIsOperational() && cp.TotalAircraft() > 0 {
			z.airbases = append(z.airbases, circle{name: cp.Name, center: cp.Position, radius: d.CapThreatRange})
		}
		for _, g := range cp.GroundObjects {
			if g.Dead || !providesAirDefense(g.Role) {
				continue
			}
			r := g.MaxThreatRange()
			if r <= 0 {
				continue
			}
			z.airDefenses = append(z.airDefenses, circle{name: g.Name, center: g.Position, radius: r})
		}
	}
	return z
}

func providesAirDefense(r core.Role) bool {
	switch r {
	case core.RoleSAM, core.RoleNaval, core.RoleVehicleGroup:
		return true
	case core.RoleEWR, core.RoleBuilding, core.RoleMissileSite, core.RoleCoastalSite:
		return false
	default:
		panic(fmt.Sprintf("unhandled ground object role %v", r))
	}
}

// ThreatenedByAirDefense reports whether target lies inside any air defense
// engagement envelope of this side. The boundary counts as inside.
func (z *ThreatZones) ThreatenedByAirDefense(target core.MissionTarget) bool {
	pos := target.TargetPosition()
	for _, c := range z.airDefenses {
		if c.contains(pos) {
			return true
		}
	}
	return false
}

// ThreatenedByAircraft reports whether target lies within fighter reach of
// one of this side's airbases.
func (z *ThreatZones) ThreatenedByAircraft(target core.MissionTarget) bool {
	pos := target.TargetPosition()
	for _, c := range z.airbases {
		if c.contains(pos) {
			return true
		}
	}
	return false
}

// DistanceToThreat is the distance from pos to the nearest threat of any
// kind: zero inside a zone, +Inf when the side poses no threat at all.
func (z *ThreatZones) DistanceToThreat(pos core.Position3D) core.Distance {
	best := core.InfiniteDistance()
	for _, zones := range [][]circle{z.airDefenses, z.airbases} {
		for _, c := range zones {
			if d := c.distanceTo(pos); d < best {
				best = d
			}
		}
	}
	return best
}

// AirDefenseCount is the number of air defense envelopes in the zone.
func (z *ThreatZones) AirDefenseCount() int { return len(z.airDefenses) }

// AirbaseCount is the number of airbase envelopes in the zone.
func (z *ThreatZones) AirbaseCount() int { return len(z.airbases) }
