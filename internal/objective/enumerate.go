package objective

import (
	"fmt"
	"iter"

	"github.com/OCAP2/planner/pkg/core"
)

// FriendlyControlPoints yields control points owned by the finder's side in
// theater order.
func (f *Finder) FriendlyControlPoints() iter.Seq[*core.ControlPoint] {
	return f.controlPoints(func(cp *core.ControlPoint) bool { return cp.IsFriendly(f.side) })
}

// EnemyControlPoints yields every control point the finder's side does not
// own, in theater order.
func (f *Finder) EnemyControlPoints() iter.Seq[*core.ControlPoint] {
	return f.controlPoints(func(cp *core.ControlPoint) bool { return !cp.IsFriendly(f.side) })
}

func (f *Finder) controlPoints(keep func(*core.ControlPoint) bool) iter.Seq[*core.ControlPoint] {
	return func(yield func(*core.ControlPoint) bool) {
		for cp := range f.theater.ControlPoints() {
			if !keep(cp) {
				continue
			}
			if !yield(cp) {
				return
			}
		}
	}
}

// AllPossibleTargets yields each control point followed by its ground
// objects, then every front line. Nothing is filtered.
func (f *Finder) AllPossibleTargets() iter.Seq[core.MissionTarget] {
	return func(yield func(core.MissionTarget) bool) {
		for cp := range f.theater.ControlPoints() {
			if !yield(cp) {
				return
			}
			for _, g := range cp.GroundObjects {
				if !yield(g) {
					return
				}
			}
		}
		for fl := range f.theater.Conflicts() {
			if !yield(fl) {
				return
			}
		}
	}
}

// FrontLines yields the theater's front lines.
func (f *Finder) FrontLines() iter.Seq[*core.FrontLine] {
	return f.theater.Conflicts()
}

// enemyGroundObjects yields alive ground objects of enemy control points
// whose role passes keep.
func (f *Finder) enemyGroundObjects(keep func(core.Role) bool) iter.Seq[*core.GroundObject] {
	return func(yield func(*core.GroundObject) bool) {
		for cp := range f.EnemyControlPoints() {
			for _, g := range cp.GroundObjects {
				if g.Dead || !keep(g.Role) {
					continue
				}
				if !yield(g) {
					return
				}
			}
		}
	}
}

func isRole(want core.Role) func(core.Role) bool {
	return func(r core.Role) bool { return r == want }
}

// EnemyVehicleGroups yields alive enemy vehicle groups.
func (f *Finder) EnemyVehicleGroups() iter.Seq[*core.GroundObject] {
	return f.enemyGroundObjects(isRole(core.RoleVehicleGroup))
}

// EnemyShips yields alive enemy naval groups.
func (f *Finder) EnemyShips() iter.Seq[*core.GroundObject] {
	return f.enemyGroundObjects(isRole(core.RoleNaval))
}

// ThreateningVehicleGroups yields enemy vehicle groups closest to friendly
// territory first.
func (f *Finder) ThreateningVehicleGroups() iter.Seq[*core.GroundObject] {
	return rankByRange(f, "threatening_vehicle_groups", f.EnemyVehicleGroups())
}

// ThreateningShips yields enemy naval groups closest to friendly territory
// first.
func (f *Finder) ThreateningShips() iter.Seq[*core.GroundObject] {
	return rankByRange(f, "threatening_ships", f.EnemyShips())
}

// StrikeTargets yields enemy ground objects suitable for strike missions,
// closest to friendly territory first. Vehicle groups, naval groups and SAM
// sites are left to their dedicated missions. A FOB's own headquarters is
// never yielded. Ground objects sharing a name are yielded once.
func (f *Finder) StrikeTargets() iter.Seq[*core.GroundObject] {
	candidates := func(yield func(*core.GroundObject) bool) {
		seen := make(map[string]struct{})
		for cp := range f.EnemyControlPoints() {
			for _, g := range cp.GroundObjects {
				if !strikeable(g) || g.Dead {
					continue
				}
				if _, ok := seen[g.Name]; ok {
					continue
				}
				seen[g.Name] = struct{}{}
				if !yield(g) {
					return
				}
			}
		}
	}
	return rankByRange(f, "strike_targets", candidates)
}

func strikeable(g *core.GroundObject) bool {
	switch g.Role {
	case core.RoleVehicleGroup, core.RoleNaval, core.RoleSAM:
		return false
	case core.RoleBuilding:
		return !isFOBHeadquarters(g)
	case core.RoleEWR, core.RoleMissileSite, core.RoleCoastalSite:
		return true
	default:
		panic(fmt.Sprintf("unhandled ground object role %v", g.Role))
	}
}

// isFOBHeadquarters reports whether g is the structure that makes up a FOB
// itself. Buildings merely located at a FOB are valid targets.
func isFOBHeadquarters(g *core.GroundObject) bool {
	return g.IsControlPoint && g.ControlPoint != nil && g.ControlPoint.Kind == core.KindFOB
}

// VulnerableControlPoints yields friendly on-map control points that have
// an enemy operational airfield within AirfieldThreatRange.
func (f *Finder) VulnerableControlPoints() iter.Seq[*core.ControlPoint] {
	return func(yield func(*core.ControlPoint) bool) {
		for cp := range f.FriendlyControlPoints() {
			if cp.IsOffMap() {
				continue
			}
			if !f.threatenedByEnemyAirfield(cp) {
				continue
			}
			if !yield(cp) {
				return
			}
		}
	}
}

func (f *Finder) threatenedByEnemyAirfield(cp *core.ControlPoint) bool {
	for airfield := range f.airfields.ClosestAirfields(cp).OperationalAirfieldsWithin(AirfieldThreatRange) {
		if !airfield.IsFriendly(f.side) {
			return true
		}
	}
	return false
}

// OCATargets yields enemy airfields holding at least minAircraft aircraft,
// closest to friendly territory first. Carriers and FOBs are not candidates.
func (f *Finder) OCATargets(minAircraft int) iter.Seq[*core.ControlPoint] {
	candidates := func(yield func(*core.ControlPoint) bool) {
		for cp := range f.EnemyControlPoints() {
			if cp.Kind != core.KindAirfield || cp.TotalAircraft() < minAircraft {
				continue
			}
			if !yield(cp) {
				return
			}
		}
	}
	return rankByRange(f, "oca_targets", candidates)
}

// Convoys yields convoys heading to the enemy side of each front line.
func (f *Finder) Convoys() iter.Seq[*core.Convoy] {
	return func(yield func(*core.Convoy) bool) {
		for fl := range f.FrontLines() {
			for c := range f.transfers.ConvoysTravellingTo(fl.ControlPointHostileTo(f.side)) {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// CargoShips yields cargo ships heading to the enemy side of each front
// line.
func (f *Finder) CargoShips() iter.Seq[*core.CargoShip] {
	return func(yield func(*core.CargoShip) bool) {
		for fl := range f.FrontLines() {
			for s := range f.transfers.CargoShipsTravellingTo(fl.ControlPointHostileTo(f.side)) {
				if !yield(s) {
					return
				}
			}
		}
	}
}
