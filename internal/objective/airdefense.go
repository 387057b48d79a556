package objective

import (
	"fmt"
	"iter"
	"slices"

	"github.com/OCAP2/planner/pkg/core"
)

// EnemyAirDefenses yields alive enemy EWR and SAM sites with the range used
// to order them. A SAM uses its engagement range. An EWR's range comes from
// the EWR policy, which is told whether the radar sits under its own side's
// air defense umbrella.
func (f *Finder) EnemyAirDefenses() iter.Seq2[*core.GroundObject, core.Distance] {
	return func(yield func(*core.GroundObject, core.Distance) bool) {
		for g := range f.enemyGroundObjects(isAirDefense) {
			if !yield(g, f.airDefenseRange(g)) {
				return
			}
		}
	}
}

func isAirDefense(r core.Role) bool {
	return r == core.RoleEWR || r == core.RoleSAM
}

func (f *Finder) airDefenseRange(g *core.GroundObject) core.Distance {
	switch g.Role {
	case core.RoleSAM:
		return g.MaxThreatRange()
	case core.RoleEWR:
		return f.ewrPolicy.EWRThreatRange(g, f.threats.ThreatenedByAirDefense(g))
	default:
		panic(fmt.Sprintf("ground object %q with role %v is not an air defense", g.Name, g.Role))
	}
}

// ThreateningAirDefenses yields enemy air defenses ordered by how far
// friendly control points sit outside their range. The most negative margin
// comes first. Equal margins keep enumeration order.
func (f *Finder) ThreateningAirDefenses() iter.Seq[*core.GroundObject] {
	return func(yield func(*core.GroundObject) bool) {
		friendly := slices.Collect(f.FriendlyControlPoints())
		var buf []scored[*core.GroundObject]
		for g, threatRange := range f.EnemyAirDefenses() {
			buf = append(buf, scored[*core.GroundObject]{item: g, score: closestMargin(g, threatRange, friendly)})
		}
		for _, s := range sortScored(f, "threatening_air_defenses", buf) {
			if !yield(s.item) {
				return
			}
		}
	}
}

func closestMargin(target core.MissionTarget, threatRange core.Distance, controlPoints []*core.ControlPoint) core.Distance {
	best := core.InfiniteDistance()
	for _, cp := range controlPoints {
		best = min(best, core.DistanceBetween(target, cp)-threatRange)
	}
	return best
}
