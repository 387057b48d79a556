package objective

import "github.com/OCAP2/planner/pkg/core"

// FarthestFriendlyControlPoint returns the friendly on-map control point
// farthest from any enemy threat. Ties go to the first in theater order.
func (f *Finder) FarthestFriendlyControlPoint() (*core.ControlPoint, error) {
	return f.frontier("farthest", func(candidate, best core.Distance) bool { return candidate > best })
}

// ClosestFriendlyControlPoint returns the friendly on-map control point
// closest to an enemy threat. Ties go to the first in theater order.
func (f *Finder) ClosestFriendlyControlPoint() (*core.ControlPoint, error) {
	return f.frontier("closest", func(candidate, best core.Distance) bool { return candidate < best })
}

// frontier returns ErrNoFriendlyControlPoints only when no friendly on-map
// control point exists.
func (f *Finder) frontier(which string, better func(candidate, best core.Distance) bool) (*core.ControlPoint, error) {
	var (
		found    *core.ControlPoint
		distance core.Distance
	)
	for cp := range f.FriendlyControlPoints() {
		if cp.IsOffMap() {
			continue
		}
		d := f.threats.DistanceToThreat(cp.Position)
		if found == nil || better(d, distance) {
			found, distance = cp, d
		}
	}
	if found == nil {
		f.logger.Error("no friendly control points remain", "side", f.side, "lookup", which)
		return nil, ErrNoFriendlyControlPoints
	}
	f.logger.Debug("frontier control point", "side", f.side, "lookup", which, "controlPoint", found.Name, "distanceToThreat", distance)
	return found, nil
}
