// Package transfers tracks convoys and cargo ships moving supplies between
// control points.
package transfers

import (
	"iter"
	"slices"
	"sync"

	"github.com/OCAP2/planner/pkg/core"
)

// Registry holds pending transfers in registration order.
type Registry struct {
	mu         sync.RWMutex
	convoys    []*core.Convoy
	cargoShips []*core.CargoShip
}

// NewRegistry returns a registry seeded with the given transfers.
func NewRegistry(convoys []*core.Convoy, cargoShips []*core.CargoShip) *Registry {
	return &Registry{
		convoys:    slices.Clone(convoys),
		cargoShips: slices.Clone(cargoShips),
	}
}

func (r *Registry) AddConvoy(c *core.Convoy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.convoys = append(r.convoys, c)
}

func (r *Registry) AddCargoShip(s *core.CargoShip) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cargoShips = append(r.cargoShips, s)
}

// Len returns the number of convoys and cargo ships.
func (r *Registry) Len() (convoys, cargoShips int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.convoys), len(r.cargoShips)
}

// ConvoysTravellingTo yields convoys whose destination is cp.
func (r *Registry) ConvoysTravellingTo(cp *core.ControlPoint) iter.Seq[*core.Convoy] {
	r.mu.RLock()
	convoys := slices.Clone(r.convoys)
	r.mu.RUnlock()
	return travellingTo(convoys, cp, func(c *core.Convoy) *core.ControlPoint { return c.Destination })
}

// CargoShipsTravellingTo yields cargo ships whose destination is cp.
func (r *Registry) CargoShipsTravellingTo(cp *core.ControlPoint) iter.Seq[*core.CargoShip] {
	r.mu.RLock()
	ships := slices.Clone(r.cargoShips)
	r.mu.RUnlock()
	return travellingTo(ships, cp, func(s *core.CargoShip) *core.ControlPoint { return s.Destination })
}

func travellingTo[T any](transfers []T, cp *core.ControlPoint, destination func(T) *core.ControlPoint) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range transfers {
			if destination(t) != cp {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
