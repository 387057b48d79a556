// Package theater holds the control points of a campaign map and the front
// lines between them.
package theater

import (
	"errors"
	"fmt"
	"iter"

	"github.com/OCAP2/planner/pkg/core"
)

// ErrUnknownControlPoint is returned when a name does not match any control
// point in the theater.
var ErrUnknownControlPoint = errors.New("unknown control point")

// Theater is an ordered set of control points. Enumeration order is the
// order control points were added.
type Theater struct {
	Name          string
	controlPoints []*core.ControlPoint
	byName        map[string]*core.ControlPoint
	nextID        uint
}

// New creates an empty theater.
func New(name string) *Theater {
	return &Theater{
		Name:   name,
		byName: make(map[string]*core.ControlPoint),
	}
}

// AddControlPoint appends cp to the theater. Names must be unique.
func (t *Theater) AddControlPoint(cp *core.ControlPoint) error {
	if _, ok := t.byName[cp.Name]; ok {
		return fmt.Errorf("duplicate control point %q", cp.Name)
	}
	t.nextID++
	if cp.ID == 0 {
		cp.ID = t.nextID
	}
	t.controlPoints = append(t.controlPoints, cp)
	t.byName[cp.Name] = cp
	return nil
}

// ControlPoint looks up a control point by name.
func (t *Theater) ControlPoint(name string) (*core.ControlPoint, error) {
	cp, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControlPoint, name)
	}
	return cp, nil
}

// Connect links two control points by name.
func (t *Theater) Connect(a, b string) error {
	cpA, err := t.ControlPoint(a)
	if err != nil {
		return err
	}
	cpB, err := t.ControlPoint(b)
	if err != nil {
		return err
	}
	cpA.Connect(cpB)
	return nil
}

// Len returns the number of control points.
func (t *Theater) Len() int {
	return len(t.controlPoints)
}

// ControlPoints yields every control point in theater order.
func (t *Theater) ControlPoints() iter.Seq[*core.ControlPoint] {
	return func(yield func(*core.ControlPoint) bool) {
		for _, cp := range t.controlPoints {
			if !yield(cp) {
				return
			}
		}
	}
}

// Conflicts yields a front line for every blue control point and each of
// its connected red control points. Blue control points are visited in
// theater order and their neighbours in connection order, so a pair is
// never yielded twice.
func (t *Theater) Conflicts() iter.Seq[*core.FrontLine] {
	return func(yield func(*core.FrontLine) bool) {
		for _, cp := range t.controlPoints {
			if cp.Owner != core.SideBlue {
				continue
			}
			for _, connected := range cp.Connected {
				if connected.Owner == core.SideBlue {
					continue
				}
				if !yield(core.NewFrontLine(cp, connected)) {
					return
				}
			}
		}
	}
}
