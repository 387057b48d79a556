// pkg/core/frontline.go
package core

import "fmt"

// FrontLine is a pair of connected control points held by opposing sides.
type FrontLine struct {
	Blue *ControlPoint
	Red  *ControlPoint
}

// NewFrontLine orders a and b by owner.
func NewFrontLine(a, b *ControlPoint) *FrontLine {
	if a.Owner == SideBlue {
		return &FrontLine{Blue: a, Red: b}
	}
	return &FrontLine{Blue: b, Red: a}
}

func (f *FrontLine) TargetName() string {
	return fmt.Sprintf("Front line %s/%s", f.Blue.Name, f.Red.Name)
}

// TargetPosition is the midpoint between the two control points.
func (f *FrontLine) TargetPosition() Position3D {
	return f.Blue.Position.Midpoint(f.Red.Position)
}

// ControlPointHostileTo returns the control point of the pair that side
// does not own.
func (f *FrontLine) ControlPointHostileTo(side Side) *ControlPoint {
	if side == SideBlue {
		return f.Red
	}
	return f.Blue
}

// ControlPointFriendlyTo returns the control point of the pair owned by side.
func (f *FrontLine) ControlPointFriendlyTo(side Side) *ControlPoint {
	if side == SideBlue {
		return f.Blue
	}
	return f.Red
}
