// pkg/core/position.go
package core

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Position3D is a planar theater position in meters.
type Position3D struct {
	X float64 `json:"x"` // easting
	Y float64 `json:"y"` // northing
	Z float64 `json:"z"` // elevation ASL
}

// Point converts the position to a simplefeatures point. Elevation is kept
// but ignored by distance calculations. Non-finite X or Y is an error.
func (p Position3D) Point() (geom.Point, error) {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.X, Y: p.Y},
		Z:    p.Z,
		Type: geom.DimXYZ,
	})
}

// DistanceTo returns the planar distance between two positions. It is
// infinite when either position is not finite.
func (p Position3D) DistanceTo(o Position3D) Distance {
	a, err := p.Point()
	if err != nil {
		return InfiniteDistance()
	}
	b, err := o.Point()
	if err != nil {
		return InfiniteDistance()
	}
	d, ok := geom.Distance(a.AsGeometry(), b.AsGeometry())
	if !ok {
		return InfiniteDistance()
	}
	return Meters(d)
}

// Midpoint returns the position halfway between p and o.
func (p Position3D) Midpoint(o Position3D) Position3D {
	return Position3D{
		X: (p.X + o.X) / 2,
		Y: (p.Y + o.Y) / 2,
		Z: (p.Z + o.Z) / 2,
	}
}
