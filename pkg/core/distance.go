// pkg/core/distance.go
package core

import (
	"fmt"
	"math"
)

const (
	MetersPerNauticalMile = 1852.0
	metersPerKilometer    = 1000.0
)

// Distance is a length in meters. It is used both for geographic distances
// and for weapon/sensor ranges, and may be negative when a range is
// subtracted from a distance.
type Distance float64

// Meters builds a Distance from meters.
func Meters(m float64) Distance { return Distance(m) }

// NauticalMiles builds a Distance from nautical miles.
func NauticalMiles(nm float64) Distance { return Distance(nm * MetersPerNauticalMile) }

// Kilometers builds a Distance from kilometers.
func Kilometers(km float64) Distance { return Distance(km * metersPerKilometer) }

// InfiniteDistance is larger than any finite distance.
func InfiniteDistance() Distance { return Distance(math.Inf(1)) }

func (d Distance) Meters() float64        { return float64(d) }
func (d Distance) NauticalMiles() float64 { return float64(d) / MetersPerNauticalMile }
func (d Distance) Kilometers() float64    { return float64(d) / metersPerKilometer }

// IsInfinite reports whether d is +Inf or -Inf.
func (d Distance) IsInfinite() bool { return math.IsInf(float64(d), 0) }

func (d Distance) String() string {
	if d.IsInfinite() {
		return "inf"
	}
	return fmt.Sprintf("%.1fNM", d.NauticalMiles())
}
