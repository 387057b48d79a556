package doctrine

import "github.com/OCAP2/planner/pkg/core"

// Doctrine holds the faction distances the planner cares about.
type Doctrine struct {
	Name string

	// IngressEgressDistance is where an attack run begins, measured from the
	// target. Most standoff weapons can be released from here.
	IngressEgressDistance core.Distance

	// CapThreatRange is how far an enemy airbase's combat air patrol is
	// assumed to reach.
	CapThreatRange core.Distance
}

// DefaultDoctrine returns the modern-era doctrine.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:                  "modern",
		IngressEgressDistance: core.NauticalMiles(45),
		CapThreatRange:        core.NauticalMiles(50),
	}
}

// FromNauticalMiles builds a doctrine from config values in nautical miles.
func FromNauticalMiles(name string, ingressEgress, capThreat float64) Doctrine {
	d := Doctrine{
		Name:                  name,
		IngressEgressDistance: core.NauticalMiles(ingressEgress),
		CapThreatRange:        core.NauticalMiles(capThreat),
	}
	d.Validate()
	return d
}

// Validate clamps all distances to their valid ranges.
func (d *Doctrine) Validate() {
	d.IngressEgressDistance = clamp(d.IngressEgressDistance, core.NauticalMiles(5), core.NauticalMiles(100))
	d.CapThreatRange = clamp(d.CapThreatRange, core.NauticalMiles(10), core.NauticalMiles(150))
}

// clamp restricts v to [min, max].
func clamp(v, min, max core.Distance) core.Distance {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
