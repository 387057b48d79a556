// pkg/core/target.go
package core

// MissionTarget is anything a flight can be planned against: control
// points, front lines and ground objects.
type MissionTarget interface {
	TargetName() string
	TargetPosition() Position3D
}

// DistanceBetween returns the planar distance between two targets.
func DistanceBetween(a, b MissionTarget) Distance {
	return a.TargetPosition().DistanceTo(b.TargetPosition())
}
