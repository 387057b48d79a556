// pkg/core/groundobject.go
package core

import (
	"fmt"
	"strings"
)

// Role is the closed set of ground object variants. Every switch over Role
// must be exhaustive; accessors panic on an unknown role so that adding a
// new role cannot silently fall through.
type Role uint8

const (
	RoleEWR Role = iota + 1
	RoleSAM
	RoleVehicleGroup
	RoleNaval
	RoleBuilding
	RoleMissileSite
	RoleCoastalSite
)

var roleNames = map[Role]string{
	RoleEWR:          "ewr",
	RoleSAM:          "sam",
	RoleVehicleGroup: "vehicle_group",
	RoleNaval:        "naval",
	RoleBuilding:     "building",
	RoleMissileSite:  "missile_site",
	RoleCoastalSite:  "coastal_site",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", r)
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown ground object role: %q", s)
}

// GroundObject is a destructible installation belonging to a control point.
type GroundObject struct {
	ID       uint
	Name     string
	Category string // "ammo", "factory", "oil", ... for buildings
	Role     Role
	Dead     bool
	Position Position3D

	ControlPoint *ControlPoint

	// IsControlPoint marks the building that is the control point itself,
	// e.g. a FOB's headquarters structure. Only meaningful for buildings.
	IsControlPoint bool

	ThreatRange    Distance
	DetectionRange Distance
}

func (g *GroundObject) TargetName() string         { return g.Name }
func (g *GroundObject) TargetPosition() Position3D { return g.Position }

// IsIADS reports whether the object is part of the integrated air defense
// network.
func (g *GroundObject) IsIADS() bool {
	switch g.Role {
	case RoleEWR, RoleSAM:
		return true
	case RoleVehicleGroup, RoleNaval, RoleBuilding, RoleMissileSite, RoleCoastalSite:
		return false
	default:
		panic(fmt.Sprintf("unhandled ground object role %v", g.Role))
	}
}

// MaxThreatRange is the weapons engagement envelope of the object.
func (g *GroundObject) MaxThreatRange() Distance {
	switch g.Role {
	case RoleSAM, RoleVehicleGroup, RoleNaval, RoleCoastalSite, RoleMissileSite:
		return g.ThreatRange
	case RoleEWR, RoleBuilding:
		return 0
	default:
		panic(fmt.Sprintf("unhandled ground object role %v", g.Role))
	}
}

// MaxDetectionRange is the sensor range of the object.
func (g *GroundObject) MaxDetectionRange() Distance {
	switch g.Role {
	case RoleEWR, RoleSAM, RoleNaval, RoleVehicleGroup, RoleCoastalSite:
		return g.DetectionRange
	case RoleBuilding, RoleMissileSite:
		return 0
	default:
		panic(fmt.Sprintf("unhandled ground object role %v", g.Role))
	}
}
