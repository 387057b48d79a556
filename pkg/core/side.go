// pkg/core/side.go
package core

import (
	"fmt"
	"strings"
)

// Side is one of the two coalitions in a theater. There is no neutral
// side: every control point belongs to exactly one of them.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

// IsValid reports whether s is a recognised side.
func (s Side) IsValid() bool {
	return s == SideBlue || s == SideRed
}

// ParseSide accepts "blue"/"red" and the Arma style "WEST"/"EAST".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue", "west", "blufor":
		return SideBlue, nil
	case "red", "east", "opfor":
		return SideRed, nil
	default:
		return "", fmt.Errorf("unknown side: %q", s)
	}
}
