package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in   string
		want Side
	}{
		{"blue", SideBlue},
		{"WEST", SideBlue},
		{" red ", SideRed},
		{"EAST", SideRed},
	}
	for _, tc := range tests {
		got, err := ParseSide(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseSide("GUER")
	assert.Error(t, err)
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, SideRed, SideBlue.Opponent())
	assert.Equal(t, SideBlue, SideRed.Opponent())
}

func TestDistanceConversions(t *testing.T) {
	assert.InDelta(t, 1852.0, NauticalMiles(1).Meters(), 1e-9)
	assert.InDelta(t, 150.0, NauticalMiles(150).NauticalMiles(), 1e-9)
	assert.InDelta(t, 2.5, Kilometers(2.5).Kilometers(), 1e-9)
	assert.True(t, InfiniteDistance().IsInfinite())
	assert.Equal(t, "inf", InfiniteDistance().String())
	assert.Equal(t, "10.0NM", NauticalMiles(10).String())
}

func TestDistanceBetween(t *testing.T) {
	a := &ControlPoint{Name: "a", Position: Position3D{X: 0, Y: 0}}
	b := &ControlPoint{Name: "b", Position: Position3D{X: 3000, Y: 4000, Z: 250}}

	assert.InDelta(t, 5000.0, DistanceBetween(a, b).Meters(), 1e-6)
	assert.InDelta(t, 5000.0, DistanceBetween(b, a).Meters(), 1e-6)
}

func TestDistanceToNonFinitePosition(t *testing.T) {
	origin := Position3D{}
	for _, bad := range []Position3D{
		{X: math.NaN(), Y: 0},
		{X: 0, Y: math.Inf(1)},
		{X: math.Inf(-1), Y: 10},
	} {
		assert.True(t, origin.DistanceTo(bad).IsInfinite(), "%v", bad)
		assert.True(t, bad.DistanceTo(origin).IsInfinite(), "%v", bad)
	}

	_, err := Position3D{X: math.NaN()}.Point()
	assert.Error(t, err)
}

func TestGroundObjectRanges(t *testing.T) {
	tests := []struct {
		role      Role
		iads      bool
		threat    Distance
		detection Distance
	}{
		{RoleEWR, true, 0, Kilometers(200)},
		{RoleSAM, true, Kilometers(40), Kilometers(200)},
		{RoleVehicleGroup, false, Kilometers(40), Kilometers(200)},
		{RoleNaval, false, Kilometers(40), Kilometers(200)},
		{RoleBuilding, false, 0, 0},
		{RoleMissileSite, false, Kilometers(40), 0},
		{RoleCoastalSite, false, Kilometers(40), Kilometers(200)},
	}
	for _, tc := range tests {
		g := &GroundObject{Role: tc.role, ThreatRange: Kilometers(40), DetectionRange: Kilometers(200)}
		assert.Equal(t, tc.iads, g.IsIADS(), tc.role.String())
		assert.Equal(t, tc.threat, g.MaxThreatRange(), tc.role.String())
		assert.Equal(t, tc.detection, g.MaxDetectionRange(), tc.role.String())
	}
}

func TestGroundObjectUnknownRolePanics(t *testing.T) {
	g := &GroundObject{Name: "mystery"}
	assert.Panics(t, func() { g.MaxThreatRange() })
	assert.Panics(t, func() { g.IsIADS() })
}

func TestParseRoleRoundTrip(t *testing.T) {
	for r := RoleEWR; r <= RoleCoastalSite; r++ {
		got, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRole("bunker")
	assert.Error(t, err)
}

func TestControlPointInventoryAndRunway(t *testing.T) {
	cp := &ControlPoint{
		Kind:              KindAirfield,
		RunwayOperational: true,
		Aircraft:          map[string]int{"F-16C": 8, "A-10C": 4},
	}
	assert.Equal(t, 12, cp.TotalAircraft())
	assert.True(t, cp.RunwayIsOperational())

	cp.RunwayOperational = false
	assert.False(t, cp.RunwayIsOperational())

	offMap := &ControlPoint{Kind: KindOffMapSpawn, RunwayOperational: true}
	assert.False(t, offMap.RunwayIsOperational())
	assert.True(t, offMap.IsOffMap())
}

func TestControlPointConnect(t *testing.T) {
	a := &ControlPoint{Name: "a"}
	b := &ControlPoint{Name: "b"}

	a.Connect(b)
	a.Connect(b)
	b.Connect(a)

	require.Len(t, a.Connected, 1)
	require.Len(t, b.Connected, 1)
	assert.True(t, a.IsConnected(b))
	assert.True(t, b.IsConnected(a))
}

func TestAddGroundObjectSetsOwner(t *testing.T) {
	cp := &ControlPoint{Name: "Batumi"}
	g := &GroundObject{Name: "SA-11", Role: RoleSAM}
	cp.AddGroundObject(g)

	assert.Same(t, cp, g.ControlPoint)
	assert.Equal(t, []*GroundObject{g}, cp.GroundObjects)
}

func TestFrontLineHostileControlPoint(t *testing.T) {
	blue := &ControlPoint{Name: "Kobuleti", Owner: SideBlue, Position: Position3D{X: 0, Y: 0}}
	red := &ControlPoint{Name: "Senaki", Owner: SideRed, Position: Position3D{X: 1000, Y: 2000}}

	f := NewFrontLine(red, blue)
	assert.Same(t, blue, f.Blue)
	assert.Same(t, red, f.Red)
	assert.Same(t, red, f.ControlPointHostileTo(SideBlue))
	assert.Same(t, blue, f.ControlPointHostileTo(SideRed))
	assert.Same(t, blue, f.ControlPointFriendlyTo(SideBlue))
	assert.Equal(t, Position3D{X: 500, Y: 1000}, f.TargetPosition())
	assert.Equal(t, "Front line Kobuleti/Senaki", f.TargetName())
}
