package geo

import (
	"errors"
	"testing"

	"github.com/OCAP2/planner/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionFromString_ValidWithElevation(t *testing.T) {
	pos, err := PositionFromString("100.5,200.25,50.0")
	require.NoError(t, err)
	assert.Equal(t, core.Position3D{X: 100.5, Y: 200.25, Z: 50}, pos)
}

func TestPositionFromString_ValidWithoutElevation(t *testing.T) {
	pos, err := PositionFromString("100.5, 200.25")
	require.NoError(t, err)
	assert.Equal(t, core.Position3D{X: 100.5, Y: 200.25}, pos)
}

func TestPositionFromString_NegativeCoordinates(t *testing.T) {
	pos, err := PositionFromString("-100.5,-200.25,-50.0")
	require.NoError(t, err)
	assert.Equal(t, core.Position3D{X: -100.5, Y: -200.25, Z: -50}, pos)
}

func TestPositionFromString_Invalid(t *testing.T) {
	inputs := []string{
		"100.5",
		"",
		"abc,200",
		"100,abc",
		"100,200,abc",
		"1,2,3,4",
	}
	for _, in := range inputs {
		_, err := PositionFromString(in)
		assert.True(t, errors.Is(err, ErrInvalidCoordinates), "input %q", in)
	}
}

func TestPositionFrom4326_Origin(t *testing.T) {
	pos, err := PositionFrom4326(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pos.X, 1e-6)
	assert.InDelta(t, 0.0, pos.Y, 1e-6)
}

func TestPositionFrom4326_Batumi(t *testing.T) {
	pos, err := PositionFrom4326(41.6, 41.6)
	require.NoError(t, err)
	// 41.6 degrees of longitude along the equator of the spherical mercator.
	assert.InDelta(t, 4630890.8, pos.X, 5.0)
	assert.Greater(t, pos.Y, 5000000.0)
}

func TestPositionFrom4326_OutOfRange(t *testing.T) {
	_, err := PositionFrom4326(200, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = PositionFrom4326(0, 89)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}
