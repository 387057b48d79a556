// Package geo parses theater coordinates. Theaters are planar: positions
// are meters east/north of the map origin. Theaters authored in
// longitude/latitude are projected to EPSG:3857 on load.
package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OCAP2/planner/pkg/core"
	"github.com/wroge/wgs84"
)

var webMercator = wgs84.EPSG().Transform(4326, 3857)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// PositionFromString parses "x,y" or "x,y,elev" in meters.
func PositionFromString(coords string) (core.Position3D, error) {
	fields := strings.Split(coords, ",")
	if len(fields) < 2 || len(fields) > 3 {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return core.Position3D{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, coords)
		}
		xyz[i] = v
	}
	return core.Position3D{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// PositionFrom4326 projects a longitude/latitude pair to EPSG:3857.
func PositionFrom4326(longitude, latitude float64) (core.Position3D, error) {
	if longitude < -180 || longitude > 180 || latitude < -85.06 || latitude > 85.06 {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	x, y, _ := webMercator(longitude, latitude, 0)
	return core.Position3D{X: x, Y: y}, nil
}
