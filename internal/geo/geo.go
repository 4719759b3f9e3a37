// Package geo holds coordinate parsing, projection and polygon helpers on top
// of simplefeatures.
package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dcs-liberation/theater/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// PointFromString parses "x,y" into a core.Point. Surrounding quotes and
// whitespace are tolerated; extra components are ignored. NaN and infinite
// components are rejected.
func PointFromString(coords string) (core.Point, error) {
	coords = strings.Trim(strings.TrimSpace(coords), `"[]`)
	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return core.Point{}, ErrInvalidCoordinates
	}
	x, err := parseCoordinate(parts[0])
	if err != nil {
		return core.Point{}, err
	}
	y, err := parseCoordinate(parts[1])
	if err != nil {
		return core.Point{}, err
	}
	return core.Point{X: x, Y: y}, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidCoordinates
	}
	return v, nil
}

// ProjectLonLat converts a WGS84 longitude/latitude pair (EPSG:4326) into
// planar EPSG:3857 units.
func ProjectLonLat(longitude, latitude float64) core.Point {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	return core.Point{X: x, Y: y}
}

// ToGeomPoint converts a core.Point into a simplefeatures point.
func ToGeomPoint(p core.Point) geom.Point {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.X, Y: p.Y},
		Type: geom.DimXY,
	})
}

// FromGeomPoint converts a simplefeatures point back into a core.Point. An
// empty point yields the zero value and false.
func FromGeomPoint(p geom.Point) (core.Point, bool) {
	c, ok := p.Coordinates()
	if !ok {
		return core.Point{}, false
	}
	return core.Point{X: c.X, Y: c.Y}, true
}
