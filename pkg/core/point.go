// pkg/core/point.go
package core

import (
	"fmt"
	"math"
)

// Point is a planar theater coordinate. X points north and Y points east,
// so bearings are measured clockwise from +X.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint builds a Point from its components.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// HeadingTo returns the bearing from p to o in degrees, in [0,360).
// The bearing between identical points is 0.
func (p Point) HeadingTo(o Point) float64 {
	return normalizeDegrees(radToDeg(math.Atan2(o.Y-p.Y, o.X-p.X)))
}

// Midpoint returns the point halfway between p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{X: (p.X + o.X) / 2, Y: (p.Y + o.Y) / 2}
}

// PointFromHeading returns the point reached by travelling distance units
// from p along heading degrees.
func (p Point) PointFromHeading(heading, distance float64) Point {
	rad := degToRad(heading)
	return Point{
		X: p.X + math.Cos(rad)*distance,
		Y: p.Y + math.Sin(rad)*distance,
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }
func degToRad(d float64) float64 { return d * math.Pi / 180 }

// normalizeDegrees reduces an angle into [0,360).
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod of a tiny negative value can round back up to 360
	if d >= 360 {
		d = 0
	}
	return d
}
