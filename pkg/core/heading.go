// pkg/core/heading.go
package core

import "fmt"

// Heading is a compass bearing in degrees, always within [0,360).
type Heading struct {
	degrees float64
}

// HeadingFromDegrees reduces any angle into a Heading.
func HeadingFromDegrees(d float64) Heading {
	return Heading{degrees: normalizeDegrees(d)}
}

// Degrees returns the bearing in degrees.
func (h Heading) Degrees() float64 {
	return h.degrees
}

func (h Heading) String() string {
	return fmt.Sprintf("%03.0f°", h.degrees)
}

// MarshalJSON encodes the heading as a bare number of degrees.
func (h Heading) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%g", h.degrees)), nil
}
