// pkg/core/frontline.go
package core

import "fmt"

// FrontLine is the contested edge between a control point and one of its
// neighbours.
type FrontLine struct {
	Origin   *ControlPoint
	Adjacent *ControlPoint

	contested *Point
}

func (f *FrontLine) Kind() TargetKind { return KindFrontLine }

func (f *FrontLine) DisplayName() string {
	return fmt.Sprintf("Front line %s/%s", f.Origin.Name, f.Adjacent.Name)
}

// Pos returns the contested point if one was set, otherwise the midpoint
// between both ends.
func (f *FrontLine) Pos() Point {
	if f.contested != nil {
		return *f.contested
	}
	return f.Origin.Position.Midpoint(f.Adjacent.Position)
}

// SetContestedPosition pins the front line to p, e.g. after ground combat
// moved it towards the weaker side.
func (f *FrontLine) SetContestedPosition(p Point) {
	f.contested = &p
}

// ClearContestedPosition reverts Pos to the midpoint.
func (f *FrontLine) ClearContestedPosition() {
	f.contested = nil
}
