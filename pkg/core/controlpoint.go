// pkg/core/controlpoint.go
package core

import "github.com/google/uuid"

// ControlPoint is a capturable location. It owns its ground objects and the
// front lines towards adjacent control points.
//
// ControlPoint is not safe for concurrent mutation; writers must hold the
// theater's write boundary (see mission.Context).
type ControlPoint struct {
	ID        uuid.UUID
	Name      string
	Position  Point
	Captured  bool // owned by the player
	IsFleet   bool // naval group, moves with the carrier
	AirportID *int

	groundObjects []*GroundObject
	frontLines    []*FrontLine
}

// NewControlPoint creates a control point with a fresh identifier.
func NewControlPoint(name string, pos Point, captured bool) *ControlPoint {
	return &ControlPoint{
		ID:       uuid.New(),
		Name:     name,
		Position: pos,
		Captured: captured,
	}
}

func (c *ControlPoint) Kind() TargetKind    { return KindControlPoint }
func (c *ControlPoint) DisplayName() string { return c.Name }
func (c *ControlPoint) Pos() Point          { return c.Position }

// AddGroundObject attaches g to c.
func (c *ControlPoint) AddGroundObject(g *GroundObject) {
	g.ControlPoint = c
	c.groundObjects = append(c.groundObjects, g)
}

// GroundObjects returns the ground objects in attachment order. The slice
// must not be modified.
func (c *ControlPoint) GroundObjects() []*GroundObject {
	return c.groundObjects
}

// ConnectFrontLine opens a front line from c towards adjacent, replacing any
// existing one with the same neighbour.
func (c *ControlPoint) ConnectFrontLine(adjacent *ControlPoint) *FrontLine {
	fl := &FrontLine{Origin: c, Adjacent: adjacent}
	for i, existing := range c.frontLines {
		if existing.Adjacent.ID == adjacent.ID {
			c.frontLines[i] = fl
			return fl
		}
	}
	c.frontLines = append(c.frontLines, fl)
	return fl
}

// RemoveFrontLine closes the front line towards the control point with the
// given id. It reports whether one existed.
func (c *ControlPoint) RemoveFrontLine(adjacentID uuid.UUID) bool {
	for i, fl := range c.frontLines {
		if fl.Adjacent.ID == adjacentID {
			c.frontLines = append(c.frontLines[:i], c.frontLines[i+1:]...)
			return true
		}
	}
	return false
}

// FrontLineWith returns the front line towards the given neighbour.
func (c *ControlPoint) FrontLineWith(adjacentID uuid.UUID) (*FrontLine, bool) {
	for _, fl := range c.frontLines {
		if fl.Adjacent.ID == adjacentID {
			return fl, true
		}
	}
	return nil, false
}

// FrontLines returns the front lines in the order they were opened. The
// slice must not be modified.
func (c *ControlPoint) FrontLines() []*FrontLine {
	return c.frontLines
}
