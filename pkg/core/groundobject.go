// pkg/core/groundobject.go
package core

import "github.com/google/uuid"

// GroundObject is a ground installation (SAM site, factory, ammo depot...)
// belonging to a control point.
type GroundObject struct {
	ID       uuid.UUID
	Name     string
	ObjName  string // group name as imported from the mission
	Category string
	Position Point
	Dead     bool

	ControlPoint *ControlPoint
}

// NewGroundObject creates a ground object with a fresh identifier.
func NewGroundObject(name, objName, category string, pos Point) *GroundObject {
	return &GroundObject{
		ID:       uuid.New(),
		Name:     name,
		ObjName:  objName,
		Category: category,
		Position: pos,
	}
}

func (g *GroundObject) Kind() TargetKind    { return KindGroundObject }
func (g *GroundObject) DisplayName() string { return g.Name }
func (g *GroundObject) Pos() Point          { return g.Position }
