// pkg/core/snapshot.go
package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnknownAdjacent is returned by RestoreControlPoints when a front line
// names a control point missing from the snapshot set.
var ErrUnknownAdjacent = errors.New("front line towards unknown control point")

// GroundObjectSnapshot is the persisted form of a GroundObject.
type GroundObjectSnapshot struct {
	ID       uuid.UUID
	Name     string
	ObjName  string
	Category string
	Position Point
	Dead     bool
}

// ControlPointSnapshot is the persisted form of a ControlPoint. Front lines
// are stored by the adjacent control point's name.
type ControlPointSnapshot struct {
	ID            uuid.UUID
	Name          string
	Position      Point
	Captured      bool
	IsFleet       bool
	AirportID     *int
	GroundObjects []GroundObjectSnapshot
	FrontLines    []string
}

// SnapshotOf captures c and its ground objects.
func SnapshotOf(c *ControlPoint) ControlPointSnapshot {
	s := ControlPointSnapshot{
		ID:       c.ID,
		Name:     c.Name,
		Position: c.Position,
		Captured: c.Captured,
		IsFleet:  c.IsFleet,
	}
	if c.AirportID != nil {
		id := *c.AirportID
		s.AirportID = &id
	}
	for _, g := range c.groundObjects {
		s.GroundObjects = append(s.GroundObjects, GroundObjectSnapshot{
			ID:       g.ID,
			Name:     g.Name,
			ObjName:  g.ObjName,
			Category: g.Category,
			Position: g.Position,
			Dead:     g.Dead,
		})
	}
	for _, fl := range c.frontLines {
		s.FrontLines = append(s.FrontLines, fl.Adjacent.Name)
	}
	return s
}

// SnapshotAll captures every control point in order.
func SnapshotAll(cps []*ControlPoint) []ControlPointSnapshot {
	out := make([]ControlPointSnapshot, 0, len(cps))
	for _, c := range cps {
		out = append(out, SnapshotOf(c))
	}
	return out
}

// RestoreControlPoints rebuilds the control-point graph, keeping the
// snapshot order and identifiers.
func RestoreControlPoints(snaps []ControlPointSnapshot) ([]*ControlPoint, error) {
	out := make([]*ControlPoint, 0, len(snaps))
	byName := make(map[string]*ControlPoint, len(snaps))
	for _, s := range snaps {
		c := &ControlPoint{
			ID:       s.ID,
			Name:     s.Name,
			Position: s.Position,
			Captured: s.Captured,
			IsFleet:  s.IsFleet,
		}
		if s.AirportID != nil {
			id := *s.AirportID
			c.AirportID = &id
		}
		for _, gs := range s.GroundObjects {
			c.AddGroundObject(&GroundObject{
				ID:       gs.ID,
				Name:     gs.Name,
				ObjName:  gs.ObjName,
				Category: gs.Category,
				Position: gs.Position,
				Dead:     gs.Dead,
			})
		}
		byName[s.Name] = c
		out = append(out, c)
	}

	for i, s := range snaps {
		for _, name := range s.FrontLines {
			adjacent, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("%s -> %s: %w", s.Name, name, ErrUnknownAdjacent)
			}
			out[i].ConnectFrontLine(adjacent)
		}
	}
	return out, nil
}
