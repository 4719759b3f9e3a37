package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dcs-liberation/theater/internal/geo"
	"github.com/dcs-liberation/theater/internal/model"
	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// jsonToStrings decodes a JSON string array; empty or invalid input yields nil.
func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return nil
	}
	return items
}

// ControlPointToCore converts a GORM ControlPoint (with its ground objects
// loaded) back to a snapshot.
func ControlPointToCore(cp model.ControlPoint) (core.ControlPointSnapshot, error) {
	id, err := uuid.Parse(cp.ID)
	if err != nil {
		return core.ControlPointSnapshot{}, fmt.Errorf("control point %s: %w", cp.Name, err)
	}
	pos, _ := geo.FromGeomPoint(cp.Position)

	s := core.ControlPointSnapshot{
		ID:         id,
		Name:       cp.Name,
		Position:   pos,
		Captured:   cp.Captured,
		IsFleet:    cp.IsFleet,
		FrontLines: jsonToStrings(cp.FrontLines),
	}
	if cp.AirportID.Valid {
		airportID := int(cp.AirportID.Int32)
		s.AirportID = &airportID
	}
	for _, g := range cp.GroundObjects {
		gs, err := GroundObjectToCore(g)
		if err != nil {
			return core.ControlPointSnapshot{}, fmt.Errorf("control point %s: %w", cp.Name, err)
		}
		s.GroundObjects = append(s.GroundObjects, gs)
	}
	return s, nil
}

// GroundObjectToCore converts a GORM GroundObject to a snapshot.
func GroundObjectToCore(g model.GroundObject) (core.GroundObjectSnapshot, error) {
	id, err := uuid.Parse(g.ID)
	if err != nil {
		return core.GroundObjectSnapshot{}, fmt.Errorf("ground object %s: %w", g.Name, err)
	}
	pos, _ := geo.FromGeomPoint(g.Position)
	return core.GroundObjectSnapshot{
		ID:       id,
		Name:     g.Name,
		ObjName:  g.ObjName,
		Category: g.Category,
		Position: pos,
		Dead:     g.Dead,
	}, nil
}

// QueryRecordToCore converts a GORM QueryRecord to a core.QueryRecord.
func QueryRecordToCore(q model.QueryRecord) core.QueryRecord {
	return core.QueryRecord{
		ID:       q.ID,
		Time:     q.Time,
		Region:   q.Region,
		Command:  q.Command,
		Args:     jsonToStrings(q.Args),
		Result:   q.Result,
		Error:    q.Error,
		Duration: time.Duration(q.DurationUs) * time.Microsecond,
	}
}
