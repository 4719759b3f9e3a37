// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"database/sql"
	"encoding/json"

	"github.com/dcs-liberation/theater/internal/geo"
	"github.com/dcs-liberation/theater/internal/model"
	"github.com/dcs-liberation/theater/pkg/core"
	"gorm.io/datatypes"
)

// stringsToJSON converts a []string to datatypes.JSON for DB storage.
func stringsToJSON(items []string) datatypes.JSON {
	if len(items) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

// CoreToControlPoint converts a snapshot to a GORM model.ControlPoint,
// including its ground objects. ordinal keeps the theater order on reload.
func CoreToControlPoint(region string, ordinal int, s core.ControlPointSnapshot) model.ControlPoint {
	var airportID sql.NullInt32
	if s.AirportID != nil {
		airportID = sql.NullInt32{Int32: int32(*s.AirportID), Valid: true}
	}

	cp := model.ControlPoint{
		ID:         s.ID.String(),
		Region:     region,
		Ordinal:    ordinal,
		Name:       s.Name,
		Position:   geo.ToGeomPoint(s.Position),
		Captured:   s.Captured,
		IsFleet:    s.IsFleet,
		AirportID:  airportID,
		FrontLines: stringsToJSON(s.FrontLines),
	}
	for i, g := range s.GroundObjects {
		cp.GroundObjects = append(cp.GroundObjects, CoreToGroundObject(cp.ID, i, g))
	}
	return cp
}

// CoreToGroundObject converts a ground object snapshot to a GORM model.GroundObject.
func CoreToGroundObject(controlPointID string, ordinal int, g core.GroundObjectSnapshot) model.GroundObject {
	return model.GroundObject{
		ID:             g.ID.String(),
		ControlPointID: controlPointID,
		Ordinal:        ordinal,
		Name:           g.Name,
		ObjName:        g.ObjName,
		Category:       g.Category,
		Position:       geo.ToGeomPoint(g.Position),
		Dead:           g.Dead,
	}
}

// CoreToQueryRecord converts a core.QueryRecord to a GORM model.QueryRecord.
func CoreToQueryRecord(q core.QueryRecord) model.QueryRecord {
	return model.QueryRecord{
		ID:         q.ID,
		Time:       q.Time,
		Region:     q.Region,
		Command:    q.Command,
		Args:       stringsToJSON(q.Args),
		Result:     q.Result,
		Error:      q.Error,
		DurationUs: q.Duration.Microseconds(),
	}
}
