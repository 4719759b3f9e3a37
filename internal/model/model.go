package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ControlPoint{},
	&GroundObject{},
	&QueryRecord{},
}

// ControlPoint is one saved control point of a region. Positions are stored
// as WKB so both SQLite and Postgres can hold them without PostGIS.
type ControlPoint struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	Region     string         `json:"region" gorm:"size:64;index:idx_controlpoint_region"`
	Ordinal    int            `json:"ordinal"`
	Name       string         `json:"name" gorm:"size:128"`
	Position   geom.Point     `json:"position" gorm:"type:bytes"`
	Captured   bool           `json:"captured"`
	IsFleet    bool           `json:"isFleet"`
	AirportID  sql.NullInt32  `json:"airportId"`
	FrontLines datatypes.JSON `json:"frontLines"`

	GroundObjects []GroundObject `json:"groundObjects" gorm:"foreignKey:ControlPointID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*ControlPoint) TableName() string {
	return "control_points"
}

// GroundObject belongs to a saved control point.
type GroundObject struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	ControlPointID string     `json:"controlPointId" gorm:"size:36;index:idx_groundobject_controlpoint_id"`
	Ordinal        int        `json:"ordinal"`
	Name           string     `json:"name" gorm:"size:128"`
	ObjName        string     `json:"objName" gorm:"size:128;index:idx_groundobject_obj_name"`
	Category       string     `json:"category" gorm:"size:64"`
	Position       geom.Point `json:"position" gorm:"type:bytes"`
	Dead           bool       `json:"dead"`
}

func (*GroundObject) TableName() string {
	return "ground_objects"
}

// QueryRecord is the audit row of one spatial query.
type QueryRecord struct {
	ID         uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time      `json:"time" gorm:"index:idx_queryrecord_time"`
	Region     string         `json:"region" gorm:"size:64;index:idx_queryrecord_region"`
	Command    string         `json:"command" gorm:"size:64;index:idx_queryrecord_command"`
	Args       datatypes.JSON `json:"args"`
	Result     string         `json:"result"`
	Error      string         `json:"error"`
	DurationUs int64          `json:"durationUs"`
}

func (*QueryRecord) TableName() string {
	return "query_records"
}
