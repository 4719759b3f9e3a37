// Package theater implements the spatial queries of a campaign theater:
// land/sea classification, nearest-land projection and proximity search
// over the control-point graph.
//
// A Theater is not synchronized. The landmap is immutable and may be read
// concurrently, but the control-point graph must not be mutated while a
// query runs; mission.Context provides that boundary.
package theater

import (
	"errors"
	"fmt"
	"time"

	"github.com/dcs-liberation/theater/internal/landmap"
	"github.com/dcs-liberation/theater/internal/region"
	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/google/uuid"
)

var (
	// ErrUnconfiguredGeometry is matched by every error caused by missing zone data.
	ErrUnconfiguredGeometry = errors.New("unconfigured geometry")
	ErrNoLandmap            = fmt.Errorf("%w: landmap not initialized", ErrUnconfiguredGeometry)
	ErrNoInclusionZones     = fmt.Errorf("%w: landmap has no inclusion zones", ErrUnconfiguredGeometry)

	// ErrEmptyPopulation is returned when a search has no candidate to pick from.
	ErrEmptyPopulation = errors.New("empty population")

	// ErrNotFound is returned by identifier lookups.
	ErrNotFound = errors.New("not found")
)

// Theater owns the control points of a campaign and the landmap of its region.
type Theater struct {
	region  region.Region
	landmap *landmap.Landmap

	controlPoints []*core.ControlPoint
}

// New creates an empty theater. lm may be nil, in which case every point is
// considered land.
func New(r region.Region, lm *landmap.Landmap) *Theater {
	return &Theater{region: r, landmap: lm}
}

// Region returns the static region configuration.
func (t *Theater) Region() region.Region { return t.region }

// Landmap returns the zone data, or nil.
func (t *Theater) Landmap() *landmap.Landmap { return t.landmap }

func (t *Theater) Timezone() *time.Location                      { return t.region.Timezone() }
func (t *Theater) Daytime() region.DaytimeMap                    { return t.region.Daytime }
func (t *Theater) SeasonalConditions() region.SeasonalConditions { return t.region.Seasonal }
func (t *Theater) OverviewImage() string                         { return t.region.OverviewImage }

// AddControlPoint appends cp. Insertion order is the iteration order of
// every search.
func (t *Theater) AddControlPoint(cp *core.ControlPoint) {
	t.controlPoints = append(t.controlPoints, cp)
}

// ReplaceControlPoints swaps the whole graph, e.g. after restoring a saved
// snapshot.
func (t *Theater) ReplaceControlPoints(cps []*core.ControlPoint) {
	t.controlPoints = append([]*core.ControlPoint(nil), cps...)
}

// ControlPoints returns all control points in insertion order. The slice
// must not be modified.
func (t *Theater) ControlPoints() []*core.ControlPoint {
	return t.controlPoints
}

// GroundObjects returns every ground object, grouped by control point.
func (t *Theater) GroundObjects() []*core.GroundObject {
	var out []*core.GroundObject
	for _, cp := range t.controlPoints {
		out = append(out, cp.GroundObjects()...)
	}
	return out
}

// FindGroundObjectsByObjName returns the ground objects whose mission group
// name is objName.
func (t *Theater) FindGroundObjectsByObjName(objName string) []*core.GroundObject {
	var found []*core.GroundObject
	for _, cp := range t.controlPoints {
		for _, g := range cp.GroundObjects() {
			if g.ObjName == objName {
				found = append(found, g)
			}
		}
	}
	return found
}

// ControlPointsFor returns the control points owned by the player (true) or
// the enemy (false).
func (t *Theater) ControlPointsFor(player bool) []*core.ControlPoint {
	var out []*core.ControlPoint
	for _, cp := range t.controlPoints {
		if cp.Captured == player {
			out = append(out, cp)
		}
	}
	return out
}

func (t *Theater) PlayerPoints() []*core.ControlPoint { return t.ControlPointsFor(true) }
func (t *Theater) EnemyPoints() []*core.ControlPoint  { return t.ControlPointsFor(false) }

// Conflicts returns the front lines opened by player control points.
func (t *Theater) Conflicts() []*core.FrontLine {
	var out []*core.FrontLine
	for _, cp := range t.PlayerPoints() {
		out = append(out, cp.FrontLines()...)
	}
	return out
}

// FindControlPointByID returns the control point with the given id.
func (t *Theater) FindControlPointByID(id uuid.UUID) (*core.ControlPoint, error) {
	for _, cp := range t.controlPoints {
		if cp.ID == id {
			return cp, nil
		}
	}
	return nil, fmt.Errorf("control point with id %s: %w", id, ErrNotFound)
}

// FindControlPointByAirportID returns the control point built on the given airfield.
func (t *Theater) FindControlPointByAirportID(airportID int) (*core.ControlPoint, error) {
	for _, cp := range t.controlPoints {
		if cp.AirportID != nil && *cp.AirportID == airportID {
			return cp, nil
		}
	}
	return nil, fmt.Errorf("control point with airport id %d: %w", airportID, ErrNotFound)
}

// ControlPointNamed returns the control point called name. Names are
// compared exactly.
func (t *Theater) ControlPointNamed(name string) (*core.ControlPoint, error) {
	for _, cp := range t.controlPoints {
		if cp.Name == name {
			return cp, nil
		}
	}
	return nil, fmt.Errorf("control point named %q: %w", name, ErrNotFound)
}
