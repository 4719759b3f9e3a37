package campaign

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dcs-liberation/theater/internal/landmap"
	"github.com/dcs-liberation/theater/internal/region"
	"github.com/dcs-liberation/theater/internal/theater"
	"github.com/dcs-liberation/theater/pkg/core"
)

// ErrUnknownControlPoint is returned when a front line names a control point
// the campaign does not define.
var ErrUnknownControlPoint = errors.New("unknown control point")

// LoadTheater builds the campaign's theater. The landmap is read from
// landmapDir using the region's landmap file name; an empty landmapDir
// builds a theater without zone data.
func (c *Campaign) LoadTheater(regions *region.Table, landmapDir string) (*theater.Theater, error) {
	r, err := regions.Lookup(c.Theater)
	if err != nil {
		return nil, err
	}

	var lm *landmap.Landmap
	if landmapDir != "" && r.LandmapFile != "" {
		lm, err = landmap.Load(filepath.Join(landmapDir, r.LandmapFile))
		if err != nil {
			return nil, fmt.Errorf("theater %s: %w", r.Name, err)
		}
	}

	t := theater.New(r, lm)
	if err := c.populate(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Campaign) populate(t *theater.Theater) error {
	byName := make(map[string]*core.ControlPoint, len(c.ControlPoints))
	for _, def := range c.ControlPoints {
		if _, dup := byName[def.Name]; dup {
			return fmt.Errorf("duplicate control point %q", def.Name)
		}
		cp := core.NewControlPoint(def.Name, core.Point{X: def.Position.X, Y: def.Position.Y}, def.Captured)
		cp.IsFleet = def.Fleet
		cp.AirportID = def.AirportID
		for _, g := range def.GroundObjects {
			obj := core.NewGroundObject(g.Name, g.ObjName, g.Category, core.Point{X: g.Position.X, Y: g.Position.Y})
			obj.Dead = g.Dead
			cp.AddGroundObject(obj)
		}
		byName[def.Name] = cp
		t.AddControlPoint(cp)
	}

	for _, def := range c.ControlPoints {
		origin := byName[def.Name]
		for _, name := range def.FrontLines {
			adjacent, ok := byName[name]
			if !ok {
				return fmt.Errorf("front line %s/%s: %w", def.Name, name, ErrUnknownControlPoint)
			}
			origin.ConnectFrontLine(adjacent)
		}
	}
	return nil
}

// IterCampaignDefs lists the *.yaml then *.json files of each directory.
// Missing directories are skipped.
func IterCampaignDefs(dirs ...string) []string {
	var paths []string
	for _, dir := range dirs {
		for _, pattern := range []string{"*.yaml", "*.json"} {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			paths = append(paths, matches...)
		}
	}
	return paths
}

// LoadEach parses every campaign found in dirs. Files that fail to load are
// logged and skipped.
func LoadEach(logger *slog.Logger, dirs ...string) []*Campaign {
	var out []*Campaign
	for _, path := range IterCampaignDefs(dirs...) {
		logger.Debug("Loading campaign", "path", path)
		c, err := FromFile(path)
		if err != nil {
			logger.Error("Unable to load campaign", "path", path, "error", err)
			continue
		}
		out = append(out, c)
	}
	return out
}
