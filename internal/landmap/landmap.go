// Package landmap holds the per-theater land, exclusion and sea zones.
package landmap

import (
	"github.com/dcs-liberation/theater/internal/geo"
	"github.com/dcs-liberation/theater/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Landmap is the immutable zone bundle of a theater. It is safe for
// concurrent readers.
type Landmap struct {
	inclusion []geom.Polygon
	exclusion []geom.Polygon
	sea       []geom.Polygon
}

// New builds a Landmap. The slices are copied.
func New(inclusion, exclusion, sea []geom.Polygon) *Landmap {
	return &Landmap{
		inclusion: append([]geom.Polygon(nil), inclusion...),
		exclusion: append([]geom.Polygon(nil), exclusion...),
		sea:       append([]geom.Polygon(nil), sea...),
	}
}

// InclusionZones returns the usable land polygons. The slice must not be modified.
func (l *Landmap) InclusionZones() []geom.Polygon { return l.inclusion }

// ExclusionZones returns the excluded polygons. The slice must not be modified.
func (l *Landmap) ExclusionZones() []geom.Polygon { return l.exclusion }

// SeaZones returns the navigable water polygons. The slice must not be modified.
func (l *Landmap) SeaZones() []geom.Polygon { return l.sea }

// InInclusion reports whether p is strictly inside any inclusion zone.
func (l *Landmap) InInclusion(p core.Point) bool {
	return anyContains(l.inclusion, p)
}

// InExclusion reports whether p is strictly inside any exclusion zone.
func (l *Landmap) InExclusion(p core.Point) bool {
	return anyContains(l.exclusion, p)
}

// InSea reports whether p is strictly inside any sea zone.
func (l *Landmap) InSea(p core.Point) bool {
	return anyContains(l.sea, p)
}

func anyContains(polys []geom.Polygon, p core.Point) bool {
	for _, poly := range polys {
		if geo.Contains(poly, p) {
			return true
		}
	}
	return false
}
