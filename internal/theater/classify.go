package theater

import (
	"sort"

	"github.com/dcs-liberation/theater/internal/geo"
	"github.com/dcs-liberation/theater/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// DefaultExtendDistance is how far past the shoreline NearestLandPos places
// its result.
const DefaultExtendDistance = 50

// IsOnLand reports whether p lies in an inclusion zone and in no exclusion
// zone. Without a landmap every point is land.
func (t *Theater) IsOnLand(p core.Point) bool {
	if t.landmap == nil {
		return true
	}
	if !t.landmap.InInclusion(p) {
		return false
	}
	return !t.landmap.InExclusion(p)
}

// IsInSea reports whether p lies in a sea zone while being neither land nor
// excluded. Without a landmap nothing is sea.
func (t *Theater) IsInSea(p core.Point) bool {
	if t.landmap == nil {
		return false
	}
	if t.IsOnLand(p) {
		return false
	}
	if t.landmap.InExclusion(p) {
		return false
	}
	return t.landmap.InSea(p)
}

// NearestLandPos returns near unchanged if it is already on land. Otherwise
// it finds the closest point on any inclusion zone edge and returns the
// point extendDist beyond it along the same heading.
//
// When that point is still not land (near sat on a zone edge, or in an
// exclusion zone inside the land) the edges of inclusion and exclusion zones
// are tried nearest first: the heading projection again, then stepping
// extendDist off the edge along its normals and the eight compass points.
// If nothing lands, the plain projection is returned.
func (t *Theater) NearestLandPos(near core.Point, extendDist float64) (core.Point, error) {
	if t.IsOnLand(near) {
		return near, nil
	}
	if t.landmap == nil {
		return core.Point{}, ErrNoLandmap
	}

	inclusion := nearestHits(t.landmap.InclusionZones(), near)
	if len(inclusion) == 0 {
		return core.Point{}, ErrNoInclusionZones
	}

	projected := project(near, inclusion[0], extendDist)
	if t.IsOnLand(projected) {
		return projected, nil
	}

	hits := append(inclusion, nearestHits(t.landmap.ExclusionZones(), near)...)
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Dist < hits[j].Dist })
	for _, hit := range hits {
		if hit.Dist > 0 {
			if p := project(near, hit, extendDist); t.IsOnLand(p) {
				return p, nil
			}
		}
		for _, step := range offsets(hit) {
			p := core.Point{X: hit.Point.X + step.X*extendDist, Y: hit.Point.Y + step.Y*extendDist}
			if t.IsOnLand(p) {
				return p, nil
			}
		}
	}
	return projected, nil
}

// nearestHits returns the closest edge point of every zone, sorted by
// distance with zone order breaking ties.
func nearestHits(zones []geom.Polygon, p core.Point) []geo.BoundaryHit {
	var hits []geo.BoundaryHit
	for _, zone := range zones {
		if hit, ok := geo.NearestBoundary(zone, p); ok {
			hits = append(hits, hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Dist < hits[j].Dist })
	return hits
}

func project(near core.Point, hit geo.BoundaryHit, extendDist float64) core.Point {
	return near.PointFromHeading(near.HeadingTo(hit.Point), hit.Dist+extendDist)
}

// offsets lists unit steps away from an edge point: the segment normals,
// then north, north-east and so on clockwise.
func offsets(hit geo.BoundaryHit) []core.Point {
	steps := hit.Normals()
	for h := 0.0; h < 360; h += 45 {
		steps = append(steps, core.Point{}.PointFromHeading(h, 1))
	}
	return steps
}
