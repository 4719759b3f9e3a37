package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/dcs-liberation/theater/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrNotPolygonal is returned when a geometry that should describe a zone is
// neither a POLYGON nor a MULTIPOLYGON.
var ErrNotPolygonal = errors.New("geometry is not polygonal")

// NewPolygon builds a polygon from an outer boundary and optional holes.
// Rings are closed automatically when the last vertex does not repeat the first.
func NewPolygon(exterior []core.Point, holes ...[]core.Point) (geom.Polygon, error) {
	rings := make([]geom.LineString, 0, 1+len(holes))
	for i, pts := range append([][]core.Point{exterior}, holes...) {
		if len(pts) < 3 {
			return geom.Polygon{}, fmt.Errorf("ring %d must have at least 3 vertices, got %d", i, len(pts))
		}
		flat := make([]float64, 0, 2*(len(pts)+1))
		for _, p := range pts {
			flat = append(flat, p.X, p.Y)
		}
		if pts[0] != pts[len(pts)-1] {
			flat = append(flat, pts[0].X, pts[0].Y)
		}
		rings = append(rings, geom.NewLineString(geom.NewSequence(flat, geom.DimXY)))
	}

	poly := geom.NewPolygon(rings)
	if err := poly.Validate(); err != nil {
		return geom.Polygon{}, fmt.Errorf("invalid polygon: %w", err)
	}
	return poly, nil
}

// PolygonsFromWKT parses a POLYGON or MULTIPOLYGON WKT string into its
// member polygons.
func PolygonsFromWKT(wkt string) ([]geom.Polygon, error) {
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WKT: %w", err)
	}
	return PolygonsFromGeometry(g)
}

// PolygonsFromGeometry flattens a polygonal geometry into polygons.
func PolygonsFromGeometry(g geom.Geometry) ([]geom.Polygon, error) {
	if poly, ok := g.AsPolygon(); ok {
		if poly.IsEmpty() {
			return nil, nil
		}
		return []geom.Polygon{poly}, nil
	}
	if mp, ok := g.AsMultiPolygon(); ok {
		polys := make([]geom.Polygon, 0, mp.NumPolygons())
		for i := 0; i < mp.NumPolygons(); i++ {
			if p := mp.PolygonN(i); !p.IsEmpty() {
				polys = append(polys, p)
			}
		}
		return polys, nil
	}
	return nil, fmt.Errorf("%w: got %s", ErrNotPolygonal, g.Type())
}

// Covers reports whether p lies in the interior or on the boundary of poly.
// Points inside a hole are not covered.
func Covers(poly geom.Polygon, p core.Point) bool {
	return geom.Intersects(poly.AsGeometry(), ToGeomPoint(p).AsGeometry())
}

// OnBoundary reports whether p lies on the exterior ring or on a hole ring.
func OnBoundary(poly geom.Polygon, p core.Point) bool {
	return geom.Intersects(poly.Boundary().AsGeometry(), ToGeomPoint(p).AsGeometry())
}

// Contains reports whether p lies strictly inside poly: covered, and not on
// any ring.
func Contains(poly geom.Polygon, p core.Point) bool {
	return Covers(poly, p) && !OnBoundary(poly, p)
}

// Rings returns the exterior ring followed by the holes.
func Rings(poly geom.Polygon) []geom.LineString {
	rings := make([]geom.LineString, 0, 1+poly.NumInteriorRings())
	rings = append(rings, poly.ExteriorRing())
	for i := 0; i < poly.NumInteriorRings(); i++ {
		rings = append(rings, poly.InteriorRingN(i))
	}
	return rings
}

// BoundaryHit is the point of a polygon's edges closest to a query point,
// with the segment it lies on.
type BoundaryHit struct {
	Point    core.Point
	Dist     float64
	From, To core.Point
}

// NearestBoundary returns the point on poly's edges (outer boundary and
// holes) closest to p. The first segment found wins exact ties. An empty
// polygon yields ok == false.
func NearestBoundary(poly geom.Polygon, p core.Point) (hit BoundaryHit, ok bool) {
	hit.Dist = math.Inf(1)
	for _, ring := range Rings(poly) {
		seq := ring.Coordinates()
		for i := 0; i+1 < seq.Length(); i++ {
			a, b := seq.Get(i), seq.Get(i+1)
			from, to := core.Point{X: a.X, Y: a.Y}, core.Point{X: b.X, Y: b.Y}
			candidate := ClosestPointOnSegment(p, from, to)
			if d := p.DistanceTo(candidate); d < hit.Dist {
				hit, ok = BoundaryHit{Point: candidate, Dist: d, From: from, To: to}, true
			}
		}
	}
	return hit, ok
}

// NearestBoundaryPoint is NearestBoundary without the segment.
func NearestBoundaryPoint(poly geom.Polygon, p core.Point) (nearest core.Point, dist float64, ok bool) {
	hit, ok := NearestBoundary(poly, p)
	if !ok {
		return core.Point{}, math.Inf(1), false
	}
	return hit.Point, hit.Dist, true
}

// Normals returns the two unit normals of the hit segment, left first. A
// degenerate segment has none.
func (h BoundaryHit) Normals() []core.Point {
	dx, dy := h.To.X-h.From.X, h.To.Y-h.From.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	dx, dy = dx/l, dy/l
	return []core.Point{{X: -dy, Y: dx}, {X: dy, Y: -dx}}
}

// ClosestPointOnSegment projects p onto the segment vw, clamping to the ends.
func ClosestPointOnSegment(p, v, w core.Point) core.Point {
	dx, dy := w.X-v.X, w.Y-v.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return v
	}
	t := ((p.X-v.X)*dx + (p.Y-v.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return core.Point{X: v.X + t*dx, Y: v.Y + t*dy}
}

// TransformPolygon returns a copy of poly with every vertex mapped through fn.
func TransformPolygon(poly geom.Polygon, fn func(core.Point) core.Point) geom.Polygon {
	src := Rings(poly)
	rings := make([]geom.LineString, 0, len(src))
	for _, ring := range src {
		seq := ring.Coordinates()
		flat := make([]float64, 0, 2*seq.Length())
		for i := 0; i < seq.Length(); i++ {
			c := seq.Get(i)
			p := fn(core.Point{X: c.X, Y: c.Y})
			flat = append(flat, p.X, p.Y)
		}
		rings = append(rings, geom.NewLineString(geom.NewSequence(flat, geom.DimXY)))
	}
	return geom.NewPolygon(rings)
}
