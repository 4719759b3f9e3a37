package landmap

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dcs-liberation/theater/internal/geo"
	"github.com/dcs-liberation/theater/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/vmihailenco/msgpack/v5"
)

// CRSLonLat marks zone files whose vertices are WGS84 longitude/latitude.
const CRSLonLat = "EPSG:4326"

// ErrUnsupportedFormat is returned for zone files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported landmap format")

// Document is the on-disk zone file. Each zone entry is a WKT POLYGON or
// MULTIPOLYGON.
type Document struct {
	CRS            string   `json:"crs,omitempty" msgpack:"crs,omitempty"`
	InclusionZones []string `json:"inclusion_zones" msgpack:"inclusion_zones"`
	ExclusionZones []string `json:"exclusion_zones" msgpack:"exclusion_zones"`
	SeaZones       []string `json:"sea_zones" msgpack:"sea_zones"`
}

// Load reads a zone file. The encoding follows the extension: .json,
// .json.gz or .msgpack.
func Load(path string) (*Landmap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read landmap: %w", err)
	}

	var doc Document
	switch format(path) {
	case "json":
		err = json.Unmarshal(raw, &doc)
	case "json.gz":
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(raw))
		if err == nil {
			defer zr.Close()
			err = json.NewDecoder(zr).Decode(&doc)
		}
	case "msgpack":
		err = msgpack.Unmarshal(raw, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode landmap %s: %w", filepath.Base(path), err)
	}

	return FromDocument(doc)
}

// FromDocument parses every zone of doc.
func FromDocument(doc Document) (*Landmap, error) {
	var project func(core.Point) core.Point
	switch doc.CRS {
	case "", "planar":
	case CRSLonLat:
		project = func(p core.Point) core.Point { return geo.ProjectLonLat(p.X, p.Y) }
	default:
		return nil, fmt.Errorf("unsupported landmap crs %q", doc.CRS)
	}

	inclusion, err := parseZones("inclusion", doc.InclusionZones, project)
	if err != nil {
		return nil, err
	}
	exclusion, err := parseZones("exclusion", doc.ExclusionZones, project)
	if err != nil {
		return nil, err
	}
	sea, err := parseZones("sea", doc.SeaZones, project)
	if err != nil {
		return nil, err
	}
	return New(inclusion, exclusion, sea), nil
}

func parseZones(set string, wkts []string, project func(core.Point) core.Point) ([]geom.Polygon, error) {
	var out []geom.Polygon
	for i, wkt := range wkts {
		polys, err := geo.PolygonsFromWKT(wkt)
		if err != nil {
			return nil, fmt.Errorf("%s zone %d: %w", set, i, err)
		}
		for _, poly := range polys {
			if project != nil {
				poly = geo.TransformPolygon(poly, project)
			}
			if err := poly.Validate(); err != nil {
				return nil, fmt.Errorf("%s zone %d: %w", set, i, err)
			}
			out = append(out, poly)
		}
	}
	return out, nil
}

// Document serializes the landmap back into planar WKT zones.
func (l *Landmap) Document() Document {
	return Document{
		InclusionZones: toWKT(l.inclusion),
		ExclusionZones: toWKT(l.exclusion),
		SeaZones:       toWKT(l.sea),
	}
}

func toWKT(polys []geom.Polygon) []string {
	out := make([]string, len(polys))
	for i, p := range polys {
		out[i] = p.AsText()
	}
	return out
}

// Save writes the landmap to path, picking the encoding from the extension.
// An unsupported extension fails before the file is touched.
func (l *Landmap) Save(path string) (err error) {
	enc := format(path)
	if enc == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	doc := l.Document()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create landmap file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close landmap file: %w", cerr)
		}
	}()

	var w io.Writer = f
	switch enc {
	case "json":
		err = json.NewEncoder(w).Encode(doc)
	case "json.gz":
		zw := gzip.NewWriter(f)
		if err = json.NewEncoder(zw).Encode(doc); err == nil {
			err = zw.Close()
		}
	case "msgpack":
		err = msgpack.NewEncoder(w).Encode(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode landmap: %w", err)
	}
	return nil
}

func format(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".json.gz"):
		return "json.gz"
	case strings.HasSuffix(name, ".json"):
		return "json"
	case strings.HasSuffix(name, ".msgpack"):
		return "msgpack"
	default:
		return ""
	}
}
