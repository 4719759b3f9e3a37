// Package region holds the static per-theater configuration: timezone,
// daytime windows, landmap file, overview image and climate.
package region

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownRegion is returned by Lookup for names missing from the table.
var ErrUnknownRegion = errors.New("unknown region")

// Region is one row of the region table.
type Region struct {
	Name           string             `yaml:"name" json:"name"`
	Terrain        string             `yaml:"terrain" json:"terrain"`
	OverviewImage  string             `yaml:"overview_image" json:"overviewImage"`
	LandmapFile    string             `yaml:"landmap_file" json:"landmapFile"`
	TimezoneOffset int                `yaml:"timezone_offset" json:"timezoneOffset"` // hours east of UTC
	Daytime        DaytimeMap         `yaml:"daytime" json:"daytime"`
	Seasonal       SeasonalConditions `yaml:"seasonal_conditions" json:"seasonalConditions"`
}

// Timezone returns a fixed-offset location for the region.
func (r Region) Timezone() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", r.TimezoneOffset), r.TimezoneOffset*3600)
}

// TimeOfDayAt converts t into the region's local time and classifies it.
func (r Region) TimeOfDayAt(t time.Time) TimeOfDay {
	return r.Daytime.BestGuessTimeOfDayAt(ClockTimeOf(t.In(r.Timezone())))
}

// Table maps region names to their configuration. Lookups ignore case and spaces,
// so "Persian Gulf" and "PersianGulf" name the same row.
type Table struct {
	rows map[string]Region
}

func key(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// NewTable builds a table from regions. Later rows replace earlier ones
// with the same key.
func NewTable(regions ...Region) *Table {
	t := &Table{rows: make(map[string]Region, len(regions))}
	for _, r := range regions {
		t.rows[key(r.Name)] = r
	}
	return t
}

// Lookup returns the region called name.
func (t *Table) Lookup(name string) (Region, error) {
	r, ok := t.rows[key(name)]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	return r, nil
}

// Names returns the region names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of regions.
func (t *Table) Len() int { return len(t.rows) }

type regionFile struct {
	Regions []yaml.Node `yaml:"regions"`
}

// LoadFile reads a YAML region file and merges it over the default table.
// Fields missing from an entry keep the default value for that region.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region file: %w", err)
	}
	return Merge(Default(), raw)
}

// Merge applies a YAML region document on top of base and returns a new table.
func Merge(base *Table, doc []byte) (*Table, error) {
	var f regionFile
	if err := yaml.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("failed to parse region file: %w", err)
	}

	out := &Table{rows: make(map[string]Region, len(base.rows)+len(f.Regions))}
	for k, r := range base.rows {
		out.rows[k] = r
	}

	for i := range f.Regions {
		node := &f.Regions[i]
		var head struct {
			Name string `yaml:"name"`
		}
		if err := node.Decode(&head); err != nil {
			return nil, fmt.Errorf("region entry %d: %w", i, err)
		}
		if head.Name == "" {
			return nil, fmt.Errorf("region entry %d: missing name", i)
		}

		r := out.rows[key(head.Name)]
		r.Seasonal.WeatherTypeChances = maps.Clone(r.Seasonal.WeatherTypeChances)
		if err := node.Decode(&r); err != nil {
			return nil, fmt.Errorf("region %q: %w", head.Name, err)
		}
		out.rows[key(r.Name)] = r
	}
	return out, nil
}
