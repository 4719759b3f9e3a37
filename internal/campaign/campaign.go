// Package campaign reads campaign definition files and builds theaters from them.
package campaign

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed campaign.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ErrInvalidCampaign is returned when a campaign file fails schema validation.
var ErrInvalidCampaign = errors.New("invalid campaign")

// Performance is the expected load a campaign puts on the simulator.
type Performance int

const (
	PerfFriendly Performance = iota
	PerfMedium
	PerfHard
	PerfNASA
)

// DefaultBudget is the starting money of either side when a campaign does
// not recommend one.
const DefaultBudget = 2000

// Campaign is a parsed campaign definition.
type Campaign struct {
	Name        string
	IconName    string
	Authors     string
	Description string
	Theater     string

	// Version is the campaign format revision the file was written for.
	Version Version

	RecommendedPlayerFaction string
	RecommendedEnemyFaction  string
	RecommendedStartDate     *time.Time
	// RecommendedStartTime is set only when the start date carried a time of day.
	RecommendedStartTime *time.Time

	RecommendedPlayerMoney            int
	RecommendedEnemyMoney             int
	RecommendedPlayerIncomeMultiplier float64
	RecommendedEnemyIncomeMultiplier  float64

	Performance  Performance
	AdvancedIADS bool

	ControlPoints []ControlPointDef
	Path          string
}

// PositionDef is a planar position in a campaign file.
type PositionDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// GroundObjectDef describes a ground object attached to a control point.
type GroundObjectDef struct {
	Name     string      `yaml:"name"`
	ObjName  string      `yaml:"obj_name"`
	Category string      `yaml:"category"`
	Dead     bool        `yaml:"dead"`
	Position PositionDef `yaml:"position"`
}

// ControlPointDef describes one control point. FrontLines names the
// adjacent control points a front line is open towards.
type ControlPointDef struct {
	Name          string            `yaml:"name"`
	Position      PositionDef       `yaml:"position"`
	Captured      bool              `yaml:"captured"`
	Fleet         bool              `yaml:"fleet"`
	AirportID     *int              `yaml:"airport_id"`
	GroundObjects []GroundObjectDef `yaml:"ground_objects"`
	FrontLines    []string          `yaml:"front_lines"`
}

type document struct {
	Name                              string            `yaml:"name"`
	Theater                           string            `yaml:"theater"`
	Authors                           *string           `yaml:"authors"`
	Description                       string            `yaml:"description"`
	Version                           yaml.Node         `yaml:"version"`
	RecommendedPlayerFaction          *string           `yaml:"recommended_player_faction"`
	RecommendedEnemyFaction           *string           `yaml:"recommended_enemy_faction"`
	RecommendedStartDate              string            `yaml:"recommended_start_date"`
	RecommendedPlayerMoney            *int              `yaml:"recommended_player_money"`
	RecommendedEnemyMoney             *int              `yaml:"recommended_enemy_money"`
	RecommendedPlayerIncomeMultiplier *float64          `yaml:"recommended_player_income_multiplier"`
	RecommendedEnemyIncomeMultiplier  *float64          `yaml:"recommended_enemy_income_multiplier"`
	Performance                       int               `yaml:"performance"`
	AdvancedIADS                      bool              `yaml:"advanced_iads"`
	ControlPoints                     []ControlPointDef `yaml:"control_points"`
}

// FromFile reads and validates a YAML or JSON campaign file.
func FromFile(path string) (*Campaign, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	c.Path = path
	return c, nil
}

// Parse validates and decodes a campaign document.
func Parse(raw []byte) (*Campaign, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse campaign: %w", err)
	}
	if err := validate(generic); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode campaign: %w", err)
	}

	version, err := parseVersion(doc.Version)
	if err != nil {
		return nil, err
	}

	c := &Campaign{
		Name:                              doc.Name,
		IconName:                          "Terrain_" + strings.ReplaceAll(doc.Theater, " ", ""),
		Authors:                           valueOr(doc.Authors, "???"),
		Description:                       doc.Description,
		Theater:                           doc.Theater,
		Version:                           version,
		RecommendedPlayerFaction:          valueOr(doc.RecommendedPlayerFaction, "USA 2005"),
		RecommendedEnemyFaction:           valueOr(doc.RecommendedEnemyFaction, "Russia 1990"),
		RecommendedPlayerMoney:            valueOr(doc.RecommendedPlayerMoney, DefaultBudget),
		RecommendedEnemyMoney:             valueOr(doc.RecommendedEnemyMoney, DefaultBudget),
		RecommendedPlayerIncomeMultiplier: valueOr(doc.RecommendedPlayerIncomeMultiplier, 1.0),
		RecommendedEnemyIncomeMultiplier:  valueOr(doc.RecommendedEnemyIncomeMultiplier, 1.0),
		Performance:                       Performance(doc.Performance),
		AdvancedIADS:                      doc.AdvancedIADS,
		ControlPoints:                     doc.ControlPoints,
	}

	if doc.RecommendedStartDate != "" {
		date, withTime, err := parseStartDate(doc.RecommendedStartDate)
		if err != nil {
			return nil, err
		}
		c.RecommendedStartDate = &date
		if withTime {
			c.RecommendedStartTime = &date
		}
	}
	return c, nil
}

func validate(doc map[string]any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidCampaign, strings.Join(problems, "; "))
	}
	return nil
}

var startDateLayouts = []struct {
	layout   string
	withTime bool
}{
	{"2006-01-02", false},
	{time.RFC3339, true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02T15:04:05", true},
}

func parseStartDate(s string) (time.Time, bool, error) {
	for _, l := range startDateLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t, l.withTime, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid value for recommended_start_date: %q", s)
}

// Version is a campaign format revision.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less orders versions by major, then minor.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

// FormatVersion is the newest campaign format this build understands.
var FormatVersion = Version{Major: 10, Minor: 7}

// ParseVersion reads "major" or "major.minor".
func ParseVersion(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid campaign version %q: %w", s, err)
	}
	return Version{Major: int(sv.Major()), Minor: int(sv.Minor())}, nil
}

func parseVersion(node yaml.Node) (Version, error) {
	if node.Kind == 0 {
		return Version{}, nil
	}
	if node.Tag != "!!str" {
		slog.Warn("Non-string campaign version, parse may be incorrect", "version", node.Value)
	}
	return ParseVersion(node.Value)
}

// IsOutOfDate reports whether the campaign predates the current major
// format version. Minor bumps only add optional features.
func (c *Campaign) IsOutOfDate() bool {
	return c.Version.Major < FormatVersion.Major
}

// IsFromFuture reports whether the campaign is newer than this build supports.
func (c *Campaign) IsFromFuture() bool {
	return FormatVersion.Less(c.Version)
}

// IsCompatible reports whether this build can load the campaign.
func (c *Campaign) IsCompatible() bool {
	if c.Version == (Version{}) {
		return false
	}
	return !c.IsOutOfDate() && !c.IsFromFuture()
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
