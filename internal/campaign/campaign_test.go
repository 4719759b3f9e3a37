package campaign

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcs-liberation/theater/internal/landmap"
	"github.com/dcs-liberation/theater/internal/region"
	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const caucasusCampaign = `
name: Caucasus - Operation Vectron
theater: Caucasus
authors: Khopa
description: A short campaign over Georgia.
version: "10.7"
recommended_player_faction: USA 2022
recommended_start_date: 2022-04-01
recommended_player_money: 1200
performance: 1
control_points:
  - name: Senaki
    position: {x: -281000, y: 647000}
    captured: true
    airport_id: 23
    front_lines: [Kutaisi]
  - name: Kutaisi
    position: {x: -284000, y: 683000}
    ground_objects:
      - name: SA-11 Kutaisi
        obj_name: RED|SAM|1
        category: aa
        position: {x: -283000, y: 690000}
  - name: CVN-74
    position: {x: -330000, y: 560000}
    captured: true
    fleet: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vectron.yaml", caucasusCampaign)

	c, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Caucasus - Operation Vectron", c.Name)
	assert.Equal(t, "Terrain_Caucasus", c.IconName)
	assert.Equal(t, "Khopa", c.Authors)
	assert.Equal(t, Version{10, 7}, c.Version)
	assert.Equal(t, "USA 2022", c.RecommendedPlayerFaction)
	assert.Equal(t, "Russia 1990", c.RecommendedEnemyFaction)
	assert.Equal(t, 1200, c.RecommendedPlayerMoney)
	assert.Equal(t, DefaultBudget, c.RecommendedEnemyMoney)
	assert.Equal(t, 1.0, c.RecommendedEnemyIncomeMultiplier)
	assert.Equal(t, PerfMedium, c.Performance)
	assert.Equal(t, path, c.Path)

	require.NotNil(t, c.RecommendedStartDate)
	assert.Equal(t, 2022, c.RecommendedStartDate.Year())
	assert.Nil(t, c.RecommendedStartTime)

	require.Len(t, c.ControlPoints, 3)
	assert.Equal(t, []string{"Kutaisi"}, c.ControlPoints[0].FrontLines)
	require.NotNil(t, c.ControlPoints[0].AirportID)
	assert.Equal(t, 23, *c.ControlPoints[0].AirportID)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte("name: Bare\ntheater: Persian Gulf\n"))
	require.NoError(t, err)

	assert.Equal(t, "???", c.Authors)
	assert.Equal(t, "Terrain_PersianGulf", c.IconName)
	assert.Equal(t, Version{}, c.Version)
	assert.False(t, c.IsCompatible())
	assert.Nil(t, c.RecommendedStartDate)
}

func TestParse_JSON(t *testing.T) {
	raw, err := json.Marshal(map[string]any{
		"name":    "Syria JSON",
		"theater": "Syria",
		"version": "10.2",
	})
	require.NoError(t, err)

	c, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Version{10, 2}, c.Version)
}

func TestParse_NumericVersion(t *testing.T) {
	c, err := Parse([]byte("name: x\ntheater: Nevada\nversion: 9.1\n"))
	require.NoError(t, err)
	assert.Equal(t, Version{9, 1}, c.Version)
}

func TestParse_StartDateWithTime(t *testing.T) {
	c, err := Parse([]byte("name: x\ntheater: Nevada\nrecommended_start_date: 2011-03-15 06:30:00\n"))
	require.NoError(t, err)
	require.NotNil(t, c.RecommendedStartTime)
	assert.Equal(t, 6, c.RecommendedStartTime.Hour())
	assert.Equal(t, 30, c.RecommendedStartTime.Minute())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing theater", "name: x\n"},
		{"wrong type", "name: x\ntheater: Syria\nadvanced_iads: sometimes\n"},
		{"bad control point", "name: x\ntheater: Syria\ncontrol_points:\n  - name: A\n"},
		{"performance out of range", "name: x\ntheater: Syria\nperformance: 7\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCampaign))
		})
	}
}

func TestParse_BadStartDate(t *testing.T) {
	_, err := Parse([]byte("name: x\ntheater: Syria\nrecommended_start_date: yesterday\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recommended_start_date")
}

func TestCompatibility(t *testing.T) {
	tests := []struct {
		version    Version
		outOfDate  bool
		fromFuture bool
		compatible bool
	}{
		{Version{0, 0}, true, false, false},
		{Version{9, 9}, true, false, false},
		{Version{10, 0}, false, false, true},
		{FormatVersion, false, false, true},
		{Version{10, 8}, false, true, false},
		{Version{11, 0}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			c := &Campaign{Version: tt.version}
			assert.Equal(t, tt.outOfDate, c.IsOutOfDate())
			assert.Equal(t, tt.fromFuture, c.IsFromFuture())
			assert.Equal(t, tt.compatible, c.IsCompatible())
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("10")
	require.NoError(t, err)
	assert.Equal(t, Version{10, 0}, v)

	_, err = ParseVersion("ten")
	assert.Error(t, err)
}

func TestLoadTheater(t *testing.T) {
	c, err := Parse([]byte(caucasusCampaign))
	require.NoError(t, err)

	th, err := c.LoadTheater(region.Default(), "")
	require.NoError(t, err)

	assert.Nil(t, th.Landmap())
	assert.Equal(t, "caumap.gif", th.OverviewImage())
	require.Len(t, th.ControlPoints(), 3)

	senaki, err := th.ControlPointNamed("Senaki")
	require.NoError(t, err)
	kutaisi, err := th.ControlPointNamed("Kutaisi")
	require.NoError(t, err)

	fl, ok := senaki.FrontLineWith(kutaisi.ID)
	require.True(t, ok)
	assert.Equal(t, core.KindFrontLine, fl.Kind())
	assert.Len(t, th.Conflicts(), 1)

	byAirport, err := th.FindControlPointByAirportID(23)
	require.NoError(t, err)
	assert.Same(t, senaki, byAirport)

	sams := th.FindGroundObjectsByObjName("RED|SAM|1")
	require.Len(t, sams, 1)
	assert.Same(t, kutaisi, sams[0].ControlPoint)

	carrier, err := th.ControlPointNamed("CVN-74")
	require.NoError(t, err)
	assert.True(t, carrier.IsFleet)
}

func TestLoadTheater_WithLandmap(t *testing.T) {
	c, err := Parse([]byte("name: x\ntheater: Syria\n"))
	require.NoError(t, err)

	dir := t.TempDir()
	r, err := region.Default().Lookup("Syria")
	require.NoError(t, err)
	lm, err := landmap.FromDocument(landmap.Document{
		InclusionZones: []string{"POLYGON((0 0,10 0,10 10,0 10,0 0))"},
	})
	require.NoError(t, err)
	require.NoError(t, lm.Save(filepath.Join(dir, r.LandmapFile)))

	th, err := c.LoadTheater(region.Default(), dir)
	require.NoError(t, err)
	require.NotNil(t, th.Landmap())
	assert.True(t, th.IsOnLand(core.Point{X: 5, Y: 5}))
	assert.False(t, th.IsOnLand(core.Point{X: 50, Y: 5}))
}

func TestLoadTheater_MissingLandmap(t *testing.T) {
	c, err := Parse([]byte("name: x\ntheater: Syria\n"))
	require.NoError(t, err)

	_, err = c.LoadTheater(region.Default(), t.TempDir())
	assert.Error(t, err)
}

func TestLoadTheater_UnknownRegion(t *testing.T) {
	c, err := Parse([]byte("name: x\ntheater: Kola\n"))
	require.NoError(t, err)

	_, err = c.LoadTheater(region.Default(), "")
	assert.True(t, errors.Is(err, region.ErrUnknownRegion))
}

func TestLoadTheater_BadFrontLine(t *testing.T) {
	doc := `
name: x
theater: Syria
control_points:
  - name: A
    position: {x: 0, y: 0}
    front_lines: [B]
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = c.LoadTheater(region.Default(), "")
	assert.True(t, errors.Is(err, ErrUnknownControlPoint))
}

func TestLoadTheater_DuplicateControlPoint(t *testing.T) {
	doc := `
name: x
theater: Syria
control_points:
  - name: A
    position: {x: 0, y: 0}
  - name: A
    position: {x: 1, y: 1}
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = c.LoadTheater(region.Default(), "")
	assert.Error(t, err)
}

func TestLoadEach(t *testing.T) {
	user := t.TempDir()
	bundled := t.TempDir()
	writeFile(t, user, "vectron.yaml", caucasusCampaign)
	writeFile(t, user, "broken.yaml", "name: [")
	writeFile(t, user, "notes.txt", "ignored")
	writeFile(t, bundled, "syria.json", `{"name": "Syria", "theater": "Syria", "version": "10.1"}`)

	paths := IterCampaignDefs(user, bundled, filepath.Join(user, "missing"))
	assert.Len(t, paths, 3)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	campaigns := LoadEach(logger, user, bundled)
	require.Len(t, campaigns, 2)

	names := []string{campaigns[0].Name, campaigns[1].Name}
	assert.ElementsMatch(t, []string{"Caucasus - Operation Vectron", "Syria"}, names)
}
