package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcs-liberation/theater/internal/campaign"
	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/logging"
	"github.com/dcs-liberation/theater/internal/region"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SlogManager = logging.NewSlogManager(ServiceName)
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	os.Exit(m.Run())
}

const syriaCampaign = `
name: Syria - Inherent Resolve
theater: Syria
version: "10.7"
control_points:
  - name: Incirlik
    position: {x: 0, y: 0}
    captured: true
    front_lines: [Hatay]
  - name: Hatay
    position: {x: 10, y: 0}
`

func writeCampaign(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindCampaign(t *testing.T) {
	campaigns := []*campaign.Campaign{{Name: "Caucasus"}, {Name: "Syria - Inherent Resolve"}}

	assert.Same(t, campaigns[1], findCampaign(campaigns, "syria - inherent resolve"))
	assert.Nil(t, findCampaign(campaigns, "Nevada"))
}

func TestLoadCampaign_ByPath(t *testing.T) {
	path := writeCampaign(t, t.TempDir(), "syria.yaml", syriaCampaign)

	c, th, err := loadCampaign(Logger, region.Default(), config.TheaterConfig{}, path)
	require.NoError(t, err)
	assert.Equal(t, "Syria - Inherent Resolve", c.Name)
	assert.Equal(t, "Syria", th.Region().Name)
	assert.Len(t, th.ControlPoints(), 2)
	assert.Len(t, th.Conflicts(), 1)
}

func TestLoadCampaign_ByName(t *testing.T) {
	dir := t.TempDir()
	writeCampaign(t, dir, "syria.yaml", syriaCampaign)

	c, _, err := loadCampaign(Logger, region.Default(), config.TheaterConfig{CampaignDirs: []string{dir}}, "Syria - Inherent Resolve")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "syria.yaml"), c.Path)
}

func TestLoadCampaign_NotFound(t *testing.T) {
	_, _, err := loadCampaign(Logger, region.Default(), config.TheaterConfig{CampaignDirs: []string{t.TempDir()}}, "Nevada")
	assert.True(t, errors.Is(err, ErrNoCampaign))

	_, _, err = loadCampaign(Logger, region.Default(), config.TheaterConfig{}, "")
	assert.True(t, errors.Is(err, ErrNoCampaign))
}

func TestLoadRegions(t *testing.T) {
	regions, err := loadRegions(config.TheaterConfig{})
	require.NoError(t, err)
	assert.Equal(t, region.Default().Len(), regions.Len())

	_, err = loadRegions(config.TheaterConfig{RegionsFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestCheckCampaigns(t *testing.T) {
	var out bytes.Buffer
	err := checkCampaigns(&out, []*campaign.Campaign{
		{Name: "Current", Theater: "Syria", Version: campaign.FormatVersion},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "Current")
	assert.Contains(t, out.String(), "ok")

	out.Reset()
	err = checkCampaigns(&out, []*campaign.Campaign{
		{Name: "Current", Theater: "Syria", Version: campaign.FormatVersion},
		{Name: "Ancient", Theater: "Caucasus", Version: campaign.Version{Major: 1}},
	})
	assert.True(t, errors.Is(err, ErrIncompatibleCampaigns))
	assert.Contains(t, out.String(), "out of date")
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestRunCheckCampaigns(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	writeCampaign(t, dir, "syria.yaml", syriaCampaign)

	var out bytes.Buffer
	require.NoError(t, runCheckCampaigns([]string{"--config", t.TempDir(), dir}, &out))
	assert.Contains(t, out.String(), "Syria - Inherent Resolve")
}

func TestRunQuery(t *testing.T) {
	t.Cleanup(viper.Reset)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/nearest_land", r.URL.Path)
		assert.Equal(t, []string{"15,5", "1"}, r.URL.Query()["arg"])
		_, _ = w.Write([]byte(`{"result":{"x":9,"y":5}}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runQuery([]string{"--config", t.TempDir(), "--server", server.URL, "nearest_land", "15,5", "1"}, &out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":9,"y":5}`, out.String())
}

func TestRunQuery_NegativeCoordinates(t *testing.T) {
	t.Cleanup(viper.Reset)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"-281000,647000"}, r.URL.Query()["arg"])
		_, _ = w.Write([]byte(`{"result":true}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runQuery([]string{"--server", server.URL, "is_on_land", "-281000,647000"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out.String())
}

func TestRunQuery_MissingCommand(t *testing.T) {
	err := runQuery(nil, io.Discard)
	assert.Error(t, err)
}
