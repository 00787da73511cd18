package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-dashboard/internal/dashboard"
)

const validHurricanes = `{
  "hurricanes": [
    {"id": "AL011950", "name": "ABLE", "year": 1950, "category": "Cat3", "maxWind": 100,
     "track": [{"lat": 17.1, "lon": -55.5, "wind": 60}, {"lat": 18.0, "lon": -56.8, "wind": 100}]},
    {"id": "AL021951", "name": "BAKER", "year": 1951, "category": "TS", "maxWind": 50,
     "track": [{"lat": 13.5, "lon": -55.0, "wind": 50}]}
  ],
  "metadata": {"source": "NOAA Hurricane Database", "yearRange": [1950, 1951], "totalStorms": 2, "lastUpdated": "2015-11-13"}
}`

const validSummary = `{
  "yearlyStats": [{"year": 1950, "count": 1, "maxWind": 100}, {"year": 1951, "count": 1, "maxWind": 50}],
  "categoryDistribution": [{"category": "TS", "count": 2}, {"category": "Cat3", "count": 1}]
}`

const validWorld = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[-80, 25], [-79, 25], [-79, 26], [-80, 25]]]}}
]}`

func writeFiles(t *testing.T, hurricanes, summary, world string) dashboard.Sources {
	t.Helper()
	dir := t.TempDir()
	src := dashboard.Sources{
		Hurricanes: filepath.Join(dir, "hurricane_data.json"),
		Summary:    filepath.Join(dir, "hurricane_summary.json"),
		World:      filepath.Join(dir, "world.geojson"),
	}
	require.NoError(t, os.WriteFile(src.Hurricanes, []byte(hurricanes), 0o600))
	require.NoError(t, os.WriteFile(src.Summary, []byte(summary), 0o600))
	require.NoError(t, os.WriteFile(src.World, []byte(world), 0o600))
	return src
}

func TestRun_AllPass(t *testing.T) {
	src := writeFiles(t, validHurricanes, validSummary, validWorld)
	var out bytes.Buffer

	code := run(context.Background(), &out, src, time.Second)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Storms: 2, track points: 3")
}

func TestRun_MissingFile(t *testing.T) {
	src := writeFiles(t, validHurricanes, validSummary, validWorld)
	src.World = filepath.Join(t.TempDir(), "missing.geojson")
	var out bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), &out, src, time.Second))
	assert.Contains(t, out.String(), "FATAL: fetch world")
}

func TestValidateHurricanes_Inconsistencies(t *testing.T) {
	data := `{
  "hurricanes": [
    {"name": "ABLE", "year": 1950, "category": "TS", "maxWind": 100, "track": [{"lat": 95, "lon": -55.5, "wind": 90}]}
  ],
  "metadata": {"yearRange": [1949, 1950], "totalStorms": 3}
}`
	_, p := validateHurricanes([]byte(data))

	require.False(t, p.passed())
	assert.Len(t, p.errors, 5)
}

func TestValidateHurricanes_Malformed(t *testing.T) {
	_, p := validateHurricanes([]byte(`{"hurricanes": [{"name": "X", "year": 1950, "category": "HU", "track": []}]}`))
	assert.False(t, p.passed())
}

func TestValidateSummary(t *testing.T) {
	doc, p := validateHurricanes([]byte(validHurricanes))
	require.True(t, p.passed(), p.errors)

	assert.True(t, validateSummary([]byte(validSummary), doc.Hurricanes).passed())

	bad := `{
  "yearlyStats": [{"year": 1951, "count": 1}, {"year": 1951, "count": 1}],
  "categoryDistribution": [{"category": "TS", "count": 9}]
}`
	p = validateSummary([]byte(bad), doc.Hurricanes)
	assert.Len(t, p.errors, 3)
}

func TestValidateWorld(t *testing.T) {
	assert.True(t, validateWorld([]byte(validWorld)).passed())
	assert.False(t, validateWorld([]byte(`{"type": "FeatureCollection", "features": []}`)).passed())
	assert.False(t, validateWorld([]byte(`not json`)).passed())
}
