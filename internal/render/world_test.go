package render

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const worldFixture = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Island"},
     "geometry": {"type": "Polygon", "coordinates": [[[-70, 20], [-65, 20], [-65, 25], [-70, 20]]]}},
    {"type": "Feature", "properties": {"name": "Archipelago"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[-80, 10], [-79, 10], [-79, 11], [-80, 10]]],
       [[[-60, 10], [-59, 10], [-59, 11], [-60, 10]]]
     ]}},
    {"type": "Feature", "properties": {"name": "Buoy"},
     "geometry": {"type": "Point", "coordinates": [-40, 30]}}
  ]
}`

func TestParseWorld(t *testing.T) {
	world, err := ParseWorld([]byte(worldFixture))
	require.NoError(t, err)

	require.Len(t, world.Polygons, 3)
	assert.Equal(t, orb.Point{-70, 20}, world.Polygons[0][0][0])
	assert.Len(t, world.Polygons[0][0], 4)
	assert.Equal(t, orb.Point{-60, 10}, world.Polygons[2][0][0])
}

func TestParseWorld_Malformed(t *testing.T) {
	_, err := ParseWorld([]byte(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse world geojson")
}
