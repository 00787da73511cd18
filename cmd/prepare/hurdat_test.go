package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

const sampleCSV = `ID,Name,Date,Time,Event,Status,Latitude,Longitude,Maximum Wind,Minimum Pressure
AL011949,            UNNAMED,19490615,0, ,TS,25.0N,80.0W,40,-999
AL011950,               ABLE,19500812,600, ,HU,17.5N,55.5W,90,-999
AL011950,               ABLE,19500812,0, ,TS,17.1N,55.5W,60,-999
AL011950,               ABLE,19500813,0, ,HU,18.0N,56.8W,100,-999
AL021950,              BAKER,19500818,1200, ,TS,13.0N,54.0W,-99,-999
AL021950,              BAKER,19500818,1800, ,TS,bad,54.5W,45,-999
AL021950,              BAKER,19500819,0, ,TS,13.5N,55.0W,50,-999
AL011951,                HOW,19510102,0, ,TD,10.0S,20.0E,30,-999
`

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"28.0N", 28},
		{"80.0W", -80},
		{" 10.5S", -10.5},
		{"2.1E", 2.1},
	}
	for _, tt := range tests {
		got, err := parseCoordinate(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}

	for _, bad := range []string{"", "N", "28.0", "abcN", "28.0X"} {
		_, err := parseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadRows(t *testing.T) {
	rows, stats, err := readRows(strings.NewReader(sampleCSV), 1950)
	require.NoError(t, err)

	assert.Equal(t, readStats{total: 8, badWind: 1, badCoord: 1, beforeStart: 1}, stats)
	require.Len(t, rows, 5)
	assert.Equal(t, "ABLE", rows[0].name)
	assert.Equal(t, 1950, rows[0].year())
	assert.InDelta(t, -55.5, rows[0].lon, 1e-9)
}

func TestReadRows_MissingColumn(t *testing.T) {
	_, _, err := readRows(strings.NewReader("ID,Name,Date\nAL1,X,19500101\n"), 1950)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestBuildHurricanes(t *testing.T) {
	rows, _, err := readRows(strings.NewReader(sampleCSV), 1950)
	require.NoError(t, err)

	hs := buildHurricanes(rows)
	require.Len(t, hs, 3)

	able := hs[0]
	assert.Equal(t, "AL011950", able.ID)
	assert.Equal(t, 100, able.MaxWind)
	assert.Equal(t, domain.Cat3, able.Category)
	want := []domain.TrackPoint{
		{Lat: 17.1, Lon: -55.5, Wind: 60, Date: "1950-08-12"},
		{Lat: 17.5, Lon: -55.5, Wind: 90, Date: "1950-08-12"},
		{Lat: 18.0, Lon: -56.8, Wind: 100, Date: "1950-08-13"},
	}
	if diff := cmp.Diff(want, able.Track); diff != "" {
		t.Fatalf("track mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "BAKER", hs[1].Name)
	assert.Len(t, hs[1].Track, 1)
	assert.Equal(t, domain.TS, hs[1].Category)

	assert.Equal(t, domain.TD, hs[2].Category)
	assert.InDelta(t, -10.0, hs[2].Track[0].Lat, 1e-9)
}

func TestBuildDocument(t *testing.T) {
	rows, _, err := readRows(strings.NewReader(sampleCSV), 1950)
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2015, time.November, 13, 9, 0, 0, 0, time.UTC))

	doc := buildDocument(buildHurricanes(rows), clock)

	require.NotNil(t, doc.Metadata)
	assert.Equal(t, domain.Metadata{
		Source:      sourceName,
		YearRange:   [2]int{1950, 1951},
		TotalStorms: 3,
		LastUpdated: "2015-11-13",
	}, *doc.Metadata)

	// The written document must load back through the dashboard's decoder.
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	parsed, err := domain.ParseHurricaneDocument(data)
	require.NoError(t, err)
	assert.Len(t, parsed.Hurricanes, 3)
}

func TestBuildSummary(t *testing.T) {
	rows, _, err := readRows(strings.NewReader(sampleCSV), 1950)
	require.NoError(t, err)

	got := buildSummary(rows)

	want := domain.SummaryDocument{
		YearlyStats: []domain.YearlyStat{
			{Year: 1950, Count: 2, MaxWind: 100},
			{Year: 1951, Count: 1, MaxWind: 30},
		},
		CategoryDistribution: []domain.CategoryStat{
			{Category: domain.TD, Count: 1},
			{Category: domain.TS, Count: 2},
			{Category: domain.Cat2, Count: 1},
			{Category: domain.Cat3, Count: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
