package dashboard_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-dashboard/internal/dashboard"
	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

func TestLoadDataset_FetchesAllThree(t *testing.T) {
	f := goodFetcher()
	ds, err := dashboard.LoadDataset(context.Background(), f, sources)
	require.NoError(t, err)

	sort.Strings(f.requested)
	assert.Equal(t, []string{"hurricanes=h.json", "summary=s.json", "world=w.geojson"}, f.requested)
	require.Len(t, ds.Hurricanes, 3)
	assert.Equal(t, domain.Cat5, ds.Hurricanes[1].Category)
	assert.Empty(t, ds.World.Polygons)
	assert.False(t, ds.LoadedAt.IsZero())
}

func TestLoadDataset_MalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		body    string
		wantErr string
	}{
		{"hurricanes not json", "hurricanes", `{"hurricanes": [`, "parse hurricane document"},
		{"unknown category", "hurricanes", `{"hurricanes": [{"name": "X", "year": 1999, "category": "HU", "track": [{"lat": 1, "lon": 1}]}]}`, "unknown storm category"},
		{"empty track", "hurricanes", `{"hurricanes": [{"name": "X", "year": 1999, "category": "TS", "track": []}]}`, "empty track"},
		{"summary not json", "summary", `{"yearlyStats": `, "parse summary document"},
		{"world not json", "world", `not geojson`, "load world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := goodFetcher()
			f.docs[tt.doc] = tt.body

			ds, err := dashboard.LoadDataset(context.Background(), f, sources)
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
