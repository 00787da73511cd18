package domain

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountByYear_SkipsMissingYears(t *testing.T) {
	hs := []Hurricane{storm("A", 2001, TS), storm("B", 2001, TD), storm("C", 2003, Cat1)}

	got := CountByYear(hs)

	require.Len(t, got, 2)
	assert.Equal(t, []YearCount{{Year: 2001, Count: 2}, {Year: 2003, Count: 1}}, got)
}

func TestCountByYear_SortsAscending(t *testing.T) {
	hs := []Hurricane{storm("A", 1990, TS), storm("B", 1951, TD), storm("C", 1970, Cat1), storm("D", 1951, TS)}

	got := CountByYear(hs)

	assert.Equal(t, []YearCount{{1951, 2}, {1970, 1}, {1990, 1}}, got)
	assert.Empty(t, CountByYear(nil))
}

func TestCountByYearDense_FillsZeros(t *testing.T) {
	hs := []Hurricane{storm("A", 2001, TS), storm("B", 2001, TD), storm("C", 2003, Cat1), storm("D", 1999, Cat1)}

	got := CountByYearDense(hs, YearRange{Start: 2001, End: 2003})

	assert.Equal(t, []YearCount{{2001, 2}, {2002, 0}, {2003, 1}}, got)
	assert.Empty(t, CountByYearDense(hs, YearRange{Start: 2003, End: 2001}))
}

func TestCountByYearDense_RejectsOversizedRanges(t *testing.T) {
	hs := []Hurricane{storm("A", 2001, TS)}

	assert.Empty(t, CountByYearDense(hs, YearRange{Start: -(1 << 40), End: 1 << 40}))
	assert.Empty(t, CountByYearDense(hs, YearRange{Start: math.MinInt, End: math.MaxInt}))
	assert.Empty(t, CountByYearDense(hs, YearRange{Start: 0, End: MaxDenseYears}))
	assert.Len(t, CountByYearDense(hs, YearRange{Start: 1, End: MaxDenseYears}), MaxDenseYears)
	assert.Len(t, CountByYearDense(hs, YearRange{Start: math.MaxInt, End: math.MaxInt}), 1)
}

func TestYearRange_Intersect(t *testing.T) {
	got, ok := YearRange{Start: math.MinInt, End: math.MaxInt}.Intersect(YearRange{Start: 1950, End: 2015})
	require.True(t, ok)
	assert.Equal(t, YearRange{Start: 1950, End: 2015}, got)

	got, ok = YearRange{Start: 1900, End: 1960}.Intersect(YearRange{Start: 1950, End: 2015})
	require.True(t, ok)
	assert.Equal(t, YearRange{Start: 1950, End: 1960}, got)

	_, ok = YearRange{Start: 1900, End: 1940}.Intersect(YearRange{Start: 1950, End: 2015})
	assert.False(t, ok)
	_, ok = YearRange{Start: 2000, End: 1990}.Intersect(YearRange{Start: 1950, End: 2015})
	assert.False(t, ok)
}

func TestCountByCategory_AlwaysSeven(t *testing.T) {
	got := CountByCategory([]Hurricane{storm("A", 1950, TD), storm("B", 1960, Cat5), storm("C", 2015, TS)})

	require.Len(t, got, CategoryCount)
	want := map[Category]int{TD: 1, TS: 1, Cat1: 0, Cat2: 0, Cat3: 0, Cat4: 0, Cat5: 1}
	for i, b := range got {
		assert.Equal(t, Category(i), b.Category)
		assert.Equal(t, want[b.Category], b.Count, b.Category.String())
	}

	empty := CountByCategory(nil)
	require.Len(t, empty, CategoryCount)
	for _, b := range empty {
		assert.Zero(t, b.Count)
	}
}

func makeStorms(n int) []Hurricane {
	hs := make([]Hurricane, n)
	for i := range hs {
		hs[i] = storm(fmt.Sprintf("S%04d", i), 1950+i%66, CategorizeWind(i%160))
	}
	return hs
}

func TestSampleTracks_StrideDecimation(t *testing.T) {
	for _, n := range []int{201, 250, 399, 400, 401, 1000, 1873} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			hs := makeStorms(n)
			stride := (n + 199) / 200

			got := SampleTracks(hs, 200)

			assert.Len(t, got, (n+stride-1)/stride)
			assert.LessOrEqual(t, len(got), 200)
			for j, h := range got {
				assert.Equal(t, hs[j*stride].Name, h.Name)
			}
		})
	}
}

func TestSampleTracks_UnderLimitUnchanged(t *testing.T) {
	hs := makeStorms(200)
	assert.Len(t, SampleTracks(hs, 200), 200)
	assert.Len(t, SampleTracks(hs, 0), 200)
	assert.Empty(t, SampleTracks(nil, 200))
}

func TestParseHurricaneDocument(t *testing.T) {
	data := []byte(`{"hurricanes":[
		{"id":"AL011950","name":"ABLE","year":1950,"category":"Cat3","maxWind":110,"track":[{"lat":17.1,"lon":-55.5,"wind":35,"date":"1950-08-12"}]}
	],"metadata":{"source":"NOAA Hurricane Database","yearRange":[1950,1950],"totalStorms":1,"lastUpdated":"2015-11-13"}}`)

	doc, err := ParseHurricaneDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Hurricanes, 1)
	h := doc.Hurricanes[0]
	assert.Equal(t, "ABLE", h.Name)
	assert.Equal(t, Cat3, h.Category)
	assert.Equal(t, 110, h.MaxWind)
	assert.Equal(t, TrackPoint{Lat: 17.1, Lon: -55.5, Wind: 35, Date: "1950-08-12"}, h.Track[0])
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, [2]int{1950, 1950}, doc.Metadata.YearRange)
}

func TestParseHurricaneDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{"hurricanes":[`, "parse hurricane document"},
		{"missing array", `{}`, "missing hurricanes array"},
		{"unknown category", `{"hurricanes":[{"name":"X","year":1950,"category":"HU","track":[{"lat":1,"lon":1}]}]}`, "unknown storm category"},
		{"empty track", `{"hurricanes":[{"name":"X","year":1950,"category":"TD","track":[]}]}`, "empty track"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHurricaneDocument([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewDataset_StampsLoadedAt(t *testing.T) {
	at := time.Date(2015, time.November, 13, 0, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })

	ds := NewDataset(sampleStorms(), nil, WorldGeometry{})
	assert.Equal(t, at, ds.LoadedAt)
	assert.Len(t, ds.Hurricanes, 6)
}

func TestYearBounds(t *testing.T) {
	lo, hi, ok := YearBounds(sampleStorms())
	require.True(t, ok)
	assert.Equal(t, 1950, lo)
	assert.Equal(t, 2015, hi)

	_, _, ok = YearBounds(nil)
	assert.False(t, ok)
}
