package render

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

var mapSize = Size{Width: 1000, Height: 500}

func TestProjection_CentreMapsToCanvasCentre(t *testing.T) {
	p := NewProjection(mapSize)
	pt := p.Point(orb.Point{-60, 25})
	assert.InDelta(t, 500, pt[0], 1e-6)
	assert.InDelta(t, 250, pt[1], 1e-6)
}

func TestProjection_Orientation(t *testing.T) {
	p := NewProjection(mapSize)
	centre := p.Point(orb.Point{-60, 25})

	east := p.Point(orb.Point{-50, 25})
	north := p.Point(orb.Point{-60, 35})

	assert.Greater(t, east[0], centre[0])
	assert.InDelta(t, centre[1], east[1], 1e-6)
	assert.Less(t, north[1], centre[1])

	// 10 degrees of longitude at scale width/2.5
	assert.InDelta(t, 400*10*3.141592653589793/180, east[0]-centre[0], 1e-6)
}

func stormsN(n int) []domain.Hurricane {
	out := make([]domain.Hurricane, n)
	for i := range out {
		out[i] = domain.Hurricane{
			Name:     fmt.Sprintf("S%03d", i),
			Year:     1950 + i%60,
			Category: domain.Category(i % domain.CategoryCount),
			MaxWind:  40 + i%100,
			Track:    []domain.TrackPoint{{Lat: 25, Lon: -60}, {Lat: 26, Lon: -61}},
		}
	}
	return out
}

func TestRenderMap_SamplesTracks(t *testing.T) {
	r := NewMapRenderer(mapSize, DefaultPalette(), 200)
	view := r.RenderMap(domain.WorldGeometry{}, stormsN(450))

	assert.Equal(t, 450, view.Matched)
	assert.Equal(t, 150, view.Rendered)
	require.Len(t, view.Tracks, 150)
	assert.Equal(t, "S000", view.Tracks[0].Name)
	assert.Equal(t, "S003", view.Tracks[1].Name)
	assert.Len(t, view.Legend, domain.CategoryCount)
}

func TestRenderMap_TrackPathAndColour(t *testing.T) {
	palette := DefaultPalette()
	r := NewMapRenderer(mapSize, palette, 200)
	view := r.RenderMap(domain.WorldGeometry{}, stormsN(3))

	require.Len(t, view.Tracks, 3)
	tr := view.Tracks[2]
	assert.True(t, strings.HasPrefix(tr.Path, "M500,250L"), tr.Path)
	assert.Equal(t, palette.Color(domain.Cat1), tr.Color)
	assert.Equal(t, "Cat1", tr.Category)
	assert.Contains(t, tr.Tooltip, "<strong>S002</strong>")
}

func TestRenderMap_ProjectsWorldOnce(t *testing.T) {
	square := orb.Polygon{orb.Ring{{-70, 20}, {-50, 20}, {-50, 30}, {-70, 30}, {-70, 20}}}
	r := NewMapRenderer(mapSize, DefaultPalette(), 200)

	first := r.RenderMap(domain.WorldGeometry{Polygons: []orb.Polygon{square}}, nil)
	require.Len(t, first.Countries, 1)
	assert.True(t, strings.HasSuffix(first.Countries[0], "Z"))

	second := r.RenderMap(domain.WorldGeometry{}, nil)
	assert.Equal(t, first.Countries, second.Countries)
	assert.Zero(t, second.Rendered)
}

type countingObserver struct {
	hits, misses atomic.Int32
}

func (o *countingObserver) ObserveMapCache(hit bool) {
	if hit {
		o.hits.Add(1)
		return
	}
	o.misses.Add(1)
}

func TestCachedMapRenderer_HitsAndMisses(t *testing.T) {
	obs := &countingObserver{}
	c := NewCachedMapRenderer(NewMapRenderer(mapSize, DefaultPalette(), 200), 2, obs)
	storms := stormsN(10)

	a := c.RenderMap("a", domain.WorldGeometry{}, storms)
	again := c.RenderMap("a", domain.WorldGeometry{}, nil)
	assert.Equal(t, a.Rendered, again.Rendered)
	assert.Equal(t, int32(1), obs.hits.Load())
	assert.Equal(t, int32(1), obs.misses.Load())

	c.RenderMap("b", domain.WorldGeometry{}, storms[:1])
	c.RenderMap("c", domain.WorldGeometry{}, storms[:2])
	assert.Equal(t, 2, c.cache.len())

	// "a" was least recently used and is evicted
	evicted := c.RenderMap("a", domain.WorldGeometry{}, nil)
	assert.Zero(t, evicted.Rendered)
	assert.Equal(t, int32(4), obs.misses.Load())
}

func TestCachedMapRenderer_ZeroSizeDisablesCache(t *testing.T) {
	c := NewCachedMapRenderer(NewMapRenderer(mapSize, DefaultPalette(), 200), 0, nil)
	c.RenderMap("a", domain.WorldGeometry{}, stormsN(5))
	assert.Zero(t, c.cache.len())
}

func TestLRUCache_RecentUseSurvivesEviction(t *testing.T) {
	c := newLRUCache[string, MapView](2)
	c.put("a", MapView{Matched: 1})
	c.put("b", MapView{Matched: 2})
	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", MapView{Matched: 3})

	_, ok = c.get("b")
	assert.False(t, ok)
	v, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v.Matched)
}

func TestLRUCache_PutReplacesValue(t *testing.T) {
	c := newLRUCache[string, int](1)
	c.put("a", 1)
	c.put("a", 2)

	v, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.len())
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "12.35", formatCoord(12.3456))
	assert.Equal(t, "-3", formatCoord(-3))
	assert.Equal(t, "0", formatCoord(0))
}
