package render

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// mapCenter is the lon/lat placed at the middle of the canvas.
var mapCenter = orb.Point{-60, 25}

// Projection is a Mercator projection centred on mapCenter, scaled to
// width/2.5 and translated to the canvas centre.
type Projection struct {
	scale  float64
	origin orb.Point // projected mapCenter, unit sphere
	tx, ty float64
}

// NewProjection builds the projection for a canvas.
func NewProjection(size Size) Projection {
	return Projection{
		scale:  size.Width / 2.5,
		origin: unitMercator(mapCenter),
		tx:     size.Width / 2,
		ty:     size.Height / 2,
	}
}

// unitMercator projects lon/lat onto a unit-radius Mercator plane.
func unitMercator(p orb.Point) orb.Point {
	m := project.WGS84.ToMercator(p)
	return orb.Point{m[0] / orb.EarthRadius, m[1] / orb.EarthRadius}
}

// Point returns canvas pixel coordinates for a lon/lat point.
func (p Projection) Point(lonLat orb.Point) orb.Point {
	m := unitMercator(lonLat)
	return orb.Point{
		p.tx + p.scale*(m[0]-p.origin[0]),
		p.ty - p.scale*(m[1]-p.origin[1]),
	}
}

// Track is one drawn storm path.
type Track struct {
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Path     string `json:"path"`
	Tooltip  string `json:"tooltip"`
}

// MapView is a laid out storm map.
type MapView struct {
	Size      Size         `json:"size"`
	Countries []string     `json:"-"`
	Tracks    []Track      `json:"tracks"`
	Legend    []LegendItem `json:"legend"`
	Matched   int          `json:"matched"`  // records passing the filter
	Rendered  int          `json:"rendered"` // tracks drawn after sampling
}

// MapRenderer projects world geometry once and storm tracks per call.
type MapRenderer struct {
	size      Size
	proj      Projection
	palette   Palette
	maxTracks int

	worldOnce sync.Once
	countries []string
}

// NewMapRenderer creates a renderer for a fixed canvas size. maxTracks caps the
// number of drawn tracks through stride sampling; zero disables the cap.
func NewMapRenderer(size Size, palette Palette, maxTracks int) *MapRenderer {
	return &MapRenderer{
		size:      size,
		proj:      NewProjection(size),
		palette:   palette,
		maxTracks: maxTracks,
	}
}

// RenderMap lays out the background and the sampled tracks of matched.
func (r *MapRenderer) RenderMap(world domain.WorldGeometry, matched []domain.Hurricane) MapView {
	r.worldOnce.Do(func() {
		r.countries = r.projectWorld(world)
	})

	sampled := domain.SampleTracks(matched, r.maxTracks)
	tracks := make([]Track, 0, len(sampled))
	for i := range sampled {
		h := sampled[i]
		tracks = append(tracks, Track{
			Name:     h.Name,
			Year:     h.Year,
			Category: h.Category.String(),
			Color:    r.palette.Color(h.Category),
			Path:     r.trackPath(h.Track),
			Tooltip:  trackTooltip(h),
		})
	}

	return MapView{
		Size:      r.size,
		Countries: r.countries,
		Tracks:    tracks,
		Legend:    r.palette.Legend(),
		Matched:   len(matched),
		Rendered:  len(tracks),
	}
}

func (r *MapRenderer) projectWorld(world domain.WorldGeometry) []string {
	out := make([]string, 0, len(world.Polygons))
	for _, poly := range world.Polygons {
		var b strings.Builder
		for _, ring := range poly {
			r.writeRing(&b, ring)
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return out
}

func (r *MapRenderer) writeRing(b *strings.Builder, ring orb.Ring) {
	for i, pt := range ring {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		writePoint(b, r.proj.Point(pt))
	}
	if len(ring) > 0 {
		b.WriteByte('Z')
	}
}

func (r *MapRenderer) trackPath(track []domain.TrackPoint) string {
	var b strings.Builder
	for i, tp := range track {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		writePoint(&b, r.proj.Point(orb.Point{tp.Lon, tp.Lat}))
	}
	return b.String()
}

func writePoint(b *strings.Builder, p orb.Point) {
	b.WriteString(formatCoord(p[0]))
	b.WriteByte(',')
	b.WriteString(formatCoord(p[1]))
}

func formatCoord(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
