package render

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// ParseWorld decodes a GeoJSON feature collection into background polygons.
// Polygon and MultiPolygon features are kept; any other geometry is skipped.
func ParseWorld(data []byte) (domain.WorldGeometry, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return domain.WorldGeometry{}, fmt.Errorf("parse world geojson: %w", err)
	}

	var world domain.WorldGeometry
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		switch {
		case f.Geometry.IsPolygon():
			world.Polygons = append(world.Polygons, toPolygon(f.Geometry.Polygon))
		case f.Geometry.IsMultiPolygon():
			for _, p := range f.Geometry.MultiPolygon {
				world.Polygons = append(world.Polygons, toPolygon(p))
			}
		}
	}
	return world, nil
}

func toPolygon(rings [][][]float64) orb.Polygon {
	poly := make(orb.Polygon, 0, len(rings))
	for _, ring := range rings {
		r := make(orb.Ring, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				continue
			}
			r = append(r, orb.Point{pos[0], pos[1]})
		}
		if len(r) > 0 {
			poly = append(poly, r)
		}
	}
	return poly
}
