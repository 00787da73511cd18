package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
)

// TrackPoint is one observed storm position. Wind and Date are carried through
// from the preparation step when present.
type TrackPoint struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Wind int     `json:"wind,omitempty"`
	Date string  `json:"date,omitempty"`
}

// Hurricane is a single storm record. Identity is name+year and is not
// guaranteed unique. Records are never mutated after loading.
type Hurricane struct {
	ID       string       `json:"id,omitempty"`
	Name     string       `json:"name"`
	Year     int          `json:"year"`
	Category Category     `json:"category"`
	MaxWind  int          `json:"maxWind"` // knots
	Lat      float64      `json:"lat,omitempty"`
	Lon      float64      `json:"lon,omitempty"`
	Track    []TrackPoint `json:"track"`
}

// Metadata describes the provenance of a hurricane document.
type Metadata struct {
	Source      string `json:"source"`
	YearRange   [2]int `json:"yearRange"`
	TotalStorms int    `json:"totalStorms"`
	LastUpdated string `json:"lastUpdated"`
}

// HurricaneDocument is the top-level shape of hurricane_data.json.
type HurricaneDocument struct {
	Hurricanes []Hurricane `json:"hurricanes"`
	Metadata   *Metadata   `json:"metadata,omitempty"`
}

// YearlyStat is one row of the summary's per-year table.
type YearlyStat struct {
	Year    int `json:"year"`
	Count   int `json:"count"`
	MaxWind int `json:"maxWind"`
}

// CategoryStat is one row of the summary's category distribution.
type CategoryStat struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// SummaryDocument is the shape written to hurricane_summary.json by the
// preparation command. The dashboard itself treats the summary as opaque.
type SummaryDocument struct {
	YearlyStats          []YearlyStat   `json:"yearlyStats"`
	CategoryDistribution []CategoryStat `json:"categoryDistribution"`
}

// WorldGeometry is the background land geometry drawn behind storm tracks.
type WorldGeometry struct {
	Polygons []orb.Polygon
}

// Dataset bundles the three startup documents. It is built once per process.
type Dataset struct {
	Hurricanes []Hurricane
	Summary    json.RawMessage
	World      WorldGeometry
	LoadedAt   time.Time
}

// NewDataset stamps a dataset with the package clock.
func NewDataset(hurricanes []Hurricane, summary json.RawMessage, world WorldGeometry) *Dataset {
	return &Dataset{
		Hurricanes: hurricanes,
		Summary:    summary,
		World:      world,
		LoadedAt:   clock.Now(),
	}
}

// ParseHurricaneDocument decodes hurricane_data.json and checks every record
// has a known category and a non-empty track.
func ParseHurricaneDocument(data []byte) (HurricaneDocument, error) {
	var doc HurricaneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return HurricaneDocument{}, fmt.Errorf("parse hurricane document: %w", err)
	}
	if doc.Hurricanes == nil {
		return HurricaneDocument{}, errors.New("parse hurricane document: missing hurricanes array")
	}
	for i := range doc.Hurricanes {
		if len(doc.Hurricanes[i].Track) == 0 {
			return HurricaneDocument{}, fmt.Errorf("parse hurricane document: record %d (%s %d) has an empty track",
				i, doc.Hurricanes[i].Name, doc.Hurricanes[i].Year)
		}
	}
	return doc, nil
}

// YearBounds returns the smallest and largest year in hs. ok is false when hs is empty.
func YearBounds(hs []Hurricane) (lo, hi int, ok bool) {
	if len(hs) == 0 {
		return 0, 0, false
	}
	lo, hi = hs[0].Year, hs[0].Year
	for i := range hs[1:] {
		y := hs[i+1].Year
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi, true
}
