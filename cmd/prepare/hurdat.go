package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

const sourceName = "NOAA Hurricane Database"

// row is one fix from the HURDAT CSV after cleaning.
type row struct {
	id   string
	name string
	date int // YYYYMMDD
	time int // HHMM
	wind int
	lat  float64
	lon  float64
}

func (r row) year() int { return r.date / 10000 }

func (r row) isoDate() string {
	return fmt.Sprintf("%04d-%02d-%02d", r.date/10000, r.date/100%100, r.date%100)
}

// readStats counts what readRows kept and dropped.
type readStats struct {
	total       int
	badWind     int
	badCoord    int
	beforeStart int
}

var requiredColumns = []string{"ID", "Name", "Date", "Time", "Maximum Wind", "Latitude", "Longitude"}

// readRows parses the HURDAT CSV, dropping rows with a negative or missing wind
// speed, unparseable coordinates, or a year before minYear.
func readRows(r io.Reader, minYear int) ([]row, readStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, readStats{}, fmt.Errorf("read header: %w", err)
	}
	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, readStats{}, fmt.Errorf("missing column %q", col)
		}
	}

	var (
		rows  []row
		stats readStats
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read csv: %w", err)
		}
		stats.total++

		wind, err := strconv.Atoi(get(rec, colIdx, "Maximum Wind"))
		if err != nil || wind < 0 {
			stats.badWind++
			continue
		}
		lat, latErr := parseCoordinate(get(rec, colIdx, "Latitude"))
		lon, lonErr := parseCoordinate(get(rec, colIdx, "Longitude"))
		if latErr != nil || lonErr != nil {
			stats.badCoord++
			continue
		}
		date, err := strconv.Atoi(get(rec, colIdx, "Date"))
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: date: %w", stats.total, err)
		}
		hhmm, _ := strconv.Atoi(get(rec, colIdx, "Time"))

		fix := row{
			id:   get(rec, colIdx, "ID"),
			name: get(rec, colIdx, "Name"),
			date: date,
			time: hhmm,
			wind: wind,
			lat:  lat,
			lon:  lon,
		}
		if fix.year() < minYear {
			stats.beforeStart++
			continue
		}
		rows = append(rows, fix)
	}
	return rows, stats, nil
}

// parseCoordinate converts "28.0N" or "80.0W" to signed decimal degrees.
func parseCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("coordinate %q too short", s)
	}
	v, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("coordinate %q: %w", s, err)
	}
	switch s[len(s)-1] {
	case 'N', 'E':
		return v, nil
	case 'S', 'W':
		return -v, nil
	default:
		return 0, fmt.Errorf("coordinate %q: unknown hemisphere", s)
	}
}

func get(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// buildHurricanes groups fixes by storm ID in first-seen order. Each track is
// sorted by date and time; name and year come from the earliest fix.
func buildHurricanes(rows []row) []domain.Hurricane {
	var order []string
	byID := map[string][]row{}
	for _, r := range rows {
		if _, ok := byID[r.id]; !ok {
			order = append(order, r.id)
		}
		byID[r.id] = append(byID[r.id], r)
	}

	out := make([]domain.Hurricane, 0, len(order))
	for _, id := range order {
		fixes := byID[id]
		slices.SortStableFunc(fixes, func(a, b row) int {
			if a.date != b.date {
				return a.date - b.date
			}
			return a.time - b.time
		})

		h := domain.Hurricane{
			ID:    id,
			Name:  fixes[0].name,
			Year:  fixes[0].year(),
			Track: make([]domain.TrackPoint, 0, len(fixes)),
		}
		for _, f := range fixes {
			h.MaxWind = max(h.MaxWind, f.wind)
			h.Track = append(h.Track, domain.TrackPoint{
				Lat:  f.lat,
				Lon:  f.lon,
				Wind: f.wind,
				Date: f.isoDate(),
			})
		}
		h.Category = domain.CategorizeWind(h.MaxWind)
		out = append(out, h)
	}
	return out
}

// buildDocument wraps the storms with provenance metadata stamped by clock.
func buildDocument(hs []domain.Hurricane, clock clockwork.Clock) domain.HurricaneDocument {
	meta := &domain.Metadata{
		Source:      sourceName,
		TotalStorms: len(hs),
		LastUpdated: clock.Now().UTC().Format("2006-01-02"),
	}
	if lo, hi, ok := domain.YearBounds(hs); ok {
		meta.YearRange = [2]int{lo, hi}
	}
	return domain.HurricaneDocument{Hurricanes: hs, Metadata: meta}
}

// buildSummary counts distinct storms per year and per category. The category
// of a fix is taken from its own wind, so a storm counts once in every
// category it reached.
func buildSummary(rows []row) domain.SummaryDocument {
	type yearAgg struct {
		storms  map[string]struct{}
		maxWind int
	}
	years := map[int]*yearAgg{}
	cats := make([]map[string]struct{}, domain.CategoryCount)

	for _, r := range rows {
		y, ok := years[r.year()]
		if !ok {
			y = &yearAgg{storms: map[string]struct{}{}}
			years[r.year()] = y
		}
		y.storms[r.id] = struct{}{}
		y.maxWind = max(y.maxWind, r.wind)

		c := domain.CategorizeWind(r.wind)
		if cats[c] == nil {
			cats[c] = map[string]struct{}{}
		}
		cats[c][r.id] = struct{}{}
	}

	var doc domain.SummaryDocument
	keys := make([]int, 0, len(years))
	for y := range years {
		keys = append(keys, y)
	}
	slices.Sort(keys)
	for _, y := range keys {
		doc.YearlyStats = append(doc.YearlyStats, domain.YearlyStat{
			Year:    y,
			Count:   len(years[y].storms),
			MaxWind: years[y].maxWind,
		})
	}
	for _, c := range domain.Categories() {
		if n := len(cats[c]); n > 0 {
			doc.CategoryDistribution = append(doc.CategoryDistribution, domain.CategoryStat{Category: c, Count: n})
		}
	}
	return doc
}
