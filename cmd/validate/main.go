// Command validate checks the dashboard's startup documents for internal
// consistency: the hurricane document against its own metadata, the summary
// against the storms, and the world geometry. It finishes by loading all three
// through the dashboard's own loader.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -hurricanes data/hurricane_data.json \
//	  -summary data/hurricane_summary.json \
//	  -world https://raw.githubusercontent.com/holtzy/D3-graph-gallery/master/DATA/world.geojson
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/hurricane-dashboard/internal/adapter/source"
	"github.com/couchcryptid/hurricane-dashboard/internal/config"
	"github.com/couchcryptid/hurricane-dashboard/internal/dashboard"
	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	hurricanes := flag.String("hurricanes", "data/hurricane_data.json", "path or URL of the hurricane document")
	summary := flag.String("summary", "data/hurricane_summary.json", "path or URL of the summary document")
	world := flag.String("world", config.DefaultWorldGeoJSONURL, "path or URL of the world GeoJSON")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout per document")
	flag.Parse()

	src := dashboard.Sources{Hurricanes: *hurricanes, Summary: *summary, World: *world}
	if code := run(context.Background(), os.Stdout, src, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, out io.Writer, src dashboard.Sources, timeout time.Duration) int {
	fmt.Fprintln(out, "=== Hurricane Data Integrity Validation ===")
	fmt.Fprintln(out)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := source.NewFetcher(timeout, nil, logger)

	hurricaneData, err := fetcher.Fetch(ctx, "hurricanes", src.Hurricanes)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	summaryData, err := fetcher.Fetch(ctx, "summary", src.Summary)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	worldData, err := fetcher.Fetch(ctx, "world", src.World)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	doc, docPhase := validateHurricanes(hurricaneData)
	phases := []*phase{
		docPhase,
		validateSummary(summaryData, doc.Hurricanes),
		validateWorld(worldData),
		validateLoad(ctx, fetcher, src),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Storms: %s, track points: %s\n",
		humanize.Comma(int64(len(doc.Hurricanes))), humanize.Comma(int64(trackPoints(doc.Hurricanes))))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func trackPoints(hs []domain.Hurricane) int {
	n := 0
	for i := range hs {
		n += len(hs[i].Track)
	}
	return n
}

// ── Phase 1: Hurricane document ──

func validateHurricanes(data []byte) (domain.HurricaneDocument, *phase) {
	p := &phase{name: "Phase 1: Hurricane document"}

	doc, err := domain.ParseHurricaneDocument(data)
	if err != nil {
		p.errorf("%v", err)
		return domain.HurricaneDocument{}, p
	}

	for i := range doc.Hurricanes {
		checkHurricane(p, i, &doc.Hurricanes[i])
	}
	checkMetadata(p, doc)
	return doc, p
}

func checkHurricane(p *phase, i int, h *domain.Hurricane) {
	label := fmt.Sprintf("record %d (%s %d)", i, h.Name, h.Year)

	if want := domain.CategorizeWind(h.MaxWind); h.Category != want {
		p.errorf("%s: category %s, max wind %d implies %s", label, h.Category, h.MaxWind, want)
	}

	trackMax := -1
	for j, tp := range h.Track {
		if tp.Lat < -90 || tp.Lat > 90 || tp.Lon < -180 || tp.Lon > 180 {
			p.errorf("%s: track point %d out of range (%g, %g)", label, j, tp.Lat, tp.Lon)
		}
		if tp.Wind > 0 {
			trackMax = max(trackMax, tp.Wind)
		}
	}
	if trackMax >= 0 && trackMax != h.MaxWind {
		p.errorf("%s: max wind %d, track maximum %d", label, h.MaxWind, trackMax)
	}
}

func checkMetadata(p *phase, doc domain.HurricaneDocument) {
	if doc.Metadata == nil {
		return
	}
	if doc.Metadata.TotalStorms != len(doc.Hurricanes) {
		p.errorf("metadata: totalStorms %d, document has %d", doc.Metadata.TotalStorms, len(doc.Hurricanes))
	}
	if lo, hi, ok := domain.YearBounds(doc.Hurricanes); ok && doc.Metadata.YearRange != [2]int{lo, hi} {
		p.errorf("metadata: yearRange %v, records span [%d %d]", doc.Metadata.YearRange, lo, hi)
	}
}

// ── Phase 2: Summary ──
// Every storm year must appear in the yearly table, and no bucket may count more
// storms than exist.

func validateSummary(data []byte, hs []domain.Hurricane) *phase {
	p := &phase{name: "Phase 2: Summary document"}

	var summary domain.SummaryDocument
	if err := json.Unmarshal(data, &summary); err != nil {
		p.errorf("parse summary: %v", err)
		return p
	}

	years := make(map[int]domain.YearlyStat, len(summary.YearlyStats))
	prev := 0
	for i, s := range summary.YearlyStats {
		if i > 0 && s.Year <= prev {
			p.errorf("yearlyStats[%d]: year %d not ascending", i, s.Year)
		}
		prev = s.Year
		years[s.Year] = s
	}

	stormsPerYear := map[int]int{}
	for i := range hs {
		stormsPerYear[hs[i].Year]++
	}
	for year, n := range stormsPerYear {
		s, ok := years[year]
		if !ok {
			p.errorf("year %d: %d storms, missing from yearlyStats", year, n)
			continue
		}
		if s.Count < n {
			p.errorf("year %d: yearlyStats count %d below %d storms starting that year", year, s.Count, n)
		}
	}

	for _, c := range summary.CategoryDistribution {
		if c.Count > len(hs) {
			p.errorf("category %s: count %d exceeds %d storms", c.Category, c.Count, len(hs))
		}
	}
	return p
}

// ── Phase 3: World geometry ──

func validateWorld(data []byte) *phase {
	p := &phase{name: "Phase 3: World geometry"}
	world, err := render.ParseWorld(data)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if len(world.Polygons) == 0 {
		p.errorf("no Polygon or MultiPolygon features")
	}
	return p
}

// ── Phase 4: Dashboard load ──

func validateLoad(ctx context.Context, f dashboard.Fetcher, src dashboard.Sources) *phase {
	p := &phase{name: "Phase 4: Dashboard load"}
	if _, err := dashboard.LoadDataset(ctx, f, src); err != nil {
		p.errorf("%v", err)
	}
	return p
}
