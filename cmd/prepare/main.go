// Command prepare converts the NOAA Atlantic HURDAT CSV into the two JSON
// documents the dashboard loads at startup.
//
// Usage:
//
//	go run ./cmd/prepare \
//	  -csv data/atlantic.csv \
//	  -out data/hurricane_data.json \
//	  -summary-out data/hurricane_summary.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "path to the HURDAT atlantic.csv file")
	out := flag.String("out", "data/hurricane_data.json", "output path for the hurricane document")
	summaryOut := flag.String("summary-out", "data/hurricane_summary.json", "output path for the summary document")
	minYear := flag.Int("min-year", 1950, "drop fixes from earlier years")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, stats, err := readRows(f, *minYear)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("rows: %s read, %s kept (%s bad wind, %s bad coordinates, %s before %d)",
		humanize.Comma(int64(stats.total)), humanize.Comma(int64(len(rows))),
		humanize.Comma(int64(stats.badWind)), humanize.Comma(int64(stats.badCoord)),
		humanize.Comma(int64(stats.beforeStart)), *minYear)

	hurricanes := buildHurricanes(rows)
	doc := buildDocument(hurricanes, clockwork.NewRealClock())
	log.Printf("storms: %s (%d-%d)", humanize.Comma(int64(len(hurricanes))), doc.Metadata.YearRange[0], doc.Metadata.YearRange[1])

	if err := writeJSON(*out, doc); err != nil {
		return fmt.Errorf("writing hurricane document: %w", err)
	}
	log.Printf("wrote hurricane document: %s", *out)

	summary := buildSummary(rows)
	if err := writeJSON(*summaryOut, summary); err != nil {
		return fmt.Errorf("writing summary document: %w", err)
	}
	log.Printf("wrote summary document: %s", *summaryOut)

	printDistribution(summary)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printDistribution(summary domain.SummaryDocument) {
	fmt.Println("\nCategory distribution:")
	for _, c := range summary.CategoryDistribution {
		fmt.Printf("  %-4s %s storms\n", c.Category, humanize.Comma(int64(c.Count)))
	}
}
