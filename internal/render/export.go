package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// ErrNothingToExport is returned when a chart has no bars to draw.
var ErrNothingToExport = errors.New("chart has no bars")

// ErrUnknownFormat is returned for an export format other than svg or png.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportFormat is a static image encoding.
type ExportFormat string

const (
	FormatSVG ExportFormat = "svg"
	FormatPNG ExportFormat = "png"
)

// ParseExportFormat validates a format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f ExportFormat) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// ExportTimeline writes the timeline's current bars as a static bar chart.
func ExportTimeline(w io.Writer, view TimelineView, format ExportFormat) error {
	title := "Hurricanes per year"
	if view.Metric == domain.MetricMajor {
		title = "Major hurricanes per year"
	}
	return exportBars(w, title, view.Size, view.Bars, format)
}

// ExportCategories writes the category chart's current bars as a static bar chart.
func ExportCategories(w io.Writer, view CategoryView, format ExportFormat) error {
	return exportBars(w, "Hurricanes by category", view.Size, view.Bars, format)
}

func exportBars(w io.Writer, title string, size Size, bars []Bar, format ExportFormat) error {
	if len(bars) == 0 {
		return ErrNothingToExport
	}

	values := make([]chart.Value, 0, len(bars))
	maxCount := 0
	for _, b := range bars {
		maxCount = max(maxCount, b.Count)
		style := chart.Style{
			FillColor:   hexColor(b.Fill),
			StrokeColor: hexColor(b.Fill),
		}
		if b.Stroke != "" {
			style.StrokeColor = hexColor(b.Stroke)
			style.StrokeWidth = b.StrokeWidth
		}
		values = append(values, chart.Value{
			Value: float64(b.Count),
			Label: b.Key,
			Style: style,
		})
	}

	y := newNiceLinearScale(maxCount, 1, 0)
	width := max(int(size.Width), 12*len(bars)+100)
	barWidth := max(4, width/(2*len(bars)))
	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     int(size.Height) + 60,
		BarWidth:   barWidth,
		BarSpacing: max(2, barWidth/2),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: y.max},
		},
		Bars: values,
	}
	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

func hexColor(css string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(css, "#"))
}
