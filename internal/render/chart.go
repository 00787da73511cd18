package render

import (
	"fmt"
	"strconv"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// TimelineMode selects how the year range is edited.
type TimelineMode string

const (
	TimelineBrush  TimelineMode = "brush"
	TimelineSlider TimelineMode = "slider"
)

// CategoryMode selects how category membership is edited.
type CategoryMode string

const (
	CategoryToggle   CategoryMode = "toggle"
	CategoryCheckbox CategoryMode = "checkbox"
)

// Size is a chart canvas in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bar is one positioned histogram bar.
type Bar struct {
	Key         string  `json:"key"`
	Count       int     `json:"count"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Selected    bool    `json:"selected"`
	Tooltip     string  `json:"tooltip"`
}

// Center is the horizontal midpoint of the bar.
func (b Bar) Center() float64 {
	return b.X + b.Width/2
}

// Tick is one axis label.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Extent is a horizontal pixel interval.
type Extent struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
}

// TimelineView is a fully laid out year histogram.
type TimelineView struct {
	Size     Size          `json:"size"`
	Margin   Margin        `json:"margin"`
	Mode     TimelineMode  `json:"mode"`
	Metric   domain.Metric `json:"metric"`
	Bars     []Bar         `json:"bars"`
	XTicks   []Tick        `json:"xTicks"`
	YTicks   []Tick        `json:"yTicks"`
	Baseline float64       `json:"baseline"`
	Area     Extent        `json:"area"`            // brushable region
	Brush    *Extent       `json:"brush,omitempty"` // current selection, brush mode only
}

// BarYears returns the years of every bar whose centre lies in [x0, x1].
func (v TimelineView) BarYears(x0, x1 float64) []int {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	var years []int
	for _, b := range v.Bars {
		if c := b.Center(); c >= x0 && c <= x1 {
			y, err := strconv.Atoi(b.Key)
			if err == nil {
				years = append(years, y)
			}
		}
	}
	return years
}

// CategoryView is a fully laid out category histogram.
type CategoryView struct {
	Size     Size         `json:"size"`
	Margin   Margin       `json:"margin"`
	Mode     CategoryMode `json:"mode"`
	Bars     []Bar        `json:"bars"`
	XTicks   []Tick       `json:"xTicks"`
	YTicks   []Tick       `json:"yTicks"`
	Baseline float64      `json:"baseline"`
}

// TimelineInput is everything the timeline layout needs.
type TimelineInput struct {
	Counts   []domain.YearCount
	Selected domain.YearRange
	Mode     TimelineMode
	Metric   domain.Metric
}

// LayoutTimeline positions one bar per year bucket, in the order given.
func LayoutTimeline(size Size, in TimelineInput) TimelineView {
	m := chartMargin
	baseline := size.Height - m.Bottom
	x := newBandScale(len(in.Counts), m.Left, size.Width-m.Right, 0.2)

	maxCount := 0
	for _, c := range in.Counts {
		maxCount = max(maxCount, c.Count)
	}
	y := newNiceLinearScale(maxCount, baseline, m.Top)

	view := TimelineView{
		Size:     size,
		Margin:   m,
		Mode:     in.Mode,
		Metric:   in.Metric,
		Bars:     make([]Bar, 0, len(in.Counts)),
		Baseline: baseline,
		Area:     Extent{X0: m.Left, X1: size.Width - m.Right},
	}

	var brush Extent
	haveStart, haveEnd := false, false
	for i, c := range in.Counts {
		top := y.y(float64(c.Count))
		selected := in.Selected.Contains(c.Year)
		fill := colorSelected
		if in.Mode == TimelineBrush && !selected {
			fill = colorUnselected
		}
		view.Bars = append(view.Bars, Bar{
			Key:      strconv.Itoa(c.Year),
			Count:    c.Count,
			X:        x.x(i),
			Y:        top,
			Width:    x.bandwidth,
			Height:   baseline - top,
			Fill:     fill,
			Selected: selected,
			Tooltip:  timelineTooltip(c.Year, c.Count, in.Metric),
		})
		if i%5 == 0 {
			view.XTicks = append(view.XTicks, Tick{Pos: x.center(i), Label: strconv.Itoa(c.Year)})
		}
		if c.Year == in.Selected.Start {
			brush.X0, haveStart = x.x(i), true
		}
		if c.Year == in.Selected.End {
			brush.X1, haveEnd = x.x(i)+x.bandwidth, true
		}
	}
	if in.Mode == TimelineBrush && haveStart && haveEnd {
		view.Brush = &brush
	}
	view.YTicks = yTicks(y)
	return view
}

// CategoryInput is everything the category layout needs.
type CategoryInput struct {
	Counts   []domain.CategoryBucket
	Selected domain.CategorySet
	Mode     CategoryMode
	Palette  Palette
}

// LayoutCategories positions the seven category bars.
func LayoutCategories(size Size, in CategoryInput) CategoryView {
	m := chartMargin
	baseline := size.Height - m.Bottom
	x := newBandScale(len(in.Counts), m.Left, size.Width-m.Right, 0.3)

	maxCount := 0
	for _, c := range in.Counts {
		maxCount = max(maxCount, c.Count)
	}
	y := newNiceLinearScale(maxCount, baseline, m.Top)

	view := CategoryView{
		Size:     size,
		Margin:   m,
		Mode:     in.Mode,
		Bars:     make([]Bar, 0, len(in.Counts)),
		Baseline: baseline,
	}
	for i, c := range in.Counts {
		top := y.y(float64(c.Count))
		selected := in.Selected.Has(c.Category)
		bar := Bar{
			Key:      c.Category.String(),
			Count:    c.Count,
			X:        x.x(i),
			Y:        top,
			Width:    x.bandwidth,
			Height:   baseline - top,
			Fill:     in.Palette.Color(c.Category),
			Selected: selected,
			Tooltip:  categoryTooltip(c.Category, c.Count, selected, in.Mode),
		}
		if in.Mode == CategoryToggle {
			if selected {
				bar.Stroke, bar.StrokeWidth = colorBorder, 2
			} else {
				bar.Fill = colorUnselected
			}
		}
		view.Bars = append(view.Bars, bar)
		view.XTicks = append(view.XTicks, Tick{Pos: x.center(i), Label: c.Category.String()})
	}
	view.YTicks = yTicks(y)
	return view
}

func yTicks(y linearScale) []Tick {
	values := y.ticks(5)
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{Pos: y.y(v), Label: fmt.Sprintf("%g", v)}
	}
	return out
}
