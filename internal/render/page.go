package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// CategoryOption is one entry of the checkbox list.
type CategoryOption struct {
	Label   string
	Color   string
	Checked bool
}

// PageData is everything the dashboard page needs to render.
type PageData struct {
	Title        string
	Loaded       bool
	Error        string
	TimelineMode TimelineMode
	CategoryMode CategoryMode
	Years        domain.YearRange
	Bounds       domain.YearRange // first and last year in the dataset
	Metric       domain.Metric
	Categories   []CategoryOption
	Map          MapView
	Timeline     TimelineView
	Category     CategoryView
	LoadedAt     time.Time
}

// NewCategoryOptions lists every category with its colour and membership.
func NewCategoryOptions(selected domain.CategorySet, palette Palette) []CategoryOption {
	out := make([]CategoryOption, 0, domain.CategoryCount)
	for _, c := range domain.Categories() {
		out = append(out, CategoryOption{Label: c.String(), Color: palette.Color(c), Checked: selected.Has(c)})
	}
	return out
}

// Page renders the dashboard document.
type Page struct {
	tmpl *template.Template
}

// NewPage parses the embedded dashboard template.
func NewPage() (*Page, error) {
	tmpl, err := template.New("dashboard.html.tmpl").Funcs(template.FuncMap{
		"px":       formatCoord,
		"comma":    func(n int) string { return humanize.Comma(int64(n)) },
		"since":    humanize.Time,
		"landFill": func() string { return colorLand },
		"landLine": func() string { return colorLandStroke },
		"isBrush":  func(m TimelineMode) bool { return m == TimelineBrush },
		"isToggle": func(m CategoryMode) bool { return m == CategoryToggle },
		"add":      func(a, b float64) float64 { return a + b },
		"sub":      func(a, b float64) float64 { return a - b },
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Page{tmpl: tmpl}, nil
}

// Execute writes the page for data to w.
func (p *Page) Execute(w io.Writer, data PageData) error {
	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute dashboard template: %w", err)
	}
	return nil
}
