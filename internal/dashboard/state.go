package dashboard

import (
	"time"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

// Views holds the most recent rendering of each chart.
type Views struct {
	Map      render.MapView      `json:"map"`
	Timeline render.TimelineView `json:"timeline"`
	Category render.CategoryView `json:"category"`
}

// State is a consistent snapshot of the filter and the rendered views.
type State struct {
	Loaded       bool                `json:"loaded"`
	Error        string              `json:"error,omitempty"`
	TimelineMode render.TimelineMode `json:"timelineMode"`
	CategoryMode render.CategoryMode `json:"categoryMode"`
	Years        domain.YearRange    `json:"years"`
	Bounds       domain.YearRange    `json:"bounds"`
	Categories   []string            `json:"categories"`
	Metric       domain.Metric       `json:"metric"`
	Visible      int                 `json:"visible"`
	Total        int                 `json:"total"`
	LoadedAt     time.Time           `json:"loadedAt,omitzero"`
	Views

	selected domain.CategorySet
}

// PageData adapts the snapshot for the dashboard template.
func (s State) PageData(title string, palette render.Palette) render.PageData {
	return render.PageData{
		Title:        title,
		Loaded:       s.Loaded,
		Error:        s.Error,
		TimelineMode: s.TimelineMode,
		CategoryMode: s.CategoryMode,
		Years:        s.Years,
		Bounds:       s.Bounds,
		Metric:       s.Metric,
		Categories:   render.NewCategoryOptions(s.selected, palette),
		Map:          s.Map,
		Timeline:     s.Timeline,
		Category:     s.Category,
		LoadedAt:     s.LoadedAt,
	}
}
