package domain

import (
	"time"

	"github.com/google/uuid"
)

// Control names a user action that mutates the filter state.
type Control string

const (
	ControlBrush       Control = "brush"
	ControlYears       Control = "years"
	ControlToggle      Control = "toggle"
	ControlCheckbox    Control = "checkbox"
	ControlMetric      Control = "metric"
	ControlReset       Control = "reset"
	ControlInitialLoad Control = "load"
)

// FilterEvent records the filter state that resulted from one control.
type FilterEvent struct {
	ID         string    `json:"id"`
	Control    Control   `json:"control"`
	YearStart  int       `json:"year_start"`
	YearEnd    int       `json:"year_end"`
	Categories []string  `json:"categories"`
	Metric     Metric    `json:"metric"`
	Visible    int       `json:"visible"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewFilterEvent snapshots f after control, with visible being the number of
// records that pass both filter dimensions.
func NewFilterEvent(control Control, f FilterState, visible int) FilterEvent {
	return FilterEvent{
		ID:         uuid.NewString(),
		Control:    control,
		YearStart:  f.Years.Start,
		YearEnd:    f.Years.End,
		Categories: f.Categories.Labels(),
		Metric:     f.Metric,
		Visible:    visible,
		OccurredAt: clock.Now().UTC(),
	}
}
