package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/observability"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

var (
	// ErrNotLoaded is returned by controls invoked before the dataset is available.
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrModeDisabled is returned by a control the configured interaction mode does not offer.
	ErrModeDisabled = errors.New("control not available in this mode")
)

// EventSink receives a record of every filter change.
type EventSink interface {
	Publish(ctx context.Context, event domain.FilterEvent) error
}

// Options configures an App.
type Options struct {
	TimelineMode render.TimelineMode
	CategoryMode render.CategoryMode
	DefaultYears domain.YearRange
	MaxTracks    int
	MapCacheSize int
	Palette      render.Palette

	MapSize      render.Size
	TimelineSize render.Size
	CategorySize render.Size
}

// DefaultOptions returns the stock modes, year range and canvas sizes.
func DefaultOptions() Options {
	return Options{
		TimelineMode: render.TimelineBrush,
		CategoryMode: render.CategoryToggle,
		DefaultYears: domain.YearRange{Start: 1950, End: 2015},
		MaxTracks:    200,
		MapCacheSize: 64,
		Palette:      render.DefaultPalette(),
		MapSize:      render.Size{Width: 960, Height: 500},
		TimelineSize: render.Size{Width: 960, Height: 200},
		CategorySize: render.Size{Width: 480, Height: 300},
	}
}

// App owns the dataset and the shared filter state. Every control mutates the
// state and re-renders all three charts before returning.
type App struct {
	opts    Options
	maps    *render.CachedMapRenderer
	sink    EventSink
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	dataset *domain.Dataset
	loadErr error
	filter  domain.FilterState
	views   Views
}

// New creates an App. sink may be nil.
func New(opts Options, sink EventSink, logger *slog.Logger, metrics *observability.Metrics) *App {
	if opts.Palette == nil {
		opts.Palette = render.DefaultPalette()
	}
	return &App{
		opts:    opts,
		maps:    render.NewCachedMapRenderer(render.NewMapRenderer(opts.MapSize, opts.Palette, opts.MaxTracks), opts.MapCacheSize, metrics),
		sink:    sink,
		logger:  logger,
		metrics: metrics,
		filter:  domain.DefaultFilterState(opts.DefaultYears.Start, opts.DefaultYears.End),
	}
}

// Load fetches the dataset and performs the initial render. On failure the
// error is kept for the page banner and readiness, and no data is retained.
func (a *App) Load(ctx context.Context, f Fetcher, src Sources) error {
	start := time.Now()
	ds, err := LoadDataset(ctx, f, src)
	if err != nil {
		a.fail(err)
		a.metrics.DatasetLoaded.Set(0)
		a.logger.Error("dataset load failed", "error", err)
		return err
	}

	event := a.install(ds)

	a.metrics.DatasetLoaded.Set(1)
	a.metrics.HurricanesLoaded.Set(float64(len(ds.Hurricanes)))
	a.logger.Info("dataset loaded",
		"hurricanes", len(ds.Hurricanes),
		"world_polygons", len(ds.World.Polygons),
		"duration", time.Since(start),
	)
	a.publish(ctx, event)
	return nil
}

func (a *App) fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loadErr = err
}

// install makes ds current and performs the initial render.
func (a *App) install(ds *domain.Dataset) domain.FilterEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dataset = ds
	a.loadErr = nil
	a.filter = domain.DefaultFilterState(a.opts.DefaultYears.Start, a.opts.DefaultYears.End)
	a.renderAll()
	return a.event(domain.ControlInitialLoad)
}

// CheckReadiness reports whether the dataset has loaded.
func (a *App) CheckReadiness(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loadErr != nil {
		return fmt.Errorf("dataset load failed: %w", a.loadErr)
	}
	if a.dataset == nil {
		return ErrNotLoaded
	}
	return nil
}

// State returns the current snapshot.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

// Summary returns the summary document as loaded.
func (a *App) Summary() (json.RawMessage, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dataset == nil {
		return nil, ErrNotLoaded
	}
	return a.dataset.Summary, nil
}

// Palette returns the category colours in use.
func (a *App) Palette() render.Palette {
	return a.opts.Palette
}

// Brush selects the years whose bar centres in the last rendered timeline lie
// within [x0, x1]. An empty selection or one covering no bar changes nothing.
func (a *App) Brush(ctx context.Context, x0, x1 float64) (State, error) {
	if a.opts.TimelineMode != render.TimelineBrush {
		return State{}, ErrModeDisabled
	}
	return a.control(ctx, domain.ControlBrush, func(f *domain.FilterState) bool {
		if x0 == x1 {
			return false
		}
		years := a.views.Timeline.BarYears(x0, x1)
		if len(years) == 0 {
			return false
		}
		f.Years = domain.YearRange{Start: slices.Min(years), End: slices.Max(years)}
		return true
	})
}

// SetYearRange sets both bounds. start > end is accepted and matches nothing.
func (a *App) SetYearRange(ctx context.Context, start, end int) (State, error) {
	return a.control(ctx, domain.ControlYears, func(f *domain.FilterState) bool {
		f.Years = domain.YearRange{Start: start, End: end}
		return true
	})
}

// SetYearStart moves the lower bound only.
func (a *App) SetYearStart(ctx context.Context, start int) (State, error) {
	return a.control(ctx, domain.ControlYears, func(f *domain.FilterState) bool {
		f.Years.Start = start
		return true
	})
}

// SetYearEnd moves the upper bound only.
func (a *App) SetYearEnd(ctx context.Context, end int) (State, error) {
	return a.control(ctx, domain.ControlYears, func(f *domain.FilterState) bool {
		f.Years.End = end
		return true
	})
}

// ToggleCategory flips membership of c.
func (a *App) ToggleCategory(ctx context.Context, c domain.Category) (State, error) {
	if !c.Valid() {
		return State{}, fmt.Errorf("%w: %d", domain.ErrUnknownCategory, int(c))
	}
	return a.control(ctx, domain.ControlToggle, func(f *domain.FilterState) bool {
		f.Categories.Toggle(c)
		return true
	})
}

// SetCategory sets membership of c, as a checkbox does.
func (a *App) SetCategory(ctx context.Context, c domain.Category, on bool) (State, error) {
	if !c.Valid() {
		return State{}, fmt.Errorf("%w: %d", domain.ErrUnknownCategory, int(c))
	}
	return a.control(ctx, domain.ControlCheckbox, func(f *domain.FilterState) bool {
		f.Categories.Set(c, on)
		return true
	})
}

// SetCategories replaces the whole category set, as a submitted checkbox list does.
func (a *App) SetCategories(ctx context.Context, set domain.CategorySet) (State, error) {
	return a.control(ctx, domain.ControlCheckbox, func(f *domain.FilterState) bool {
		f.Categories = set
		return true
	})
}

// SetMetric switches what the timeline counts.
func (a *App) SetMetric(ctx context.Context, m domain.Metric) (State, error) {
	if _, err := domain.ParseMetric(string(m)); err != nil {
		return State{}, err
	}
	return a.control(ctx, domain.ControlMetric, func(f *domain.FilterState) bool {
		f.Metric = m
		return true
	})
}

// Reset restores the default year range, every category and the total metric.
func (a *App) Reset(ctx context.Context) (State, error) {
	return a.control(ctx, domain.ControlReset, func(f *domain.FilterState) bool {
		f.Reset(a.opts.DefaultYears.Start, a.opts.DefaultYears.End)
		return true
	})
}

// control applies mutate under the lock. When mutate reports a change all
// charts are re-rendered and an event is published.
func (a *App) control(ctx context.Context, name domain.Control, mutate func(*domain.FilterState) bool) (State, error) {
	state, event, changed, err := a.apply(name, mutate)
	if err != nil {
		return State{}, err
	}
	if !changed {
		a.logger.Debug("control ignored", "control", name)
		return state, nil
	}

	a.metrics.Controls.WithLabelValues(string(name)).Inc()
	a.logger.Debug("filter changed",
		"control", name,
		"year_start", state.Years.Start,
		"year_end", state.Years.End,
		"categories", state.Categories,
		"metric", state.Metric,
		"visible", state.Visible,
	)
	a.publish(ctx, event)
	return state, nil
}

func (a *App) apply(name domain.Control, mutate func(*domain.FilterState) bool) (State, domain.FilterEvent, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dataset == nil {
		return State{}, domain.FilterEvent{}, false, ErrNotLoaded
	}
	if !mutate(&a.filter) {
		return a.snapshot(), domain.FilterEvent{}, false, nil
	}
	a.renderAll()
	return a.snapshot(), a.event(name), true, nil
}

// renderAll recomputes every view from the full dataset in the fixed order
// map, timeline, category. Callers hold a.mu.
func (a *App) renderAll() {
	a.views.Map = timed(a, "map", a.renderMap)
	a.views.Timeline = timed(a, "timeline", a.renderTimeline)
	a.views.Category = timed(a, "category", a.renderCategory)
	a.metrics.VisibleStorms.Set(float64(a.views.Map.Matched))
}

func timed[T any](a *App, chart string, fn func() T) T {
	start := time.Now()
	v := fn()
	a.metrics.RenderDuration.WithLabelValues(chart).Observe(time.Since(start).Seconds())
	return v
}

func (a *App) renderMap() render.MapView {
	matched := a.filter.Apply(a.dataset.Hurricanes)
	return a.maps.RenderMap(a.filter.Key(), a.dataset.World, matched)
}

func (a *App) renderTimeline() render.TimelineView {
	hs := a.dataset.Hurricanes
	var counts []domain.YearCount
	if a.opts.TimelineMode == render.TimelineBrush {
		base := domain.FilterByCategories(hs, a.filter.Categories)
		counts = domain.CountByYear(domain.FilterByMetric(base, a.filter.Metric))
	} else {
		counts = []domain.YearCount{}
		if lo, hi, ok := domain.YearBounds(hs); ok {
			if span, ok := a.filter.Years.Intersect(domain.YearRange{Start: lo, End: hi}); ok {
				base := a.filter.Apply(hs)
				counts = domain.CountByYearDense(domain.FilterByMetric(base, a.filter.Metric), span)
			}
		}
	}
	return render.LayoutTimeline(a.opts.TimelineSize, render.TimelineInput{
		Counts:   counts,
		Selected: a.filter.Years,
		Mode:     a.opts.TimelineMode,
		Metric:   a.filter.Metric,
	})
}

func (a *App) renderCategory() render.CategoryView {
	base := domain.FilterByYears(a.dataset.Hurricanes, a.filter.Years)
	return render.LayoutCategories(a.opts.CategorySize, render.CategoryInput{
		Counts:   domain.CountByCategory(base),
		Selected: a.filter.Categories,
		Mode:     a.opts.CategoryMode,
		Palette:  a.opts.Palette,
	})
}

// snapshot copies the current state. Callers hold a.mu.
func (a *App) snapshot() State {
	s := State{
		TimelineMode: a.opts.TimelineMode,
		CategoryMode: a.opts.CategoryMode,
		Years:        a.filter.Years,
		Categories:   a.filter.Categories.Labels(),
		Metric:       a.filter.Metric,
		selected:     a.filter.Categories,
	}
	if a.loadErr != nil {
		s.Error = a.loadErr.Error()
	}
	if a.dataset == nil {
		return s
	}
	s.Loaded = true
	s.Total = len(a.dataset.Hurricanes)
	s.Visible = a.views.Map.Matched
	s.LoadedAt = a.dataset.LoadedAt
	s.Views = a.views
	if lo, hi, ok := domain.YearBounds(a.dataset.Hurricanes); ok {
		s.Bounds = domain.YearRange{Start: lo, End: hi}
	}
	return s
}

func (a *App) event(control domain.Control) domain.FilterEvent {
	return domain.NewFilterEvent(control, a.filter, a.views.Map.Matched)
}

func (a *App) publish(ctx context.Context, event domain.FilterEvent) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Publish(ctx, event); err != nil {
		a.metrics.EventPublishErrors.Inc()
		a.logger.Warn("publish filter event failed", "error", err, "control", event.Control)
		return
	}
	a.metrics.EventsPublished.Inc()
}
