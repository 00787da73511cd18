package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/hurricane-dashboard/internal/dashboard"
	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

const maxBodyBytes = 1 << 16

var errBadRequest = errors.New("bad request")

// Dashboard is the application surface the handlers drive.
type Dashboard interface {
	CheckReadiness(ctx context.Context) error
	State() dashboard.State
	Summary() (json.RawMessage, error)
	Palette() render.Palette

	Brush(ctx context.Context, x0, x1 float64) (dashboard.State, error)
	SetYearRange(ctx context.Context, start, end int) (dashboard.State, error)
	SetYearStart(ctx context.Context, start int) (dashboard.State, error)
	SetYearEnd(ctx context.Context, end int) (dashboard.State, error)
	ToggleCategory(ctx context.Context, c domain.Category) (dashboard.State, error)
	SetCategory(ctx context.Context, c domain.Category, on bool) (dashboard.State, error)
	SetCategories(ctx context.Context, set domain.CategorySet) (dashboard.State, error)
	SetMetric(ctx context.Context, m domain.Metric) (dashboard.State, error)
	Reset(ctx context.Context) (dashboard.State, error)
}

type brushRequest struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
}

type yearsRequest struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

type categoryRequest struct {
	Selected bool `json:"selected"`
}

type metricRequest struct {
	Metric string `json:"metric"`
}

// --- page and reads ---

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	data := s.dashboard.State().PageData(pageTitle, s.dashboard.Palette())

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.dashboard.State())
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.dashboard.Summary()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(summary)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	chart, ext, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok {
		http.NotFound(w, r)
		return
	}
	format, err := render.ParseExportFormat(ext)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	state := s.dashboard.State()
	if !state.Loaded {
		s.writeError(w, dashboard.ErrNotLoaded)
		return
	}

	var buf bytes.Buffer
	switch chart {
	case "timeline":
		err = render.ExportTimeline(&buf, state.Timeline, format)
	case "category":
		err = render.ExportCategories(&buf, state.Category, format)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.metrics.ChartExportFailures.Inc()
		if errors.Is(err, render.ErrNothingToExport) {
			sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("chart export failed", "chart", chart, "format", format, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed"})
		return
	}

	s.metrics.ChartExports.WithLabelValues(chart, string(format)).Inc()
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// --- JSON controls ---

func (s *Server) handleBrushJSON(w http.ResponseWriter, r *http.Request) {
	var req brushRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondJSON(w, r, func(ctx context.Context) (dashboard.State, error) {
		return s.dashboard.Brush(ctx, req.X0, req.X1)
	})
}

func (s *Server) handleYearsJSON(w http.ResponseWriter, r *http.Request) {
	var req yearsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondJSON(w, r, func(ctx context.Context) (dashboard.State, error) {
		return s.setYears(ctx, req.Start, req.End)
	})
}

func (s *Server) handleToggleJSON(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, func(ctx context.Context) (dashboard.State, error) {
		c, err := domain.ParseCategory(r.PathValue("cat"))
		if err != nil {
			return dashboard.State{}, err
		}
		return s.dashboard.ToggleCategory(ctx, c)
	})
}

func (s *Server) handleCategoryJSON(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondJSON(w, r, func(ctx context.Context) (dashboard.State, error) {
		c, err := domain.ParseCategory(r.PathValue("cat"))
		if err != nil {
			return dashboard.State{}, err
		}
		return s.dashboard.SetCategory(ctx, c, req.Selected)
	})
}

func (s *Server) handleMetricJSON(w http.ResponseWriter, r *http.Request) {
	var req metricRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondJSON(w, r, func(ctx context.Context) (dashboard.State, error) {
		return s.dashboard.SetMetric(ctx, domain.Metric(req.Metric))
	})
}

func (s *Server) handleResetJSON(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, s.dashboard.Reset)
}

// --- form controls ---

func (s *Server) handleBrushForm(w http.ResponseWriter, r *http.Request) {
	s.respondForm(w, r, func(ctx context.Context) (dashboard.State, error) {
		x0, err := strconv.ParseFloat(r.PostFormValue("x0"), 64)
		if err != nil {
			return dashboard.State{}, fmt.Errorf("%w: x0: %w", errBadRequest, err)
		}
		x1, err := strconv.ParseFloat(r.PostFormValue("x1"), 64)
		if err != nil {
			return dashboard.State{}, fmt.Errorf("%w: x1: %w", errBadRequest, err)
		}
		return s.dashboard.Brush(ctx, x0, x1)
	})
}

func (s *Server) handleYearsForm(w http.ResponseWriter, r *http.Request) {
	s.respondForm(w, r, func(ctx context.Context) (dashboard.State, error) {
		start, err := optionalInt(r.PostFormValue("start"))
		if err != nil {
			return dashboard.State{}, fmt.Errorf("%w: start: %w", errBadRequest, err)
		}
		end, err := optionalInt(r.PostFormValue("end"))
		if err != nil {
			return dashboard.State{}, fmt.Errorf("%w: end: %w", errBadRequest, err)
		}
		return s.setYears(ctx, start, end)
	})
}

func (s *Server) handleToggleForm(w http.ResponseWriter, r *http.Request) {
	s.respondForm(w, r, func(ctx context.Context) (dashboard.State, error) {
		c, err := domain.ParseCategory(r.PathValue("cat"))
		if err != nil {
			return dashboard.State{}, err
		}
		return s.dashboard.ToggleCategory(ctx, c)
	})
}

func (s *Server) handleCategoriesForm(w http.ResponseWriter, r *http.Request) {
	s.respondForm(w, r, func(ctx context.Context) (dashboard.State, error) {
		var set domain.CategorySet
		for _, label := range r.PostForm["category"] {
			c, err := domain.ParseCategory(label)
			if err != nil {
				return dashboard.State{}, err
			}
			set.Set(c, true)
		}
		return s.dashboard.SetCategories(ctx, set)
	})
}

func (s *Server) handleMetricForm(w http.ResponseWriter, r *http.Request) {
	s.respondForm(w, r, func(ctx context.Context) (dashboard.State, error) {
		return s.dashboard.SetMetric(ctx, domain.Metric(r.PostFormValue("metric")))
	})
}

func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	s.respondForm(w, r, s.dashboard.Reset)
}

// --- helpers ---

func (s *Server) setYears(ctx context.Context, start, end *int) (dashboard.State, error) {
	switch {
	case start != nil && end != nil:
		return s.dashboard.SetYearRange(ctx, *start, *end)
	case start != nil:
		return s.dashboard.SetYearStart(ctx, *start)
	case end != nil:
		return s.dashboard.SetYearEnd(ctx, *end)
	default:
		return dashboard.State{}, fmt.Errorf("%w: start or end is required", errBadRequest)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, control func(context.Context) (dashboard.State, error)) {
	state, err := control(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, state)
}

func (s *Server) respondForm(w http.ResponseWriter, r *http.Request, control func(context.Context) (dashboard.State, error)) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if _, err := control(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dashboard.ErrModeDisabled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrUnknownMetric),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", errBadRequest, err)
	}
	return nil
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
