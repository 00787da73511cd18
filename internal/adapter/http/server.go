package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/hurricane-dashboard/internal/observability"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

const pageTitle = "Atlantic Hurricanes 1950-2015"

// Server exposes the dashboard page, its JSON and form controls, chart
// exports, and the health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dashboard  Dashboard
	page       *render.Page
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with every dashboard route registered.
func NewServer(addr string, d Dashboard, metrics *observability.Metrics, logger *slog.Logger) (*Server, error) {
	page, err := render.NewPage()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dashboard: d,
		page:      page,
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /charts/{file}", s.handleExport)

	mux.HandleFunc("POST /api/brush", s.handleBrushJSON)
	mux.HandleFunc("POST /api/years", s.handleYearsJSON)
	mux.HandleFunc("POST /api/categories/{cat}/toggle", s.handleToggleJSON)
	mux.HandleFunc("PUT /api/categories/{cat}", s.handleCategoryJSON)
	mux.HandleFunc("POST /api/metric", s.handleMetricJSON)
	mux.HandleFunc("POST /api/reset", s.handleResetJSON)

	mux.HandleFunc("POST /brush", s.handleBrushForm)
	mux.HandleFunc("POST /years", s.handleYearsForm)
	mux.HandleFunc("POST /categories/{cat}/toggle", s.handleToggleForm)
	mux.HandleFunc("POST /categories", s.handleCategoriesForm)
	mux.HandleFunc("POST /metric", s.handleMetricForm)
	mux.HandleFunc("POST /reset", s.handleResetForm)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(d))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s, nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
