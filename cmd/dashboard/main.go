package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/hurricane-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hurricane-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/hurricane-dashboard/internal/adapter/source"
	"github.com/couchcryptid/hurricane-dashboard/internal/config"
	"github.com/couchcryptid/hurricane-dashboard/internal/dashboard"
	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/observability"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

func main() {
	// A local .env file, when present, seeds the environment for development.
	envFileErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	if envFileErr == nil {
		logger.Info("loaded environment from .env")
	}

	// Filter events are feature-flagged via EVENTS_ENABLED.
	var (
		sink   dashboard.EventSink
		writer *kafkaadapter.Writer
	)
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		metrics.EventSinkEnabled.Set(1)
		logger.Info("filter events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaEventsTopic)
	} else {
		logger.Info("filter events disabled")
	}

	opts := dashboard.DefaultOptions()
	opts.TimelineMode = cfg.TimelineMode
	opts.CategoryMode = cfg.CategoryMode
	opts.DefaultYears = domain.YearRange{Start: cfg.DefaultYearStart, End: cfg.DefaultYearEnd}
	opts.MaxTracks = cfg.MaxTracks
	opts.MapCacheSize = cfg.MapCacheSize
	opts.Palette = render.DefaultPalette().Merge(cfg.Palette)

	app := dashboard.New(opts, sink, logger, metrics)
	fetcher := source.NewFetcher(cfg.FetchTimeout, metrics, logger)

	srv, err := httpadapter.NewServer(cfg.HTTPAddr, app, metrics, logger)
	if err != nil {
		logger.Error("failed to create http server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server. The page shows a loading state until the dataset arrives.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the startup documents.
	go func() {
		src := dashboard.Sources{
			Hurricanes: cfg.HurricaneDataURL,
			Summary:    cfg.SummaryURL,
			World:      cfg.WorldURL,
		}
		// Failures are logged by Load and surfaced on the page and /readyz.
		_ = app.Load(ctx, fetcher, src)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
