package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

// DefaultWorldGeoJSONURL is the public world outline used when WORLD_GEOJSON_URL is unset.
const DefaultWorldGeoJSONURL = "https://raw.githubusercontent.com/holtzy/D3-graph-gallery/master/DATA/world.geojson"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset locations: http(s) URLs or local file paths.
	HurricaneDataURL string
	SummaryURL       string
	WorldURL         string
	FetchTimeout     time.Duration

	TimelineMode     render.TimelineMode
	CategoryMode     render.CategoryMode
	DefaultYearStart int
	DefaultYearEnd   int
	MaxTracks        int
	MapCacheSize     int

	PaletteFile string
	Palette     map[domain.Category]string

	// Filter event publishing.
	EventsEnabled    bool
	KafkaBrokers     []string
	KafkaEventsTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "30s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	timelineMode := render.TimelineMode(sharedcfg.EnvOrDefault("TIMELINE_MODE", string(render.TimelineBrush)))
	if timelineMode != render.TimelineBrush && timelineMode != render.TimelineSlider {
		return nil, fmt.Errorf("invalid TIMELINE_MODE %q: want brush or slider", timelineMode)
	}
	categoryMode := render.CategoryMode(sharedcfg.EnvOrDefault("CATEGORY_MODE", string(render.CategoryToggle)))
	if categoryMode != render.CategoryToggle && categoryMode != render.CategoryCheckbox {
		return nil, fmt.Errorf("invalid CATEGORY_MODE %q: want toggle or checkbox", categoryMode)
	}

	yearStart, err := parseInt("DEFAULT_YEAR_START", 1950)
	if err != nil {
		return nil, err
	}
	yearEnd, err := parseInt("DEFAULT_YEAR_END", 2015)
	if err != nil {
		return nil, err
	}
	maxTracks, err := parseInt("MAX_TRACKS", 200)
	if err != nil {
		return nil, err
	}
	mapCacheSize, err := parseInt("MAP_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	eventsEnabled := os.Getenv("EVENTS_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		HurricaneDataURL: sharedcfg.EnvOrDefault("HURRICANE_DATA_URL", "data/hurricane_data.json"),
		SummaryURL:       sharedcfg.EnvOrDefault("HURRICANE_SUMMARY_URL", "data/hurricane_summary.json"),
		WorldURL:         sharedcfg.EnvOrDefault("WORLD_GEOJSON_URL", DefaultWorldGeoJSONURL),
		FetchTimeout:     fetchTimeout,

		TimelineMode:     timelineMode,
		CategoryMode:     categoryMode,
		DefaultYearStart: yearStart,
		DefaultYearEnd:   yearEnd,
		MaxTracks:        maxTracks,
		MapCacheSize:     mapCacheSize,

		PaletteFile: os.Getenv("PALETTE_FILE"),

		EventsEnabled:    eventsEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaEventsTopic: sharedcfg.EnvOrDefault("KAFKA_EVENTS_TOPIC", "hurricane-filter-events"),
	}

	if cfg.MaxTracks < 0 {
		return nil, errors.New("MAX_TRACKS must not be negative")
	}
	if cfg.MapCacheSize < 0 {
		return nil, errors.New("MAP_CACHE_SIZE must not be negative")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("EVENTS_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.EventsEnabled && cfg.KafkaEventsTopic == "" {
		return nil, errors.New("KAFKA_EVENTS_TOPIC is required")
	}

	if cfg.PaletteFile != "" {
		palette, err := LoadPalette(cfg.PaletteFile)
		if err != nil {
			return nil, fmt.Errorf("PALETTE_FILE: %w", err)
		}
		cfg.Palette = palette
	}

	return cfg, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
