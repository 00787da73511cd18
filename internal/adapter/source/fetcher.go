package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/hurricane-dashboard/internal/observability"
)

// maxDocumentBytes bounds a single startup document.
const maxDocumentBytes = 64 << 20

// Fetcher retrieves startup documents from http(s) URLs or local files.
type Fetcher struct {
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewFetcher creates a fetcher whose HTTP requests time out after timeout.
// metrics may be nil for one-shot tools.
func NewFetcher(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch returns the raw bytes at location. document names the payload in
// metrics and errors.
func (f *Fetcher) Fetch(ctx context.Context, document, location string) ([]byte, error) {
	start := time.Now()
	data, err := f.fetch(ctx, location)
	if err != nil {
		f.record(document, "error", start)
		return nil, fmt.Errorf("fetch %s: %w", document, err)
	}
	f.record(document, "success", start)
	f.logger.Debug("document fetched", "document", document, "location", location, "bytes", len(data))
	return data, nil
}

func (f *Fetcher) record(document, outcome string, start time.Time) {
	if f.metrics == nil {
		return
	}
	f.metrics.SourceFetchDuration.WithLabelValues(document).Observe(time.Since(start).Seconds())
	f.metrics.SourceFetches.WithLabelValues(document, outcome).Inc()
}

func (f *Fetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	if isRemote(location) {
		return f.get(ctx, location)
	}
	path := strings.TrimPrefix(location, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentBytes)
	}
	return data, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
