package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
	"github.com/couchcryptid/hurricane-dashboard/internal/render"
)

// Fetcher returns the raw bytes of a named startup document.
type Fetcher interface {
	Fetch(ctx context.Context, document, location string) ([]byte, error)
}

// Sources locates the three startup documents.
type Sources struct {
	Hurricanes string
	Summary    string
	World      string
}

// LoadDataset fetches the three documents concurrently and decodes them. Any
// single failure fails the whole load; no partial dataset is returned.
func LoadDataset(ctx context.Context, f Fetcher, src Sources) (*domain.Dataset, error) {
	var hurricaneData, summaryData, worldData []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hurricaneData, err = f.Fetch(gctx, "hurricanes", src.Hurricanes)
		return err
	})
	g.Go(func() error {
		var err error
		summaryData, err = f.Fetch(gctx, "summary", src.Summary)
		return err
	})
	g.Go(func() error {
		var err error
		worldData, err = f.Fetch(gctx, "world", src.World)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc, err := domain.ParseHurricaneDocument(hurricaneData)
	if err != nil {
		return nil, err
	}
	if !json.Valid(summaryData) {
		return nil, errors.New("parse summary document: invalid JSON")
	}
	world, err := render.ParseWorld(worldData)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	return domain.NewDataset(doc.Hurricanes, json.RawMessage(summaryData), world), nil
}
