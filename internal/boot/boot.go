// Package boot runs the startup sequence: core bundles, the dataset, the
// initial map build, enhancement bundles and the particle background
// config. Any failure aborts the whole sequence; nothing is retried.
package boot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/mapview"
)

var (
	// ErrAsset marks a script or stylesheet that could not be loaded.
	ErrAsset = errors.New("asset load failed")
	// ErrDataFetch marks a dataset or particles config that could not be
	// fetched or parsed.
	ErrDataFetch = errors.New("data fetch failed")
)

// The one message shown to users when startup fails.
const (
	ErrorTitle = "Error Loading Application"
	ErrorHint  = "Please refresh the page to try again."
)

// AssetChecker confirms a bundle can be served.
type AssetChecker interface {
	Check(ctx context.Context, path string) error
}

// FSAssets checks bundles against a filesystem, normally the assets directory.
type FSAssets struct {
	FS fs.FS
}

func (a FSAssets) Check(_ context.Context, path string) error {
	info, err := fs.Stat(a.FS, path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// Result is everything a successful startup produced.
type Result struct {
	Dataset   *atlas.Dataset
	Particles json.RawMessage
	// SVG is the map as first rendered, before any interaction.
	SVG      template.HTML
	Warnings []string
	LoadedAt time.Time
}

// Sequence describes one startup run.
type Sequence struct {
	Fetcher           Fetcher
	Assets            AssetChecker
	DataSource        string
	ParticlesSource   string
	CoreAssets        []string
	EnhancementAssets []string
	MapOptions        mapview.Options
	Logger            *zap.Logger

	// OnCoreReady runs once the core bundles are confirmed, before the
	// dataset is fetched. Sidebar wiring hooks in here.
	OnCoreReady func()
}

// Run executes the sequence in order. The returned error wraps ErrAsset or
// ErrDataFetch.
func (s *Sequence) Run(ctx context.Context) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := s.loadAssets(ctx, "core", s.CoreAssets); err != nil {
		return nil, err
	}
	if s.OnCoreReady != nil {
		s.OnCoreReady()
	}

	ds, err := s.loadDataset(ctx)
	if err != nil {
		return nil, err
	}
	warnings := ds.Warnings()
	for _, w := range warnings {
		logger.Warn("dataset warning", zap.String("detail", w))
	}

	svg, err := mapview.New(ds, s.MapOptions).SVG()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFetch, err)
	}

	if err := s.loadAssets(ctx, "enhancement", s.EnhancementAssets); err != nil {
		return nil, err
	}

	particles, err := s.loadParticles(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("startup complete",
		zap.Int("countries", len(ds.Countries)),
		zap.Int("tags", len(ds.Metadata.Tags)),
		zap.Int("warnings", len(warnings)))

	return &Result{
		Dataset:   ds,
		Particles: particles,
		SVG:       svg,
		Warnings:  warnings,
		LoadedAt:  time.Now(),
	}, nil
}

// loadAssets checks every bundle of a stage in parallel.
func (s *Sequence) loadAssets(ctx context.Context, stage string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if s.Assets == nil {
		return fmt.Errorf("%w: no asset source for %s bundles", ErrAsset, stage)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		g.Go(func() error {
			if err := s.Assets.Check(gctx, p); err != nil {
				return fmt.Errorf("%w: %s bundle %s: %w", ErrAsset, stage, p, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Sequence) loadDataset(ctx context.Context) (*atlas.Dataset, error) {
	data, err := s.Fetcher.Fetch(ctx, s.DataSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFetch, err)
	}
	ds, err := atlas.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataFetch, s.DataSource, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataFetch, s.DataSource, err)
	}
	return ds, nil
}

func (s *Sequence) loadParticles(ctx context.Context) (json.RawMessage, error) {
	if s.ParticlesSource == "" {
		return nil, nil
	}
	raw, err := fetchJSON(ctx, s.Fetcher, s.ParticlesSource)
	if err != nil {
		return nil, fmt.Errorf("%w: particles config: %w", ErrDataFetch, err)
	}
	return raw, nil
}
