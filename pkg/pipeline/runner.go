package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coordviz/parcoords/pkg/cache"
	"github.com/coordviz/parcoords/pkg/chart"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/schema"
)

// Runner encapsulates pipeline execution with caching.
// CLI, server, and browser all use this to avoid duplicating cache logic.
//
// The Runner is stateless except for the registry, cache, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Registry map[string]Entry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner with the given registry, cache, and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(registry map[string]Entry, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: registry,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete load → infer → scale → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	ds, dataHit, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RecordCount = len(ds.Records)
	result.CacheInfo.DataHit = dataHit

	opts.Logger.Info("loaded dataset",
		"dataset", ds.ID,
		"records", len(ds.Records),
		"cached", dataHit,
		"duration", result.Stats.LoadTime)

	// Stages 2+3: Infer schema and build the view model
	buildStart := time.Now()
	model := r.BuildModel(ds, opts)
	result.Model = model
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.DimensionCount = len(model.Schema.Dimensions)

	opts.Logger.Info("built view model",
		"dimensions", len(model.Schema.Dimensions),
		"width", model.Layout.Width,
		"height", model.Layout.Height,
		"duration", result.Stats.BuildTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.Render(ctx, model, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered chart",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load fetches and decodes the dataset for opts, caching the raw source
// bytes. The second return value reports whether the bytes came from cache.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	entry, ok := r.Registry[opts.DatasetID]
	if !ok {
		return nil, false, errors.New(errors.ErrCodeDatasetNotFound, "unknown dataset %q", opts.DatasetID)
	}

	cacheKey := r.Keyer.DataKey(opts.DatasetID, cache.DataKeyOpts{
		SourceHash: cache.Hash([]byte(entry.Source.Name())),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			records, err := dataset.Decode(bytes.NewReader(raw))
			if err == nil {
				return &dataset.Dataset{
					ID:         opts.DatasetID,
					Records:    records,
					SourceHash: cache.Hash(raw),
				}, true, nil // Cache hit
			}
			// Corrupt entry - fall through to refetch
		}
	}

	raw, err := entry.Source.Fetch(ctx)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeNetwork, err, "fetch dataset %q", opts.DatasetID)
	}

	records, err := dataset.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, raw, cache.TTLRecords)

	return &dataset.Dataset{
		ID:         opts.DatasetID,
		Records:    records,
		SourceHash: cache.Hash(raw),
	}, false, nil // Cache miss
}

// BuildModel derives the schema (static when declared, inferred otherwise)
// and assembles the immutable view model.
func (r *Runner) BuildModel(ds *dataset.Dataset, opts Options) *chart.Model {
	var sch schema.Schema
	if entry, ok := r.Registry[ds.ID]; ok && entry.Schema != nil {
		sch = *entry.Schema
	} else {
		sch = schema.Infer(ds.Records)
	}
	return chart.BuildModel(ds, sch, opts.Rule, opts.Width, opts.Margins)
}

// Render generates all requested artifact formats with caching and reports
// whether every artifact came from cache.
func (r *Runner) Render(ctx context.Context, model *chart.Model, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	modelHash := model.Fingerprint()
	artifacts := make(map[string][]byte, len(opts.Formats))

	allCached := true
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ChartKey(modelHash, r.chartKeyOpts(format, opts))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
			continue
		}
		allCached = false

		data, err := r.renderFormat(model, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return artifacts, allCached, nil
}

func (r *Runner) renderFormat(model *chart.Model, format string, opts Options) ([]byte, error) {
	svg := chart.RenderSVG(model, opts.svgOptions()...)
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return chart.ToPNG(svg, 2.0)
	case FormatPDF:
		return chart.ToPDF(svg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

func (r *Runner) chartKeyOpts(format string, opts Options) cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Format: format,
		Style:  opts.Style,
		Width:  opts.Width,
		Legend: !opts.NoLegend,
		Title:  opts.Title,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
