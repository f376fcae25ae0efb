// Package pipeline provides the core visualization pipeline for parcoords.
//
// This package implements the complete load → infer → scale → render
// pipeline shared by the CLI, the HTTP server, and the terminal browser.
// Centralizing it keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Fetch and decode the dataset (file, HTTP, or MongoDB source)
//  2. Infer: Derive the ordered dimension list and per-column types
//  3. Build: Compute the layout and one scale per dimension (the view model)
//  4. Render: Generate output in various formats (SVG, PNG, PDF)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(registry, cache, nil, logger)
//	opts := pipeline.Options{
//	    DatasetID: "students",
//	    Width:     960,
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coordviz/parcoords/pkg/chart"
	"github.com/coordviz/parcoords/pkg/config"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/schema"
)

// Defaults shared by CLI, server, and browser entry points.
const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 960.0

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style name resolves.
func ValidateStyle(style string) error {
	if _, ok := chart.StyleByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, midnight)", style)
	}
	return nil
}

// Entry is one registered dataset: its source plus an optional static
// schema (nil means types are inferred from the data).
type Entry struct {
	Source dataset.Source
	Schema *schema.Schema
}

// RegistryFromConfig resolves the configured dataset registry into
// pipeline entries.
func RegistryFromConfig(cfg config.Config) (map[string]Entry, error) {
	reg := make(map[string]Entry, len(cfg.Datasets))
	for id, spec := range cfg.Datasets {
		src, err := spec.Source()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "dataset %q", id)
		}
		entry := Entry{Source: src}
		if sch, ok, err := spec.StaticSchema(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "dataset %q", id)
		} else if ok {
			entry.Schema = &sch
		}
		reg[id] = entry
	}
	return reg, nil
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// DatasetID selects the dataset from the runner's registry.
	DatasetID string `json:"dataset_id"`

	// Width is the container width the layout adapts to.
	Width float64 `json:"width,omitempty"`

	// Margins frame the plot area. Zero margins select the defaults.
	Margins chart.Margins `json:"margins,omitempty"`

	// Rule colors polylines. An empty Field selects the default rule.
	Rule chart.ColorRule `json:"rule,omitempty"`

	// Render options
	Style    string   `json:"style,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	NoLegend bool     `json:"no_legend,omitempty"`
	Title    string   `json:"title,omitempty"`

	// Refresh bypasses the data cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateDatasetID(o.DatasetID); err != nil {
		return err
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Margins == (chart.Margins{}) {
		o.Margins = chart.DefaultMargins()
	}
	if o.Rule.Field == "" {
		o.Rule = chart.DefaultColorRule()
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// svgOptions translates render options into chart SVG options.
func (o *Options) svgOptions() []chart.SVGOption {
	style, _ := chart.StyleByName(o.Style)
	opts := []chart.SVGOption{chart.WithStyle(style)}
	if o.NoLegend {
		opts = append(opts, chart.WithoutLegend())
	}
	if o.Title != "" {
		opts = append(opts, chart.WithTitle(o.Title))
	}
	return opts
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the immutable view model produced for this run.
	Model *chart.Model

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount    int
	DimensionCount int
	LoadTime       time.Duration
	BuildTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DataHit   bool // Whether the raw dataset bytes came from cache
	RenderHit bool // Whether all artifacts came from cache
}
