// Package config loads the parcoords TOML configuration file.
//
// The file declares the server address, chart appearance, the color rule,
// the resize/watch debounce interval, and the dataset registry. Every field
// has a default; an absent file yields a usable default configuration with
// an empty registry.
package config

import (
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/coordviz/parcoords/pkg/chart"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/schema"
)

// Config is the top-level configuration.
type Config struct {
	Server   Server                 `toml:"server"`
	Chart    Chart                  `toml:"chart"`
	Debounce Debounce               `toml:"debounce"`
	Datasets map[string]DatasetSpec `toml:"datasets"`
}

// Server configures the HTTP server and its optional shared cache.
type Server struct {
	Addr string `toml:"addr"`

	// RedisURL enables a shared Redis render cache when set
	// (e.g., "redis://localhost:6379/0").
	RedisURL string `toml:"redis_url"`
}

// Chart configures rendering defaults.
type Chart struct {
	Style   string          `toml:"style"`
	Width   float64         `toml:"width"`
	Margins chart.Margins   `toml:"margins"`
	Colors  chart.ColorRule `toml:"colors"`
}

// Debounce configures the quiet period for resize and watch redraws.
type Debounce struct {
	QuietMS int `toml:"quiet_ms"`
}

// Quiet returns the debounce interval as a duration.
func (d Debounce) Quiet() time.Duration {
	return time.Duration(d.QuietMS) * time.Millisecond
}

// DatasetSpec declares one dataset: exactly one source (file, URL, or
// MongoDB collection) plus an optional static schema.
type DatasetSpec struct {
	File   string      `toml:"file"`
	URL    string      `toml:"url"`
	Mongo  MongoSpec   `toml:"mongo"`
	Schema *SchemaSpec `toml:"schema"`
}

// MongoSpec points at a MongoDB collection of flat documents.
type MongoSpec struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// SchemaSpec is a static per-dataset schema declaration. When present,
// type inference is skipped and these types are used directly.
type SchemaSpec struct {
	Dimensions []string               `toml:"dimensions"`
	Types      map[string]schema.Type `toml:"types"`
}

// Source builds the dataset source for this spec.
func (s DatasetSpec) Source() (dataset.Source, error) {
	declared := 0
	if s.File != "" {
		declared++
	}
	if s.URL != "" {
		declared++
	}
	if s.Mongo.Collection != "" {
		declared++
	}
	if declared != 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "dataset must declare exactly one of file, url, or mongo")
	}

	switch {
	case s.File != "":
		return dataset.FileSource{Path: s.File}, nil
	case s.URL != "":
		return dataset.HTTPSource{URL: s.URL}, nil
	default:
		return dataset.MongoSource{
			URI:        s.Mongo.URI,
			Database:   s.Mongo.Database,
			Collection: s.Mongo.Collection,
		}, nil
	}
}

// StaticSchema resolves the declared schema, or ok=false when the dataset
// uses type inference.
func (s DatasetSpec) StaticSchema() (schema.Schema, bool, error) {
	if s.Schema == nil {
		return schema.Schema{}, false, nil
	}
	sch, err := schema.FromStatic(s.Schema.Dimensions, s.Schema.Types)
	if err != nil {
		return schema.Schema{}, false, err
	}
	return sch, true, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:   Server{Addr: ":8080"},
		Chart:    Chart{Style: "simple", Width: 960, Margins: chart.DefaultMargins(), Colors: chart.DefaultColorRule()},
		Debounce: Debounce{QuietMS: 250},
		Datasets: map[string]DatasetSpec{},
	}
}

// Load reads the configuration file at path, applying defaults for any
// absent field. A missing file is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	for id := range cfg.Datasets {
		if err := errors.ValidateDatasetID(id); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// DatasetIDs returns the registered dataset identifiers, sorted for stable
// listings (TOML table order is not preserved by decoding).
func (c Config) DatasetIDs() []string {
	ids := make([]string, 0, len(c.Datasets))
	for id := range c.Datasets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
