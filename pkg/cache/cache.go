// Package cache provides pluggable caching for the rendering pipeline.
//
// Two things are cached: decoded dataset records (keyed by dataset id and
// source content hash) and rendered chart artifacts (keyed by view-model hash
// and render options). Backends:
//
//   - FileCache: file-based cache for CLI usage (XDG cache dir)
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
//
// Keys are generated by a Keyer so that CLI and server produce identical
// keys for identical inputs.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry category.
const (
	// TTLRecords is how long decoded dataset records are cached.
	TTLRecords = 1 * time.Hour

	// TTLArtifact is how long rendered chart artifacts are cached.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DataKeyOpts parameterizes record cache keys.
type DataKeyOpts struct {
	SourceHash string // content hash of the raw dataset bytes
}

// ChartKeyOpts parameterizes artifact cache keys.
type ChartKeyOpts struct {
	Format string
	Style  string
	Width  float64
	Legend bool
	Title  string
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// DataKey generates a key for decoded dataset records.
	DataKey(datasetID string, opts DataKeyOpts) string

	// ChartKey generates a key for a rendered chart artifact.
	ChartKey(modelHash string, opts ChartKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DataKey generates a key for decoded dataset records.
func (k *DefaultKeyer) DataKey(datasetID string, opts DataKeyOpts) string {
	return hashKey("data", datasetID, opts)
}

// ChartKey generates a key for a rendered chart artifact.
func (k *DefaultKeyer) ChartKey(modelHash string, opts ChartKeyOpts) string {
	return hashKey("chart", modelHash, opts)
}
