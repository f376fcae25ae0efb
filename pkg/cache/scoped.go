package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when one Redis instance backs multiple deployments
// and each needs a separate cache namespace.
//
// Example usage:
//
//	// Deployment-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DataKey generates a prefixed key for decoded dataset records.
func (k *ScopedKeyer) DataKey(datasetID string, opts DataKeyOpts) string {
	return k.prefix + k.inner.DataKey(datasetID, opts)
}

// ChartKey generates a prefixed key for a rendered chart artifact.
func (k *ScopedKeyer) ChartKey(modelHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(modelHash, opts)
}
