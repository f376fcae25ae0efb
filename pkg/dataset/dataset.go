package dataset

import (
	"bytes"
	"context"

	"github.com/coordviz/parcoords/pkg/cache"
	"github.com/coordviz/parcoords/pkg/errors"
)

// Dataset is an immutable, decoded dataset. Records never change after
// load; each render pass recomputes everything downstream from them.
type Dataset struct {
	// ID is the dataset identifier from the registry.
	ID string

	// Records are the decoded rows in source order.
	Records []Record

	// SourceHash is the SHA-256 hash of the raw source bytes,
	// used as a cache fingerprint.
	SourceHash string
}

// Load fetches raw bytes from src and decodes them into a Dataset.
// Fetch and parse failures are surfaced as structured errors; neither
// panics nor partial state escapes this boundary.
func Load(ctx context.Context, id string, src Source) (*Dataset, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch dataset %q from %s", id, src.Name())
	}

	records, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	return &Dataset{
		ID:         id,
		Records:    records,
		SourceHash: cache.Hash(raw),
	}, nil
}
