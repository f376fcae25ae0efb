package chart

import (
	"encoding/json"

	"github.com/coordviz/parcoords/pkg/cache"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/scale"
	"github.com/coordviz/parcoords/pkg/schema"
)

// Model is the immutable view model of one render pass: everything the
// renderer needs, produced by the pipeline and replaced wholesale on each
// load. The renderer never mutates it.
type Model struct {
	DatasetID  string
	SourceHash string
	Records    []dataset.Record
	Schema     schema.Schema
	Layout     Layout
	Scales     map[string]scale.Scale
	Rule       ColorRule
}

// BuildModel assembles the view model for a dataset: it computes the layout
// from the container width and record count, then builds one scale per
// dimension against the plot height.
func BuildModel(ds *dataset.Dataset, sch schema.Schema, rule ColorRule, containerWidth float64, m Margins) *Model {
	layout := NewLayout(containerWidth, len(sch.Dimensions), len(ds.Records), m)

	scales := make(map[string]scale.Scale, len(sch.Dimensions))
	for _, dim := range sch.Dimensions {
		scales[dim.Name] = scale.Build(ds.Records, dim.Name, dim.Type, layout.Height)
	}

	return &Model{
		DatasetID:  ds.ID,
		SourceHash: ds.SourceHash,
		Records:    ds.Records,
		Schema:     sch,
		Layout:     layout,
		Scales:     scales,
		Rule:       rule,
	}
}

// Fingerprint returns a content hash identifying the model for cache keys.
// Scales and records are fully determined by the source hash, schema, rule,
// and layout, so hashing those is sufficient.
func (m *Model) Fingerprint() string {
	data, _ := json.Marshal(struct {
		DatasetID  string        `json:"dataset_id"`
		SourceHash string        `json:"source_hash"`
		Schema     schema.Schema `json:"schema"`
		Rule       ColorRule     `json:"rule"`
		Width      float64       `json:"width"`
		Height     float64       `json:"height"`
	}{m.DatasetID, m.SourceHash, m.Schema, m.Rule, m.Layout.Width, m.Layout.Height})
	return cache.Hash(data)
}
