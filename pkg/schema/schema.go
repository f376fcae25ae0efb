// Package schema derives the ordered dimension list and per-column display
// types of a dataset.
//
// A dimension is one dataset column, displayed as one vertical axis. Types
// are either inferred from the data (generic mode) or declared statically in
// configuration; both modes produce identical downstream behavior for
// matching data.
package schema

import (
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/errors"
)

// Type classifies a column for scale construction.
type Type string

const (
	// TypeNumeric marks a column whose non-missing values all convert
	// losslessly to finite numbers.
	TypeNumeric Type = "numeric"

	// TypeNominal marks a categorical column.
	TypeNominal Type = "nominal"
)

// Dimension is one named column with its display type.
type Dimension struct {
	Name string `json:"name" bson:"name"`
	Type Type   `json:"type" bson:"type"`
}

// Schema is the ordered dimension list of a dataset. Order is stable within
// a render pass and drives left-to-right axis placement.
type Schema struct {
	Dimensions []Dimension `json:"dimensions" bson:"dimensions"`
}

// Names returns the dimension names in axis order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Dimensions))
	for i, d := range s.Dimensions {
		names[i] = d.Name
	}
	return names
}

// Type returns the declared type of a dimension.
func (s Schema) Type(name string) (Type, bool) {
	for _, d := range s.Dimensions {
		if d.Name == name {
			return d.Type, true
		}
	}
	return "", false
}

// Dimensions extracts the ordered dimension names from a dataset: the key
// set of the first record, in insertion order, deduplicated. An empty
// dataset has no dimensions.
func Dimensions(records []dataset.Record) []string {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var names []string
	for _, k := range records[0].Keys() {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		names = append(names, k)
	}
	return names
}

// DetectType classifies one column. The column is numeric iff it has at
// least one non-missing value and every non-missing value converts
// losslessly to a finite number; otherwise it is nominal. An all-missing
// column is nominal, so the zero-sample case never reaches scale math.
func DetectType(records []dataset.Record, name string) Type {
	sampled := false
	for _, rec := range records {
		v := rec.Get(name)
		if v.IsMissing() {
			continue
		}
		if _, ok := v.Float(); !ok {
			return TypeNominal
		}
		sampled = true
	}
	if !sampled {
		return TypeNominal
	}
	return TypeNumeric
}

// Infer derives the full schema of a dataset: dimensions from the first
// record's key order, types from scanning every record's values.
func Infer(records []dataset.Record) Schema {
	names := Dimensions(records)
	dims := make([]Dimension, len(names))
	for i, name := range names {
		dims[i] = Dimension{Name: name, Type: DetectType(records, name)}
	}
	return Schema{Dimensions: dims}
}

// FromStatic builds a schema from a predeclared dimension list and type
// table, for datasets whose layout is fixed by configuration. Unknown type
// strings and duplicate dimension names are rejected.
func FromStatic(names []string, types map[string]Type) (Schema, error) {
	seen := make(map[string]struct{})
	dims := make([]Dimension, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return Schema{}, errors.New(errors.ErrCodeInvalidConfig, "duplicate dimension %q", name)
		}
		seen[name] = struct{}{}

		typ, ok := types[name]
		if !ok {
			return Schema{}, errors.New(errors.ErrCodeInvalidConfig, "no type declared for dimension %q", name)
		}
		if typ != TypeNumeric && typ != TypeNominal {
			return Schema{}, errors.New(errors.ErrCodeInvalidConfig, "invalid type %q for dimension %q (must be numeric or nominal)", typ, name)
		}
		dims = append(dims, Dimension{Name: name, Type: typ})
	}
	return Schema{Dimensions: dims}, nil
}
