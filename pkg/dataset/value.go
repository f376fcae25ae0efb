// Package dataset loads parallel-coordinates datasets from JSON sources.
//
// A dataset is an array of flat objects whose fields are strings, numbers,
// or null. Fields decode into a tagged [Value] exactly once; downstream
// stages (schema inference, scales, rendering) rely on the tag instead of
// re-converting raw JSON values ad hoc.
//
// Decoding preserves the key insertion order of each object, because axis
// order derives from the key order of a dataset's first record.
package dataset

import (
	"math"
	"strconv"
)

// Kind discriminates the tagged Value union.
type Kind int

const (
	// KindMissing marks a null or absent field.
	KindMissing Kind = iota
	// KindNumber marks a JSON number.
	KindNumber
	// KindText marks a JSON string.
	KindText
)

// Value is a single dataset cell: a number, a piece of text, or missing.
// The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number constructs a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text constructs a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Missing constructs a missing value.
func Missing() Value { return Value{} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is null or absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the value as a finite float64. For text values it attempts
// a lossless parse. The second return value is false for missing values,
// unparseable text, and non-finite results.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return 0, false
		}
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String returns the display form of the value. Numbers use the shortest
// representation that round-trips; missing values render as empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}
