package chart

import (
	"github.com/coordviz/parcoords/pkg/chart/styles"
	"github.com/coordviz/parcoords/pkg/dataset"
)

// Default color rule palette.
const (
	ColorBlue    = "#1f77b4"
	ColorOrange  = "#ff7f0e"
	ColorNeutral = "#999999"
)

// ColorRule maps a record to a stroke color, keyed off one designated
// attribute: one value gets ColorA, another gets ColorB, everything else
// (including missing) gets the neutral color.
type ColorRule struct {
	Field  string `json:"field" toml:"field"`
	ValueA string `json:"value_a" toml:"value_a"`
	ColorA string `json:"color_a" toml:"color_a"`
	ValueB string `json:"value_b" toml:"value_b"`
	ColorB string `json:"color_b" toml:"color_b"`
	// Neutral is the fallback color for unmatched or missing values.
	Neutral string `json:"neutral" toml:"neutral"`
}

// DefaultColorRule colors records by gender: M blue, F orange, others gray.
func DefaultColorRule() ColorRule {
	return ColorRule{
		Field:   "gender",
		ValueA:  "M",
		ColorA:  ColorBlue,
		ValueB:  "F",
		ColorB:  ColorOrange,
		Neutral: ColorNeutral,
	}
}

// Color returns the stroke color for a record.
func (r ColorRule) Color(rec dataset.Record) string {
	v := rec.Get(r.Field)
	if v.IsMissing() {
		return r.Neutral
	}
	switch v.String() {
	case r.ValueA:
		return r.ColorA
	case r.ValueB:
		return r.ColorB
	default:
		return r.Neutral
	}
}

// LegendEntries returns the two known category swatches for the static
// legend. The legend is intentionally not derived from the data: datasets
// lacking the rule's attribute still show the same box.
func (r ColorRule) LegendEntries() []styles.LegendEntry {
	return []styles.LegendEntry{
		{Label: r.ValueA, Color: r.ColorA},
		{Label: r.ValueB, Color: r.ColorB},
	}
}
