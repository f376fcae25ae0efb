// Package styles defines the visual appearance of parallel-coordinates
// charts. A Style controls how axes, ticks, polylines, and the legend are
// drawn; the chart package drives it with positioned geometry.
package styles

import "bytes"

// Style defines the visual appearance for chart rendering.
type Style interface {
	// Name identifies the style in options and cache keys.
	Name() string
	// RenderBackground writes the SVG drawn behind all content.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderAxis writes the SVG for one vertical axis with its ticks.
	RenderAxis(buf *bytes.Buffer, a Axis)
	// RenderPolyline writes the SVG for one record's connected line.
	RenderPolyline(buf *bytes.Buffer, p Polyline)
	// RenderLegend writes the SVG for the fixed legend box.
	RenderLegend(buf *bytes.Buffer, l Legend)
}

// Axis contains all data needed to render a single vertical axis.
type Axis struct {
	Name   string  // Dimension name, drawn above the axis
	X      float64 // Horizontal position
	Height float64 // Axis length
	Ticks  []TickMark
}

// TickMark is one labeled tick on an axis.
type TickMark struct {
	Label string
	Y     float64
}

// Point is one polyline vertex.
type Point struct {
	X, Y float64
}

// Polyline contains the geometry and stroke color of one record's line.
type Polyline struct {
	Points []Point
	Color  string
}

// LegendEntry is one labeled swatch in the legend.
type LegendEntry struct {
	Label string
	Color string
}

// Legend contains the fixed legend box content and position.
type Legend struct {
	X, Y    float64
	Entries []LegendEntry
}
