package styles

import (
	"bytes"
	"fmt"
)

// Midnight is a dark variant: light strokes on a near-black background,
// slightly higher line opacity to keep thin polylines visible.
type Midnight struct{}

// Name identifies the style.
func (Midnight) Name() string { return "midnight" }

// RenderBackground fills the frame with the dark background color.
func (Midnight) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="#14161f"/>`+"\n", width, height)
}

// RenderAxis draws a vertical line, the dimension name above it, and ticks.
func (Midnight) RenderAxis(buf *bytes.Buffer, a Axis) {
	renderAxis(buf, a, "#8b90a5", "#d5d8e4")
}

// RenderPolyline draws one record's connected line.
func (Midnight) RenderPolyline(buf *bytes.Buffer, p Polyline) {
	renderPolyline(buf, p, "0.85")
}

// RenderLegend draws the fixed legend box.
func (Midnight) RenderLegend(buf *bytes.Buffer, l Legend) {
	renderLegend(buf, l, "#1e2130", "#3a3f55", "#d5d8e4")
}
