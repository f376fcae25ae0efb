package styles

import (
	"bytes"
	"fmt"
)

const (
	tickLen       = 5.0
	tickFontSize  = 10.0
	axisFontSize  = 12.0
	legendPad     = 8.0
	legendSwatch  = 12.0
	legendRowStep = 18.0
	legendWidth   = 110.0
	maxTickChars  = 16
)

// Simple is the default style: plain dark strokes on a light background.
type Simple struct{}

// Name identifies the style.
func (Simple) Name() string { return "simple" }

// RenderBackground draws nothing; the page background shows through.
func (Simple) RenderBackground(buf *bytes.Buffer, width, height float64) {}

// RenderAxis draws a vertical line, the dimension name above it, and ticks.
func (Simple) RenderAxis(buf *bytes.Buffer, a Axis) {
	renderAxis(buf, a, "#444", "#333")
}

// RenderPolyline draws one record's connected line.
func (Simple) RenderPolyline(buf *bytes.Buffer, p Polyline) {
	renderPolyline(buf, p, "0.7")
}

// RenderLegend draws the fixed legend box.
func (Simple) RenderLegend(buf *bytes.Buffer, l Legend) {
	renderLegend(buf, l, "#fff", "#ccc", "#333")
}

func renderAxis(buf *bytes.Buffer, a Axis, lineColor, textColor string) {
	fmt.Fprintf(buf, `  <g class="axis" transform="translate(%.1f,0)">`+"\n", a.X)
	fmt.Fprintf(buf, `    <line y1="0" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n", a.Height, lineColor)
	fmt.Fprintf(buf, `    <text y="-12" text-anchor="middle" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
		axisFontSize, textColor, EscapeXML(a.Name))
	for _, t := range a.Ticks {
		fmt.Fprintf(buf, `    <line x1="-%.1f" y1="%.1f" x2="0" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			tickLen, t.Y, t.Y, lineColor)
		fmt.Fprintf(buf, `    <text x="-%.1f" y="%.1f" dy="0.32em" text-anchor="end" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
			tickLen+3, t.Y, tickFontSize, textColor, EscapeXML(TruncateLabel(t.Label, maxTickChars)))
	}
	buf.WriteString("  </g>\n")
}

func renderPolyline(buf *bytes.Buffer, p Polyline, opacity string) {
	var pts bytes.Buffer
	for i, pt := range p.Points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%.1f,%.1f", pt.X, pt.Y)
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="%s"/>`+"\n",
		pts.String(), p.Color, opacity)
}

func renderLegend(buf *bytes.Buffer, l Legend, boxFill, boxStroke, textColor string) {
	h := legendPad*2 + legendRowStep*float64(len(l.Entries))
	fmt.Fprintf(buf, `  <g class="legend" transform="translate(%.1f,%.1f)">`+"\n", l.X, l.Y)
	fmt.Fprintf(buf, `    <rect width="%.1f" height="%.1f" fill="%s" stroke="%s" rx="3"/>`+"\n",
		legendWidth, h, boxFill, boxStroke)
	for i, e := range l.Entries {
		y := legendPad + legendRowStep*float64(i)
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			legendPad, y, legendSwatch, legendSwatch, e.Color)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" dy="0.75em" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
			legendPad+legendSwatch+6, y, tickFontSize+1, textColor, EscapeXML(e.Label))
	}
	buf.WriteString("  </g>\n")
}
