package chart

import (
	"bytes"
	"fmt"

	"github.com/coordviz/parcoords/pkg/chart/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	legend bool
	title  string
}

// WithStyle selects the visual style (default styles.Simple).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutLegend suppresses the legend box.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// WithTitle draws a title centered above the chart.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// StyleByName resolves a style name to its implementation.
func StyleByName(name string) (styles.Style, bool) {
	switch name {
	case "", "simple":
		return styles.Simple{}, true
	case "midnight":
		return styles.Midnight{}, true
	default:
		return nil, false
	}
}

// RenderSVG renders the view model as a complete SVG document. The output
// is deterministic for a given model and options, and every invocation
// rebuilds all visual elements from scratch.
func RenderSVG(m *Model, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, legend: true}
	for _, opt := range opts {
		opt(&r)
	}

	l := m.Layout
	frameW, frameH := l.FrameWidth(), l.FrameHeight()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frameW, frameH, frameW, frameH)

	r.style.RenderBackground(&buf, frameW, frameH)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+"\n",
			frameW/2, l.Margins.Top/2, styles.EscapeXML(r.title))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", l.Margins.Left, l.Margins.Top)

	// Lines first so axes stay readable on top of dense datasets
	for _, p := range Polylines(m) {
		r.style.RenderPolyline(&buf, p)
	}
	for _, a := range Axes(m) {
		r.style.RenderAxis(&buf, a)
	}

	buf.WriteString("  </g>\n")

	if r.legend {
		r.style.RenderLegend(&buf, styles.Legend{
			X:       l.Margins.Left + l.Width + 20,
			Y:       l.Margins.Top,
			Entries: m.Rule.LegendEntries(),
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Axes builds the positioned axis geometry, one per dimension in order.
func Axes(m *Model) []styles.Axis {
	axes := make([]styles.Axis, len(m.Schema.Dimensions))
	for i, dim := range m.Schema.Dimensions {
		var marks []styles.TickMark
		for _, t := range m.Scales[dim.Name].Ticks() {
			marks = append(marks, styles.TickMark{Label: t.Label, Y: t.Pos})
		}
		axes[i] = styles.Axis{
			Name:   dim.Name,
			X:      m.Layout.AxisX[i],
			Height: m.Layout.Height,
			Ticks:  marks,
		}
	}
	return axes
}

// Polylines builds one polyline per record that has at least two present
// vertices. A record's vertex for a dimension is omitted when its value is
// missing; the remaining present vertices are connected in dimension order.
func Polylines(m *Model) []styles.Polyline {
	var lines []styles.Polyline
	for _, rec := range m.Records {
		var pts []styles.Point
		for i, dim := range m.Schema.Dimensions {
			y, ok := m.Scales[dim.Name].Pos(rec.Get(dim.Name))
			if !ok {
				continue
			}
			pts = append(pts, styles.Point{X: m.Layout.AxisX[i], Y: y})
		}
		// A single point cannot be connected; draw nothing
		if len(pts) < 2 {
			continue
		}
		lines = append(lines, styles.Polyline{Points: pts, Color: m.Rule.Color(rec)})
	}
	return lines
}
