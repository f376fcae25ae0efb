// Package chart renders parallel-coordinates charts as SVG.
//
// The chart is a pure function of an immutable view model (records, schema,
// scales, color rule) and a container width: every invocation rebuilds the
// full SVG from scratch, so redraws never diff against prior output.
package chart

// Minimum horizontal space per axis, keeps labels legible when the
// container is narrow or the dataset is wide.
const minAxisSpacing = 100.0

// Margins are the frame margins around the plot area, in user units.
type Margins struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// DefaultMargins leave room for the axis titles, tick labels, and legend.
func DefaultMargins() Margins {
	return Margins{Top: 50, Right: 160, Bottom: 30, Left: 60}
}

// Layout holds the resolved geometry of one render pass.
type Layout struct {
	Margins Margins

	// Width is the inner plot width (excluding margins).
	Width float64

	// Height is the inner plot height; scales map values into [0, Height].
	Height float64

	// AxisX holds one horizontal position per dimension, in axis order.
	AxisX []float64
}

// NewLayout computes the chart geometry from the container width, the
// number of dimensions, and the record count.
//
// The plot width is the container width minus horizontal margins, but never
// less than 100 units per axis. The plot height is clamped so very small and
// very large datasets both render readably.
func NewLayout(containerWidth float64, dimensions, records int, m Margins) Layout {
	width := containerWidth - m.Left - m.Right
	if minWidth := float64(dimensions) * minAxisSpacing; width < minWidth {
		width = minWidth
	}

	height := max(400, min(600, float64(records)/15)) + 200

	l := Layout{
		Margins: m,
		Width:   width,
		Height:  height,
		AxisX:   make([]float64, dimensions),
	}

	// Axes are evenly spaced across the plot width, endpoints included;
	// a single axis sits in the middle.
	switch dimensions {
	case 0:
	case 1:
		l.AxisX[0] = width / 2
	default:
		step := width / float64(dimensions-1)
		for i := range l.AxisX {
			l.AxisX[i] = float64(i) * step
		}
	}
	return l
}

// FrameWidth is the total SVG width including margins.
func (l Layout) FrameWidth() float64 { return l.Width + l.Margins.Left + l.Margins.Right }

// FrameHeight is the total SVG height including margins.
func (l Layout) FrameHeight() float64 { return l.Height + l.Margins.Top + l.Margins.Bottom }
