// Package scale maps raw column values to vertical screen positions.
//
// A scale is a pure, deterministic function from a column's values to
// positions in [0, height], with 0 at the top of the axis. Numeric columns
// get an affine map over [min, max]; nominal columns get evenly spaced
// positions over their sorted distinct values. Missing values are excluded
// from domain computation and report no position.
package scale

import (
	"fmt"
	"sort"

	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/schema"
)

// Tick is one labeled position on an axis.
type Tick struct {
	Label string
	Pos   float64
}

// Scale maps one dimension's values to vertical positions.
type Scale interface {
	// Pos returns the vertical position of a value. The second return
	// value is false for missing values and values outside the domain.
	Pos(v dataset.Value) (float64, bool)

	// Ticks returns the axis tick marks, top to bottom in domain order.
	Ticks() []Tick
}

// Build constructs the scale for one dimension over the given records.
// Numeric dimensions get a [Linear] scale, nominal dimensions a [Point]
// scale. Degenerate domains (single value, no values) are handled without
// error: they collapse to the axis midpoint.
func Build(records []dataset.Record, dim string, typ schema.Type, height float64) Scale {
	if typ == schema.TypeNumeric {
		return buildLinear(records, dim, height)
	}
	return buildPoint(records, dim, height)
}

// Linear is an affine scale from [min, max] to [height, 0]. Larger values
// plot higher (closer to 0).
type Linear struct {
	Min, Max float64
	Height   float64
}

func buildLinear(records []dataset.Record, dim string, height float64) *Linear {
	s := &Linear{Height: height}
	found := false
	for _, rec := range records {
		f, ok := rec.Get(dim).Float()
		if !ok {
			continue
		}
		if !found || f < s.Min {
			s.Min = f
		}
		if !found || f > s.Max {
			s.Max = f
		}
		found = true
	}
	return s
}

// Pos maps a value through the affine transform. A degenerate domain
// (Min == Max) maps every value to the axis midpoint rather than
// dividing by zero.
func (s *Linear) Pos(v dataset.Value) (float64, bool) {
	f, ok := v.Float()
	if !ok {
		return 0, false
	}
	if s.Max == s.Min {
		return s.Height / 2, true
	}
	return s.Height - (f-s.Min)/(s.Max-s.Min)*s.Height, true
}

// Ticks returns exactly five ticks at 0/25/50/75/100% of the value range,
// labeled with two decimal digits.
func (s *Linear) Ticks() []Tick {
	fracs := []float64{0, 0.25, 0.5, 0.75, 1}
	ticks := make([]Tick, len(fracs))
	for i, frac := range fracs {
		val := s.Min + frac*(s.Max-s.Min)
		pos, _ := s.Pos(dataset.Number(val))
		ticks[i] = Tick{Label: fmt.Sprintf("%.2f", val), Pos: pos}
	}
	return ticks
}

// Point maps each distinct value of a nominal dimension to an evenly
// spaced position. Values are ordered lexicographically on their string
// form so the mapping is deterministic.
type Point struct {
	order  []string
	pos    map[string]float64
	height float64
}

func buildPoint(records []dataset.Record, dim string, height float64) *Point {
	distinct := make(map[string]struct{})
	for _, rec := range records {
		v := rec.Get(dim)
		if v.IsMissing() {
			continue
		}
		distinct[v.String()] = struct{}{}
	}

	order := make([]string, 0, len(distinct))
	for s := range distinct {
		order = append(order, s)
	}
	sort.Strings(order)

	p := &Point{order: order, pos: make(map[string]float64, len(order)), height: height}
	switch n := len(order); n {
	case 0:
		// Empty domain: nothing to position
	case 1:
		p.pos[order[0]] = height / 2
	default:
		step := height / float64(n-1)
		for i, s := range order {
			p.pos[s] = height - float64(i)*step
		}
	}
	return p
}

// Pos returns the slot position of a value. Missing values and values
// outside the computed domain report false.
func (p *Point) Pos(v dataset.Value) (float64, bool) {
	if v.IsMissing() {
		return 0, false
	}
	pos, ok := p.pos[v.String()]
	return pos, ok
}

// Ticks returns one tick per distinct value, in lexicographic order.
func (p *Point) Ticks() []Tick {
	ticks := make([]Tick, len(p.order))
	for i, s := range p.order {
		ticks[i] = Tick{Label: s, Pos: p.pos[s]}
	}
	return ticks
}

// Domain returns the sorted distinct values of the dimension.
func (p *Point) Domain() []string { return p.order }
