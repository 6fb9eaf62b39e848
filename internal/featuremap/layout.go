package featuremap

import (
	"math"
	"sort"
)

// Measurer returns the pixel size of a label.
type Measurer func(text string, bold bool) (width, height int)

// Geometry is the horizontal pixel frame the sequence is mapped onto.
type Geometry struct {
	Left, Right int // pixel x of sequence coordinates 0 and Record.Extent
	MinWidth    int // narrowest drawn feature
	LabelPad    int // horizontal clearance kept around labels
}

// Placed is a feature with its pixel extent, row and label slot.
type Placed struct {
	Feature Feature
	Level   int // feature row, 0 sits on the sequence line
	X0, X1  int

	LabelInline bool // label fits inside the bar
	LabelLevel  int  // external label row, -1 for none or inline
	LabelX0     int
	LabelX1     int
	LabelW      int
	LabelH      int
}

// Center is the pixel x of the bar's midpoint.
func (p Placed) Center() int { return (p.X0 + p.X1) / 2 }

// Layout is the result of ComputeLayout.
type Layout struct {
	Items         []Placed
	FeatureLevels int
	LabelLevels   int
	LabelHeight   int // tallest external label
}

type span struct{ lo, hi int }

// assignLevels stacks half-open spans greedily: each span, taken in order of
// its start, goes to the lowest row whose last span ended at or before it.
func assignLevels(spans []span) ([]int, int) {
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return spans[order[a]].lo < spans[order[b]].lo })

	levels := make([]int, len(spans))
	var ends []int
	for _, i := range order {
		s := spans[i]
		placed := false
		for l, end := range ends {
			if end <= s.lo {
				levels[i] = l
				ends[l] = s.hi
				placed = true
				break
			}
		}
		if !placed {
			levels[i] = len(ends)
			ends = append(ends, s.hi)
		}
	}
	return levels, len(ends)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ComputeLayout maps features onto g and stacks them. Features lying entirely
// outside [0, Extent) are dropped; partial overlaps are clipped.
func ComputeLayout(rec Record, g Geometry, measure Measurer) Layout {
	var lay Layout
	n := rec.Extent()
	if n <= 0 || g.Right <= g.Left {
		return lay
	}
	scale := float64(g.Right-g.Left) / float64(n)
	xOf := func(c int) int { return g.Left + int(math.Round(float64(c)*scale)) }

	var seqSpans []span
	for _, f := range rec.Features {
		if f.End <= 0 || f.Start >= n {
			continue
		}
		start := clampInt(f.Start, 0, n)
		end := clampInt(f.End, 0, n)
		if end == start {
			end = start + 1
		}
		x0, x1 := xOf(start), xOf(end)
		if x1-x0 < g.MinWidth {
			c := (x0 + x1) / 2
			x0 = c - g.MinWidth/2
			x1 = x0 + g.MinWidth
		}
		lay.Items = append(lay.Items, Placed{Feature: f, X0: x0, X1: x1, LabelLevel: -1})
		seqSpans = append(seqSpans, span{start, end})
	}

	levels, rows := assignLevels(seqSpans)
	lay.FeatureLevels = rows
	for i := range lay.Items {
		lay.Items[i].Level = levels[i]
	}

	var labelSpans []span
	var labelIdx []int
	for i := range lay.Items {
		it := &lay.Items[i]
		if it.Feature.Label == "" || measure == nil {
			continue
		}
		w, h := measure(it.Feature.Label, it.Feature.Bold)
		it.LabelW, it.LabelH = w, h
		if w+2*g.LabelPad <= it.X1-it.X0 {
			it.LabelInline = true
			continue
		}
		lo := it.Center() - w/2 - g.LabelPad
		hi := lo + w + 2*g.LabelPad
		if lo < g.Left {
			hi += g.Left - lo
			lo = g.Left
		}
		if hi > g.Right {
			lo -= hi - g.Right
			hi = g.Right
		}
		it.LabelX0, it.LabelX1 = lo+g.LabelPad, hi-g.LabelPad
		labelSpans = append(labelSpans, span{lo, hi})
		labelIdx = append(labelIdx, i)
		if h > lay.LabelHeight {
			lay.LabelHeight = h
		}
	}
	lvls, labelRows := assignLevels(labelSpans)
	lay.LabelLevels = labelRows
	for k, i := range labelIdx {
		lay.Items[i].LabelLevel = lvls[k]
	}
	return lay
}
