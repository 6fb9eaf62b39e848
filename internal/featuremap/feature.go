// Package featuremap lays out and draws linear sequence maps: a sequence line,
// a ruler, and annotated features stacked so that neither bars nor labels
// overlap.
//
// Callers build a Record and hand it to a Drawer; nothing in this package
// knows where the features came from.
package featuremap

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Strand of a feature relative to the sequence.
const (
	StrandReverse = -1
	StrandNone    = 0
	StrandForward = 1
)

// Feature is a half-open span [Start, End) drawn on the map.
type Feature struct {
	Start, End int
	Strand     int
	Color      string // fill, #rrggbb
	BoxColor   string // outline, #rrggbb; empty means black
	Label      string
	Bold       bool
}

// Len is the span length in bases.
func (f Feature) Len() int { return f.End - f.Start }

// Indexing selects how ruler positions are numbered.
type Indexing int

const (
	// IndexingZero numbers the first base 0.
	IndexingZero Indexing = iota
	// IndexingGenBank numbers the first base 1.
	IndexingGenBank
)

// FirstIndex is the ruler label of the base occupying [0, 1).
func (ix Indexing) FirstIndex() int {
	if ix == IndexingGenBank {
		return 1
	}
	return 0
}

// Record is a whole sequence with its features in drawing order.
type Record struct {
	SequenceLength int
	Features       []Feature
	Indexing       Indexing
}

// Extent is the drawn length of the axis: the sequence, stretched to the end
// of any feature that starts on its closing coordinate.
func (r Record) Extent() int {
	n := r.SequenceLength
	for _, f := range r.Features {
		if f.Start == r.SequenceLength && f.End > n {
			n = f.End
		}
	}
	return n
}

// Validate checks lengths, spans and colors.
func (r Record) Validate() error {
	if r.SequenceLength <= 0 {
		return errors.Errorf("sequence length must be > 0, got %d", r.SequenceLength)
	}
	for i, f := range r.Features {
		if f.End < f.Start {
			return errors.Errorf("feature %d (%q): end %d before start %d", i, f.Label, f.End, f.Start)
		}
		if _, err := parseColor(f.Color, drawing.ColorWhite); err != nil {
			return errors.Wrapf(err, "feature %d (%q)", i, f.Label)
		}
		if _, err := parseColor(f.BoxColor, drawing.ColorBlack); err != nil {
			return errors.Wrapf(err, "feature %d (%q)", i, f.Label)
		}
	}
	return nil
}

// parseColor reads #rgb or #rrggbb; empty yields def.
func parseColor(s string, def drawing.Color) (drawing.Color, error) {
	if s == "" {
		return def, nil
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) != 3 && len(h) != 6 {
		return def, errors.Errorf("bad color %q", s)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return def, errors.Errorf("bad color %q", s)
	}
	return drawing.ColorFromHex(h), nil
}
