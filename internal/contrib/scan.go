package contrib

import (
	"math"

	"github.com/go-faster/errors"

	"contribmap/internal/featuremap"
	"contribmap/internal/logging"
)

// Provenance of the sequence size.
const (
	SourceUser     = "provided by the user"
	SourceInferred = "last position of contribution"
)

// Backbone defaults.
const (
	DefaultBackboneLabel = "Spike"
	DefaultBackboneColor = "#ffd700"
)

// ErrNoContribution means no row had a contribution above zero, so the
// passing proportion is undefined.
var ErrNoContribution = errors.New("no position has a contribution > 0")

// Params drive one scan.
type Params struct {
	PositionCol   string
	TargetCol     string
	Threshold     float64 // inclusive
	SequenceSize  int     // <= 0 infers it from the last position
	BackboneLabel string
	BackboneColor string
}

// Result holds the counters and the features of a scan, backbone first.
type Result struct {
	SeqSize       int
	SeqSizeSource string
	NbContrib     int // rows with a contribution > 0
	NbPassContrib int // rows with a contribution >= threshold
	Features      []featuremap.Feature
}

// PropPassed is NbPassContrib / NbContrib. Scan never returns a Result with
// NbContrib == 0 without ErrNoContribution.
func (r Result) PropPassed() float64 {
	return float64(r.NbPassContrib) / float64(r.NbContrib)
}

// Record wraps the features for drawing with 1-based ruler numbering.
func (r Result) Record() featuremap.Record {
	return featuremap.Record{
		SequenceLength: r.SeqSize,
		Features:       r.Features,
		Indexing:       featuremap.IndexingGenBank,
	}
}

func lastPosition(t *Table, col int) (int, error) {
	found := false
	last := math.Inf(-1)
	for i := range t.Rows {
		v, err := t.Float(i, col)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) {
			continue
		}
		found = true
		if v > last {
			last = v
		}
	}
	if !found {
		return 0, errors.Errorf("column %q holds no position to infer the sequence size from", t.Header[col])
	}
	return int(last), nil
}

// Scan walks the rows in file order. Rows with a blank contribution are
// ignored; every row at or above the threshold becomes a one-base feature
// colored by its tier.
func Scan(t *Table, p Params, log *logging.Logger) (Result, error) {
	if log == nil {
		log = logging.Nop()
	}
	posCol, err := t.Column(p.PositionCol)
	if err != nil {
		return Result{}, errors.Wrap(err, "position column")
	}
	tgtCol, err := t.Column(p.TargetCol)
	if err != nil {
		return Result{}, errors.Wrap(err, "target column")
	}

	res := Result{SeqSize: p.SequenceSize, SeqSizeSource: SourceUser}
	if p.SequenceSize <= 0 {
		if res.SeqSize, err = lastPosition(t, posCol); err != nil {
			return Result{}, err
		}
		res.SeqSizeSource = SourceInferred
	}
	log.Infof("sequence size (%s): %d", res.SeqSizeSource, res.SeqSize)

	label, color := p.BackboneLabel, p.BackboneColor
	if label == "" {
		label = DefaultBackboneLabel
	}
	if color == "" {
		color = DefaultBackboneColor
	}
	res.Features = append(res.Features, featuremap.Feature{
		Start: 0, End: res.SeqSize, Strand: featuremap.StrandForward,
		Color: color, Label: label, Bold: true,
	})

	hue := CreateHue(p.Threshold)
	for i := range t.Rows {
		v, err := t.Float(i, tgtCol)
		if err != nil {
			return Result{}, err
		}
		if math.IsNaN(v) {
			continue
		}
		if v > 0 {
			res.NbContrib++
		}
		if v < p.Threshold {
			continue
		}
		pos, err := t.Float(i, posCol)
		if err != nil {
			return Result{}, err
		}
		if math.IsNaN(pos) {
			return Result{}, errors.Errorf("line %d: blank position for a passing contribution", i+2)
		}
		res.NbPassContrib++

		start := int(pos)
		if start < 0 || start > res.SeqSize {
			log.Warnf("position %d lies outside the sequence (size %d)", start, res.SeqSize)
		}
		tier := hue.Select(v)
		log.Debugf("position %d: %s%% -> %s", start, FormatFloat(Round2(v)), tier)
		res.Features = append(res.Features, featuremap.Feature{
			Start: start, End: start + 1, Strand: featuremap.StrandForward,
			Color: tier, BoxColor: tier, Label: PointLabel(start, v),
		})
	}
	if res.NbContrib == 0 {
		return res, ErrNoContribution
	}
	log.Infof("%s", Summary(res, p.Threshold))
	return res, nil
}
