package featuremap

import (
	"math"
	"strconv"
)

// Tick is a ruler mark at a base center.
type Tick struct {
	Coord float64 // sequence coordinate of the mark
	Label string
}

// niceStep picks a 1, 2 or 5 times a power of ten so that span is cut into
// roughly target intervals.
func niceStep(span, target int) int {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := float64(span) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch r := raw / mag; {
	case r <= 1:
		step = mag
	case r <= 2:
		step = 2 * mag
	case r <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	if step < 1 {
		return 1
	}
	return int(step)
}

// Ticks numbers the ruler of a sequence of length n. The first base is
// always labeled; it is skipped only when it would crowd the first round mark.
func Ticks(n int, ix Indexing, target int) []Tick {
	if n <= 0 {
		return nil
	}
	first := ix.FirstIndex()
	last := first + n - 1
	step := niceStep(n, target)

	var values []int
	k := (first + step - 1) / step
	for v := k * step; v <= last; v += step {
		values = append(values, v)
	}
	if len(values) == 0 || (values[0] != first && 2*(values[0]-first) > step) {
		values = append([]int{first}, values...)
	}

	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Coord: float64(v-first) + 0.5, Label: strconv.Itoa(v)}
	}
	return ticks
}
