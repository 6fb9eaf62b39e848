package contrib

// Palette runs from the lightest to the darkest tier.
var Palette = [...]string{"#fee0d2", "#fc9272", "#de2d26"}

// Tier colors contributions below Cutoff that no lower tier took.
type Tier struct {
	Cutoff float64
	Color  string
}

// Hue is a list of tiers with strictly increasing cutoffs.
type Hue []Tier

// CreateHue splits [threshold, 100] into len(Palette) equal tiers. The last
// cutoff is 100 up to floating-point accumulation.
func CreateHue(threshold float64) Hue {
	step := (100 - threshold) / float64(len(Palette))
	hue := make(Hue, 0, len(Palette))
	cutoff := threshold + step
	for _, color := range Palette {
		hue = append(hue, Tier{Cutoff: cutoff, Color: color})
		cutoff += step
	}
	return hue
}

// Select returns the color of the first tier whose cutoff is strictly
// greater than v, or the last tier's color when none is.
func (h Hue) Select(v float64) string {
	if len(h) == 0 {
		return ""
	}
	for _, t := range h {
		if v < t.Cutoff {
			return t.Color
		}
	}
	return h[len(h)-1].Color
}
