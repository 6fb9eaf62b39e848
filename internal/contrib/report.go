package contrib

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatFloat prints v in its shortest form but always with a fractional
// part, so 60 reads "60.0" and 95.12 reads "95.12".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}

// Round2 rounds to two decimals, ties to even (60.125 reads 60.12).
func Round2(v float64) float64 { return math.RoundToEven(v*100) / 100 }

// FormatPercent prints a ratio as a percentage with two decimals and no
// grouping (0.5 → "50.00%", 12.5 → "1250.00%").
func FormatPercent(ratio float64) string {
	return printer.Sprint(number.Percent(ratio, number.Scale(2), number.NoSeparator()))
}

// PointLabel is the annotation of a passing position.
func PointLabel(position int, value float64) string {
	return fmt.Sprintf("%d: %s%%", position, FormatFloat(Round2(value)))
}

// Summary is the log line reporting how many positions passed.
func Summary(r Result, threshold float64) string {
	return fmt.Sprintf("%d/%d positions with a contribution >= %s%% contribution threshold (%s)",
		r.NbPassContrib, r.NbContrib, FormatFloat(threshold), FormatPercent(r.PropPassed()))
}

// Title is the figure title; underscores in the column name read as spaces.
func Title(targetCol string, r Result, threshold float64) string {
	return fmt.Sprintf("Contributions %s: %s of %d positions >= %s%% contribution threshold",
		strings.ReplaceAll(targetCol, "_", " "), FormatPercent(r.PropPassed()), r.NbContrib, FormatFloat(threshold))
}
