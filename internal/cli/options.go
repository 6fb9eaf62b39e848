// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"

	"contribmap/internal/logging"
)

// Options holds all CLI flags and the INPUT positional.
type Options struct {
	Input string

	Out          string
	Threshold    float64
	PositionCol  string
	TargetCol    string
	SequenceSize int // 0 = infer from the last position

	LogPath  string // "" = <out dir>/<name>.log
	LogLevel string

	Version bool
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	fs.StringVar(&o.Out, "out", "", "output image path [required]")
	fs.Float64Var(&o.Threshold, "threshold", 0, "lowest displayed contribution (>=) [required]")
	fs.StringVar(&o.PositionCol, "position-col", "", "position column name [required]")
	fs.StringVar(&o.TargetCol, "target-col", "", "target contribution column name [required]")
	fs.IntVar(&o.SequenceSize, "sequence-size", 0, "sequence size (0 = last position) [0]")
	fs.StringVar(&o.LogPath, "log", "", "log file path")
	fs.StringVar(&o.LogLevel, "log-level", "INFO", "log level [INFO]")
	fs.StringVar(&o.Out, "o", "", "alias of --out")
	fs.Float64Var(&o.Threshold, "t", 0, "alias of --threshold")
	fs.StringVar(&o.PositionCol, "p", "", "alias of --position-col")
	fs.StringVar(&o.TargetCol, "x", "", "alias of --target-col")
	fs.IntVar(&o.SequenceSize, "s", 0, "alias of --sequence-size")
	fs.StringVar(&o.LogPath, "l", "", "alias of --log")

	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&help, "help", false, "show this help [false]")

	flagArgs, posArgs := SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var missing []string
	if o.Out == "" {
		missing = append(missing, "-o/--out")
	}
	if !set["threshold"] && !set["t"] {
		missing = append(missing, "-t/--threshold")
	}
	if o.PositionCol == "" {
		missing = append(missing, "-p/--position-col")
	}
	if o.TargetCol == "" {
		missing = append(missing, "-x/--target-col")
	}
	if len(posArgs) == 0 {
		missing = append(missing, "INPUT")
	}
	if len(missing) > 0 {
		return o, fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	if len(posArgs) > 1 {
		return o, fmt.Errorf("expected a single INPUT, got %d: %s", len(posArgs), strings.Join(posArgs, " "))
	}
	o.Input = posArgs[0]

	if math.IsNaN(o.Threshold) || o.Threshold < 0 || o.Threshold >= 100 {
		return o, fmt.Errorf("--threshold must be in [0, 100), got %v", o.Threshold)
	}
	if o.SequenceSize < 0 {
		return o, errors.New("--sequence-size must be ≥ 0")
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return o, err
	}
	o.LogLevel = strings.ToUpper(o.LogLevel)
	return o, nil
}
