package cli

import (
	"flag"
	"fmt"
	"strings"

	"contribmap/internal/logging"
	"contribmap/internal/version"
)

func installUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – plot the contribution of the positions of a sequence\n\n", name)
		fmt.Fprintln(out, "License: GPL-3.0")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s -o OUT -t THRESHOLD -p POSITION_COL -x TARGET_COL [options] INPUT\n\n", name)
		fmt.Fprintln(out, "INPUT is a CSV file with ';' between fields and ',' as decimal separator.")
		fmt.Fprintln(out, "Positions with a contribution >= THRESHOLD are drawn on the sequence,")
		fmt.Fprintln(out, "colored by three tiers between THRESHOLD and 100.")

		fmt.Fprintln(out, "\nRequired:")
		fmt.Fprintln(out, "  -o, --out path              Output image (.png, .svg, .jpg)")
		fmt.Fprintln(out, "  -t, --threshold float       Lowest contribution (%) displayed, in [0, 100)")
		fmt.Fprintln(out, "  -p, --position-col string   Name of the position column")
		fmt.Fprintln(out, "  -x, --target-col string     Name of the target contribution column")

		fmt.Fprintln(out, "\nOptional:")
		fmt.Fprintf(out, "  -s, --sequence-size int     Sequence size (0=last position in INPUT) [%s]\n", def("sequence-size"))
		fmt.Fprintln(out, "  -l, --log path              Log file [<out dir>/"+name+".log]")
		fmt.Fprintf(out, "      --log-level string      %s [%s]\n", strings.Join(logging.LevelNames(), " | "), def("log-level"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")

		fmt.Fprintln(out, "\nEnvironment:")
		fmt.Fprintln(out, "  CONTRIBMAP_FIGURE_WIDTH, CONTRIBMAP_DPI, CONTRIBMAP_BACKBONE_LABEL, CONTRIBMAP_BACKBONE_COLOR")
	}
}
