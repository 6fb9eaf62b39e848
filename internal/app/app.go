// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"contribmap/internal/cli"
	"contribmap/internal/config"
	"contribmap/internal/contrib"
	"contribmap/internal/featuremap"
	"contribmap/internal/logging"
	"contribmap/internal/version"
)

// Name is the program name, also used for the default log file.
const Name = "contribmap"

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1 // input, data or logging failure
	ExitUsage       = 2
	ExitWrite       = 3 // image could not be drawn or written
	ExitInterrupted = 130
)

func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// flushTo flushes help/version output; a closed stdout is not an error.
func flushTo(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); isBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitWrite
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return run(parent, argv, stdout, stderr, nil)
}

// run executes one invocation. A nil drawer selects the go-chart backend.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer, drawer featuremap.Drawer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(Name)
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flushTo(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return flushTo(outw, stderr, ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", Name, version.Version)
		return flushTo(outw, stderr, ExitOK)
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	level, _ := logging.ParseLevel(opts.LogLevel)

	absOut, err := filepath.Abs(opts.Out)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	outDir := filepath.Dir(absOut)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(stderr, "create output directory: %v\n", err)
		return ExitFailure
	}
	logPath := opts.LogPath
	if logPath == "" {
		logPath = filepath.Join(outDir, Name+".log")
	}
	log, err := logging.Open(logPath, level, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	defer func() {
		if err := log.Close(); err != nil {
			_, _ = fmt.Fprintf(stderr, "close log: %v\n", err)
		}
	}()

	log.Infof("version: %s", version.Version)
	log.Infof("CMD: %s", strings.Join(append([]string{Name}, argv...), " "))

	tbl, err := contrib.LoadTable(opts.Input)
	if err != nil {
		log.Errorf("%v", err)
		return ExitFailure
	}
	log.Debugf("%d rows, columns: %s", tbl.Len(), strings.Join(tbl.Header, ", "))
	if ctx.Err() != nil {
		return ExitInterrupted
	}

	res, err := contrib.Scan(tbl, contrib.Params{
		PositionCol:   opts.PositionCol,
		TargetCol:     opts.TargetCol,
		Threshold:     opts.Threshold,
		SequenceSize:  opts.SequenceSize,
		BackboneLabel: cfg.BackboneLabel,
		BackboneColor: cfg.BackboneColor,
	}, log)
	if errors.Is(err, contrib.ErrNoContribution) {
		log.Criticalf("%v: cannot compute the proportion of positions passing %s%%", err, contrib.FormatFloat(opts.Threshold))
		return ExitFailure
	}
	if err != nil {
		log.Errorf("%v", err)
		return ExitFailure
	}
	if ctx.Err() != nil {
		return ExitInterrupted
	}

	if drawer == nil {
		d, err := featuremap.NewChartDrawer()
		if err != nil {
			log.Errorf("%v", err)
			return ExitWrite
		}
		drawer = d
	}
	plot := featuremap.Plot{
		Record: res.Record(),
		Title:  contrib.Title(opts.TargetCol, res, opts.Threshold),
		Width:  cfg.FigureWidth,
		DPI:    cfg.DPI,
	}
	if err := featuremap.SaveFile(opts.Out, drawer, plot); err != nil {
		log.Errorf("%v", err)
		return ExitWrite
	}
	log.Infof("feature map: %s", opts.Out)
	return ExitOK
}
