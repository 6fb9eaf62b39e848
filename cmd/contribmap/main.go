// cmd/contribmap/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contribmap/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := app.RunContext(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == app.ExitOK {
		code = app.ExitInterrupted
	}

	stop()
	os.Exit(code)
}
