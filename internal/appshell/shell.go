// Package appshell turns a RunContext-style entry point into a process:
// signals cancel the context and the returned code becomes the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const exitCanceled = 130

// Main runs run with os.Args and exits. SIGINT and SIGTERM cancel the run.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(runMain(run, os.Args[1:], os.Stdout, os.Stderr))
}

func runMain(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	// A signal that lands after the last check still means the run was cut short.
	if ctx.Err() != nil && code == 0 {
		code = exitCanceled
	}
	return code
}
