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

	"ctxcount/internal/cli"
	"ctxcount/internal/config"
	"ctxcount/internal/version"
	"ctxcount/internal/writers"
)

// Name is the command name shown in help and version output.
const Name = "ctxcount"

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitFailure  = 3
	ExitCanceled = 130
)

// RunContext parses argv, runs the count and returns the process exit code.
// Environment defaults (and a ./.env file) sit below the flags.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return runWithEnv(parent, argv, stdout, stderr, os.LookupEnv, true)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func runWithEnv(parent context.Context, argv []string, stdout, stderr io.Writer,
	lookup func(string) (string, bool), dotenv bool) int {
	outw := bufio.NewWriter(stdout)
	flush := func(code int) int {
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return code
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return ExitFailure
		}
		return code
	}

	if dotenv {
		if err := config.LoadDotEnv(); err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return ExitUsage
		}
	}
	base, err := config.FromEnv(lookup)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitUsage
	}

	fs := cli.NewFlagSet(Name)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := cli.ParseArgs(fs, argv, base)
	switch {
	case errors.Is(err, flag.ErrHelp):
		cli.Usage(outw, fs, Name)
		return flush(ExitOK)
	case err != nil:
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, Name)
		return ExitUsage
	case opts.Version:
		_, _ = fmt.Fprintf(outw, "%s version %s\n", Name, version.Version)
		return flush(ExitOK)
	}

	code := execute(parent, opts.Config, outw, stderr)
	return flush(code)
}
