// internal/cli/options.go
package cli

import (
	"flag"
	"strings"

	"ctxcount/internal/config"
	"ctxcount/internal/writers"
)

// Options is the parsed command line: the run configuration plus the
// flags that short-circuit a run.
type Options struct {
	config.Config

	Help    bool
	Version bool
}

// appendValue appends each occurrence verbatim (file names may hold commas).
type appendValue struct{ dst *[]string }

func (v *appendValue) String() string {
	if v == nil || v.dst == nil {
		return ""
	}
	return strings.Join(*v.dst, ",")
}

func (v *appendValue) Set(s string) error {
	*v.dst = append(*v.dst, s)
	return nil
}

// Register wires every flag onto fs, using c's current values as defaults.
func Register(fs *flag.FlagSet, o *Options) {
	c := &o.Config

	// Input
	seq := &appendValue{dst: &c.Inputs}
	fs.Var(seq, "sequences", "FASTA file (repeatable) or '-' for STDIN")
	fs.Var(seq, "s", "alias of --sequences")
	widths := &widthsValue{dst: &c.Widths}
	fs.Var(widths, "widths", "context widths, subset of 2,3,5")
	fs.Var(widths, "w", "alias of --widths")
	fs.Var(&listValue{dst: &c.Skip}, "skip", "contigs to exclude (comma separated, repeatable)")
	fs.Var(&listValue{dst: &c.Include}, "include", "count only these contigs (comma separated, repeatable)")

	// Output
	fs.StringVar(&c.OutDir, "outdir", c.OutDir, "output folder")
	fs.StringVar(&c.OutDir, "d", c.OutDir, "alias of --outdir")
	fs.StringVar(&c.Prefix, "prefix", c.Prefix, "output file prefix (default: stem of first input)")
	fs.StringVar(&c.Format, "output", c.Format, "output: "+strings.Join(writers.Formats(), " | "))
	fs.StringVar(&c.Format, "o", c.Format, "alias of --output")
	fs.BoolVar(&c.PrintCounts, "print-counts", c.PrintCounts, "also print tables to stdout")
	fs.BoolVar(&c.PrintCounts, "p", c.PrintCounts, "alias of --print-counts")
	fs.StringVar(&c.SummaryPath, "summary", c.SummaryPath, "write a JSON run summary to this file")

	// Performance
	fs.IntVar(&c.Threads, "threads", c.Threads, "worker goroutines (0=all CPUs)")
	fs.IntVar(&c.Threads, "t", c.Threads, "alias of --threads")
	fs.IntVar(&c.ChunkSize, "chunk-size", c.ChunkSize, "bases per work unit")
	fs.BoolVar(&c.Progress, "progress", c.Progress, "show a progress bar on stderr")

	// Misc
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: panic|fatal|error|warn|info|debug|trace")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "only log warnings and errors")
	fs.BoolVar(&c.Quiet, "q", c.Quiet, "alias of --quiet")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(&o.Version, "v", false, "alias of --version")
	fs.BoolVar(&o.Help, "help", false, "show this help and exit")
	fs.BoolVar(&o.Help, "h", false, "alias of --help")
}

// ParseArgs parses argv on top of base (defaults already merged with the
// environment). Positionals are FASTA inputs and may be globs. It returns
// flag.ErrHelp when help was requested; a version request returns early
// without validation.
func ParseArgs(fs *flag.FlagSet, argv []string, base config.Config) (Options, error) {
	opt := Options{Config: base}
	opt.Inputs = append([]string(nil), base.Inputs...)
	Register(fs, &opt)

	flagArgs, posArgs := SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if opt.Help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	// A list given on the command line replaces an environment-derived
	// list of the opposite kind rather than conflicting with it.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["include"] && !set["skip"] {
		opt.Skip = nil
	}
	if set["skip"] && !set["include"] {
		opt.Include = nil
	}
	// anything flag.Parse stopped at is positional too
	posArgs = append(posArgs, fs.Args()...)
	exp, err := ExpandGlobs(posArgs)
	if err != nil {
		return opt, &config.ConfigError{Field: "--sequences", Msg: err.Error()}
	}
	opt.Inputs = append(opt.Inputs, exp...)
	return opt, opt.Validate()
}
