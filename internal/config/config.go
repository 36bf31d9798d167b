// Package config holds the validated run configuration consumed by the
// counting pipeline and the output stage.
package config

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"ctxcount/internal/canon"
)

// Output formats.
const (
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

// Defaults.
const (
	DefaultOutDir    = "contexts"
	DefaultChunkSize = 1 << 20
	DefaultLogLevel  = "info"
)

// ConfigError reports an invalid setting. Field names the offending option.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func errorf(field, format string, a ...any) error {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, a...)}
}

// Config is everything a run needs.
type Config struct {
	Inputs  []string
	Widths  []int
	Skip    []string
	Include []string

	OutDir      string
	Prefix      string
	Format      string
	PrintCounts bool
	SummaryPath string

	Threads   int
	ChunkSize int

	Progress bool
	LogLevel string
	Quiet    bool
}

// Default returns a Config with every default filled in.
func Default() Config {
	return Config{
		Widths:    append([]int(nil), canon.Widths...),
		OutDir:    DefaultOutDir,
		Format:    FormatTSV,
		ChunkSize: DefaultChunkSize,
		LogLevel:  DefaultLogLevel,
	}
}

// ParseWidths reads a comma separated width list such as "2,3,5".
// The result is sorted and de-duplicated.
func ParseWidths(s string) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for _, f := range SplitList(s) {
		w, err := strconv.Atoi(f)
		if err != nil {
			return nil, errorf("--widths", "%q is not a number", f)
		}
		if !canon.Supported(w) {
			return nil, errorf("--widths", "unsupported width %d (want 2, 3 or 5)", w)
		}
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, errorf("--widths", "at least one width is required")
	}
	sort.Ints(out)
	return out, nil
}

// SplitList splits a comma separated list, trimming blanks and dropping empties.
func SplitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// EffectiveThreads resolves Threads == 0 to the CPU count.
func (c Config) EffectiveThreads() int {
	if c.Threads <= 0 {
		return runtime.NumCPU()
	}
	return c.Threads
}

// Validate checks cross-field invariants.
func (c Config) Validate() error {
	if len(c.Inputs) == 0 {
		return errorf("", "at least one FASTA input is required")
	}
	stdin := 0
	for _, in := range c.Inputs {
		if in == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errorf("--sequences", "'-' (stdin) may be given only once")
	}
	if len(c.Widths) == 0 {
		return errorf("--widths", "at least one width is required")
	}
	for _, w := range c.Widths {
		if !canon.Supported(w) {
			return errorf("--widths", "unsupported width %d (want 2, 3 or 5)", w)
		}
	}
	if len(c.Skip) > 0 && len(c.Include) > 0 {
		return errorf("--skip", "conflicts with --include; an include list already excludes every unlisted contig")
	}
	if c.Threads < 0 {
		return errorf("--threads", "must be ≥ 0")
	}
	if c.ChunkSize < canon.MaxWidth {
		return errorf("--chunk-size", "must be ≥ %d", canon.MaxWidth)
	}
	switch c.Format {
	case FormatTSV, FormatJSON:
	default:
		return errorf("--output", "invalid format %q (want tsv or json)", c.Format)
	}
	if c.OutDir == "" {
		return errorf("--outdir", "must not be empty")
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		return errorf("--prefix", "must be a file name, not a path")
	}
	return nil
}
