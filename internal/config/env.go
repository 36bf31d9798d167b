package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override built-in defaults. Flags override these.
const (
	EnvThreads   = "CTXCOUNT_THREADS"
	EnvChunkSize = "CTXCOUNT_CHUNK_SIZE"
	EnvOutDir    = "CTXCOUNT_OUTDIR"
	EnvLogLevel  = "CTXCOUNT_LOG_LEVEL"
	EnvSkip      = "CTXCOUNT_SKIP"
	EnvWidths    = "CTXCOUNT_WIDTHS"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none)
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errorf("", "load %s: %v", f, err)
		}
	}
	return nil
}

// FromEnv returns Default() with environment overrides applied.
// lookup is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	c := Default()
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvThreads); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, errorf(EnvThreads, "%q is not a number", v)
		}
		c.Threads = n
	}
	if v, ok := get(EnvChunkSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, errorf(EnvChunkSize, "%q is not a number", v)
		}
		c.ChunkSize = n
	}
	if v, ok := get(EnvOutDir); ok {
		c.OutDir = v
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvSkip); ok {
		c.Skip = SplitList(v)
	}
	if v, ok := get(EnvWidths); ok {
		ws, err := ParseWidths(v)
		if err != nil {
			return c, errorf(EnvWidths, "%v", err)
		}
		c.Widths = ws
	}
	return c, nil
}
