package cli

import (
	"flag"
	"io"
)

// NewFlagSet returns a clean FlagSet with ContinueOnError whose usage text
// is the grouped help printed by Usage.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}
