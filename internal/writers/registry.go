// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"ctxcount/internal/report"
)

// TableWriter serializes one count table.
type TableWriter func(w io.Writer, t report.Table) error

// Writer registry (format → handler). Formats register themselves in init().
var TableWriters = map[string]TableWriter{}

// Register adds or replaces the writer for format (last wins).
func Register(format string, fn TableWriter) { TableWriters[format] = fn }

// Formats lists the registered formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(TableWriters))
	for f := range TableWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteTable dispatches to the writer registered for format.
func WriteTable(format string, w io.Writer, t report.Table) error {
	fn, ok := TableWriters[format]
	if !ok {
		return fmt.Errorf("unknown table format %q (no writer registered)", format)
	}
	return fn(w, t)
}
