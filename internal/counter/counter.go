// Package counter accumulates canonical context counts for a fixed set of
// widths. A Counter is not safe for concurrent use; give each goroutine its
// own and Merge them afterwards.
package counter

import (
	"errors"
	"fmt"
	"sort"

	"ctxcount/internal/canon"
	"ctxcount/internal/report"
)

var ErrWidthMismatch = errors.New("counter: merging counters with different widths")

// UnsupportedWidthError is returned by New for widths outside canon.Widths.
type UnsupportedWidthError struct{ Width int }

func (e *UnsupportedWidthError) Error() string {
	return fmt.Sprintf("unsupported context width %d (want one of 2, 3, 5)", e.Width)
}

// Table is the running tally of one width.
type Table struct {
	Width   int
	Counts  []uint64 // indexed like canon.IndexFor(Width).Keys()
	Windows uint64   // in-bounds windows counted
	Skipped uint64   // in-bounds windows dropped for ambiguity

	ix *canon.Index
}

// Counter owns one Table per configured width.
type Counter struct {
	tables  []*Table
	byWidth [canon.MaxWidth + 1]*Table
}

// New returns a Counter for widths. Duplicates collapse; order is irrelevant.
func New(widths []int) (*Counter, error) {
	if len(widths) == 0 {
		return nil, errors.New("counter: no widths requested")
	}
	ws := append([]int(nil), widths...)
	sort.Ints(ws)
	c := &Counter{}
	for _, w := range ws {
		if !canon.Supported(w) {
			return nil, &UnsupportedWidthError{Width: w}
		}
		if c.byWidth[w] != nil {
			continue
		}
		ix := canon.IndexFor(w)
		t := &Table{Width: w, Counts: make([]uint64, ix.Len()), ix: ix}
		c.tables = append(c.tables, t)
		c.byWidth[w] = t
	}
	return c, nil
}

// MaxWidth is the widest configured width.
func (c *Counter) MaxWidth() int { return c.tables[len(c.tables)-1].Width }

// Table returns the running table for width, or nil.
func (c *Counter) Table(width int) *Table {
	if width < 0 || width > canon.MaxWidth {
		return nil
	}
	return c.byWidth[width]
}

// Observe canonicalizes one window and counts it against its width.
// It returns false, counting nothing, when the width is not configured, the
// window length does not match, or the window holds an ambiguous base.
func (c *Counter) Observe(width int, window []byte) bool {
	t := c.Table(width)
	if t == nil || len(window) != width {
		return false
	}
	code, ok := canon.Encode(window)
	if !ok {
		t.Skipped++
		return false
	}
	t.Counts[t.ix.Slot(code)]++
	t.Windows++
	return true
}

// Merge adds o into c.
func (c *Counter) Merge(o *Counter) error {
	if len(c.tables) != len(o.tables) {
		return ErrWidthMismatch
	}
	for i, t := range c.tables {
		if o.tables[i].Width != t.Width {
			return ErrWidthMismatch
		}
	}
	for i, t := range c.tables {
		ot := o.tables[i]
		for j, n := range ot.Counts {
			t.Counts[j] += n
		}
		t.Windows += ot.Windows
		t.Skipped += ot.Skipped
	}
	return nil
}

// Report snapshots the counts into a report covering every canonical context.
func (c *Counter) Report() report.Report {
	r := report.Report{Tables: make([]report.Table, 0, len(c.tables))}
	for _, t := range c.tables {
		// shapes come from the same index, NewTable cannot fail here
		tb, _ := report.NewTable(t.Width, append([]uint64(nil), t.Counts...))
		r.Tables = append(r.Tables, tb)
	}
	return r
}
