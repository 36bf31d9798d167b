// Package report holds finalized context counts, one table per width, keyed
// by canonical context string in lexicographic order.
package report

import (
	"errors"
	"fmt"

	"ctxcount/internal/canon"
)

// Entry is one canonical context and its opportunity count.
type Entry struct {
	Context string
	Count   uint64
}

// Table is the complete count table of one width. Entries cover the full
// canonical space of that width, zero counts included.
type Table struct {
	Width   int
	Name    string
	Total   uint64
	Entries []Entry
}

// Report is the set of tables for all requested widths, ascending by width.
type Report struct {
	Tables []Table
}

// NewTable pairs a width's canonical key space with counts in the same order.
func NewTable(width int, counts []uint64) (Table, error) {
	ix := canon.IndexFor(width)
	if ix == nil {
		return Table{}, fmt.Errorf("report: unsupported width %d", width)
	}
	if len(counts) != ix.Len() {
		return Table{}, fmt.Errorf("report: width %d needs %d counts, got %d", width, ix.Len(), len(counts))
	}
	t := Table{Width: width, Name: canon.Name(width), Entries: make([]Entry, ix.Len())}
	for i, k := range ix.Keys() {
		t.Entries[i] = Entry{Context: k, Count: counts[i]}
		t.Total += counts[i]
	}
	return t, nil
}

// Count returns the count for a canonical context, or 0 if absent.
func (t Table) Count(context string) uint64 {
	for _, e := range t.Entries {
		if e.Context == context {
			return e.Count
		}
	}
	return 0
}

// Table returns the table for width.
func (r Report) Table(width int) (Table, bool) {
	for _, t := range r.Tables {
		if t.Width == width {
			return t, true
		}
	}
	return Table{}, false
}

var ErrShapeMismatch = errors.New("report: reports cover different widths")

// Sum adds reports elementwise. All reports must cover the same widths.
func Sum(reports ...Report) (Report, error) {
	if len(reports) == 0 {
		return Report{}, nil
	}
	out := Report{Tables: make([]Table, len(reports[0].Tables))}
	for i, t := range reports[0].Tables {
		out.Tables[i] = Table{Width: t.Width, Name: t.Name, Entries: append([]Entry(nil), t.Entries...)}
	}
	for _, r := range reports[1:] {
		if len(r.Tables) != len(out.Tables) {
			return Report{}, ErrShapeMismatch
		}
		for i, t := range r.Tables {
			dst := &out.Tables[i]
			if t.Width != dst.Width || len(t.Entries) != len(dst.Entries) {
				return Report{}, ErrShapeMismatch
			}
			for j, e := range t.Entries {
				dst.Entries[j].Count += e.Count
			}
		}
	}
	for i := range out.Tables {
		var total uint64
		for _, e := range out.Tables[i].Entries {
			total += e.Count
		}
		out.Tables[i].Total = total
	}
	return out, nil
}
