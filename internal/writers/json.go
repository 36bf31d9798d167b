// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"
	"time"

	"ctxcount/internal/config"
	"ctxcount/internal/report"
	"ctxcount/pkg/api"
)

func init() {
	Register(config.FormatJSON, func(w io.Writer, t report.Table) error {
		return EncodePretty(w, ToAPITable(t))
	})
}

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToAPITable converts a report table to its v1 wire form.
func ToAPITable(t report.Table) api.CountTableV1 {
	out := api.CountTableV1{
		Width:  t.Width,
		Name:   t.Name,
		Total:  t.Total,
		Counts: make([]api.ContextCountV1, len(t.Entries)),
	}
	for i, e := range t.Entries {
		out.Counts[i] = api.ContextCountV1{Context: e.Context, Count: e.Count}
	}
	return out
}

// ToAPISummary converts a run summary to its v1 wire form.
func ToAPISummary(s report.Summary) api.SummaryV1 {
	out := api.SummaryV1{
		Version:      s.Version,
		Inputs:       s.Inputs,
		Widths:       s.Widths,
		Skip:         s.Skip,
		Include:      s.Include,
		Started:      s.Started.UTC().Format(time.RFC3339),
		ElapsedMS:    s.Elapsed.Milliseconds(),
		CountedBases: s.CountedBases(),
		Contigs:      make([]api.ContigV1, len(s.Contigs)),
		Tables:       make([]api.CountTableV1, len(s.Report.Tables)),
	}
	for i, c := range s.Contigs {
		out.Contigs[i] = api.ContigV1{
			Source: c.Source, Name: c.Name, Bases: c.Bases,
			Ambiguous: c.Ambiguous, Counted: c.Counted, Reason: c.Reason,
		}
	}
	for i, t := range s.Report.Tables {
		out.Tables[i] = ToAPITable(t)
	}
	return out
}

// WriteSummary writes s as indented v1 JSON.
func WriteSummary(w io.Writer, s report.Summary) error {
	return EncodePretty(w, ToAPISummary(s))
}
