// pkg/api/counts_v1.go
package api

// ContextCountV1 is one canonical context and how often it was observed.
type ContextCountV1 struct {
	Context string `json:"context"`
	Count   uint64 `json:"count"`
}

// CountTableV1 is the stable JSON schema of one width's table.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type CountTableV1 struct {
	Width  int              `json:"width"`
	Name   string           `json:"name"` // "dinucleotide" | "trinucleotide" | "pentanucleotide"
	Total  uint64           `json:"total"`
	Counts []ContextCountV1 `json:"counts"`
}

// ContigV1 describes one FASTA record in a run summary.
type ContigV1 struct {
	Source    string `json:"source"`
	Name      string `json:"name"`
	Bases     int64  `json:"bases"`
	Ambiguous int64  `json:"ambiguous,omitempty"`
	Counted   bool   `json:"counted"`
	Reason    string `json:"reason,omitempty"`
}

// SummaryV1 is the stable schema written by --summary.
type SummaryV1 struct {
	Version      string         `json:"version"`
	Inputs       []string       `json:"inputs"`
	Widths       []int          `json:"widths"`
	Skip         []string       `json:"skip,omitempty"`
	Include      []string       `json:"include,omitempty"`
	Started      string         `json:"started"` // RFC 3339
	ElapsedMS    int64          `json:"elapsed_ms"`
	CountedBases int64          `json:"counted_bases"`
	Contigs      []ContigV1     `json:"contigs"`
	Tables       []CountTableV1 `json:"tables"`
}
