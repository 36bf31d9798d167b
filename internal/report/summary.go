package report

import "time"

// ContigStat describes one FASTA record as it was streamed.
type ContigStat struct {
	Source    string
	Name      string
	Bases     int64
	Ambiguous int64 // only tallied for counted contigs
	Counted   bool
	Reason    string // why the contig was skipped
}

// Summary is the run-level record written by --summary.
type Summary struct {
	Version string
	Inputs  []string
	Widths  []int
	Skip    []string
	Include []string
	Contigs []ContigStat
	Report  Report
	Started time.Time
	Elapsed time.Duration
}

// CountedBases totals the bases of counted contigs.
func (s Summary) CountedBases() int64 {
	var n int64
	for _, c := range s.Contigs {
		if c.Counted {
			n += c.Bases
		}
	}
	return n
}
