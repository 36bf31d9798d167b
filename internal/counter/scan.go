package counter

import "ctxcount/internal/canon"

// ScanStats describes the new bases of one scanned span.
type ScanStats struct {
	Bases     int64
	Ambiguous int64
}

// Scan counts every window of every configured width that ends at or after
// seq[lead]. The first lead bytes are context carried over from the previous
// span of the same contig; windows lying wholly inside them were already
// counted. Windows reaching before seq[0] are out of bounds and skipped.
func (c *Counter) Scan(seq []byte, lead int) ScanStats {
	var (
		st      ScanStats
		code    uint32
		lastBad = -1
	)
	if lead < 0 {
		lead = 0
	}
	for i, b := range seq {
		v := canon.BaseCode(b)
		if v < 0 {
			lastBad = i
		} else {
			code = code<<2 | uint32(v)
		}
		if i < lead {
			continue
		}
		st.Bases++
		if v < 0 {
			st.Ambiguous++
		}
		for _, t := range c.tables {
			start := i - t.Width + 1
			if start < 0 {
				continue
			}
			if lastBad >= start {
				t.Skipped++
				continue
			}
			t.Counts[t.ix.Slot(code)]++
			t.Windows++
		}
	}
	return st
}
