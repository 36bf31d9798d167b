package writers

import (
	"bufio"
	"io"
	"strconv"

	"ctxcount/internal/config"
	"ctxcount/internal/report"
)

// TSVHeader is the first line of every TSV table.
const TSVHeader = "context\tcount"

func init() { Register(config.FormatTSV, WriteTSV) }

// WriteTSV writes a header line and one "context<TAB>count" row per entry.
func WriteTSV(w io.Writer, t report.Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(TSVHeader + "\n"); err != nil {
		return err
	}
	var num [20]byte
	for _, e := range t.Entries {
		bw.WriteString(e.Context)
		bw.WriteByte('\t')
		bw.Write(strconv.AppendUint(num[:0], e.Count, 10))
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
