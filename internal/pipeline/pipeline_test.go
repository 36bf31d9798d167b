package pipeline

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctxcount/internal/contig"
	"ctxcount/internal/fasta"
	"ctxcount/internal/report"
)

var allWidths = []int{2, 3, 5}

func writeFA(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, cfg Config, sources ...string) Result {
	t.Helper()
	if cfg.Widths == nil {
		cfg.Widths = allWidths
	}
	res, err := Run(context.Background(), cfg, sources)
	require.NoError(t, err)
	return res
}

func randomGenome(seed int64, contigs map[string]int) string {
	rng := rand.New(rand.NewSource(seed))
	const alphabet = "ACGTACGTACGTacgtN"
	names := make([]string, 0, len(contigs))
	for n := range contigs {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString(">" + n + "\n")
		for i := 0; i < contigs[n]; i++ {
			b.WriteByte(alphabet[rng.Intn(len(alphabet))])
			if i%60 == 59 {
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRunDinucleotideScenario(t *testing.T) {
	fa := writeFA(t, "s.fa", ">chr1\nACGTACGT\n")
	res := run(t, Config{Widths: []int{2}}, fa)
	tb, ok := res.Report().Table(2)
	require.True(t, ok)
	assert.Equal(t, uint64(7), tb.Total)
	assert.Len(t, tb.Entries, 10)
	require.Len(t, res.Contigs, 1)
	assert.Equal(t, int64(8), res.Contigs[0].Bases)
	assert.True(t, res.Contigs[0].Counted)
}

func TestRunWindowsNeverCrossContigs(t *testing.T) {
	// "AC" + "GT" would create a CG window if contigs were joined
	fa := writeFA(t, "s.fa", ">a\nAC\n>b\nGT\n")
	res := run(t, Config{Widths: []int{2, 3}}, fa)
	di, _ := res.Report().Table(2)
	tri, _ := res.Report().Table(3)
	assert.Equal(t, uint64(2), di.Total)
	assert.Equal(t, uint64(2), di.Count("AC"))
	assert.Zero(t, di.Count("CG"))
	assert.Zero(t, tri.Total)
}

func TestRunExcludingChrMEqualsChr1Only(t *testing.T) {
	chr1 := randomGenome(1, map[string]int{"chr1": 5000})
	chrM := randomGenome(2, map[string]int{"chrM": 1600})
	both := writeFA(t, "both.fa", chr1+chrM)
	only := writeFA(t, "chr1.fa", chr1)

	excluded := run(t, Config{Filter: contig.New([]string{"chrM"}, nil)}, both)
	alone := run(t, Config{}, only)
	assert.Equal(t, alone.Report(), excluded.Report())

	require.Len(t, excluded.Contigs, 2)
	assert.False(t, excluded.Contigs[1].Counted)
	assert.Equal(t, contig.ReasonExcluded, excluded.Contigs[1].Reason)
	assert.Equal(t, int64(1600), excluded.Contigs[1].Bases)

	included := run(t, Config{Filter: contig.New(nil, []string{"chr1"})}, both)
	assert.Equal(t, alone.Report(), included.Report())
}

func TestRunExclusionIsSubtractive(t *testing.T) {
	g := randomGenome(3, map[string]int{"chr1": 3000, "chr2": 2000, "chrX": 1500})
	fa := writeFA(t, "g.fa", g)
	full := run(t, Config{}, fa).Report()

	perContig := map[string]report.Report{}
	for _, name := range []string{"chr1", "chr2", "chrX"} {
		perContig[name] = run(t, Config{Filter: contig.New(nil, []string{name})}, fa).Report()
	}

	noX := run(t, Config{Filter: contig.New([]string{"chrX"}, nil)}, fa).Report()
	for _, w := range allWidths {
		f, _ := full.Table(w)
		n, _ := noX.Table(w)
		x, _ := perContig["chrX"].Table(w)
		assert.Equal(t, f.Total-x.Total, n.Total, "width %d", w)
		for i := range f.Entries {
			assert.Equal(t, f.Entries[i].Count-x.Entries[i].Count, n.Entries[i].Count)
		}
	}

	ab := run(t, Config{Filter: contig.New([]string{"chr2", "chrX"}, nil)}, fa).Report()
	ba := run(t, Config{Filter: contig.New([]string{"chrX", "chr2"}, nil)}, fa).Report()
	assert.Equal(t, ab, ba)
}

func TestRunConcatenationProperty(t *testing.T) {
	a := randomGenome(4, map[string]int{"a": 2500})
	b := randomGenome(5, map[string]int{"b": 700})
	c := randomGenome(6, map[string]int{"c": 3})
	combined := run(t, Config{}, writeFA(t, "abc.fa", a+b+c)).Report()

	var parts []report.Report
	for i, s := range []string{a, b, c} {
		parts = append(parts, run(t, Config{}, writeFA(t, string(rune('a'+i))+".fa", s)).Report())
	}
	summed, err := report.Sum(parts...)
	require.NoError(t, err)
	assert.Equal(t, combined, summed)

	multi := run(t, Config{},
		writeFA(t, "a2.fa", a), writeFA(t, "b2.fa", b), writeFA(t, "c2.fa", c)).Report()
	assert.Equal(t, combined, multi)
}

func TestRunThreadsAndChunkingDoNotChangeCounts(t *testing.T) {
	fa := writeFA(t, "g.fa", randomGenome(7, map[string]int{"x": 20000, "y": 333, "z": 4}))
	serial := run(t, Config{Threads: 1}, fa)
	for _, cfg := range []Config{
		{Threads: 4},
		{Threads: 3, ChunkSize: 5},
		{Threads: 8, ChunkSize: 97},
		{Threads: 2, ChunkSize: 4096},
	} {
		got := run(t, cfg, fa)
		assert.Equal(t, serial.Report(), got.Report(), "threads=%d chunk=%d", cfg.Threads, cfg.ChunkSize)
		assert.Equal(t, serial.Contigs, got.Contigs)
	}
}

func TestRunCountsAmbiguousBases(t *testing.T) {
	fa := writeFA(t, "n.fa", ">a\nACNNT\n>b\nNNNN\n")
	res := run(t, Config{ChunkSize: 5}, fa)
	require.Len(t, res.Contigs, 2)
	assert.Equal(t, int64(2), res.Contigs[0].Ambiguous)
	assert.Equal(t, int64(4), res.Contigs[1].Ambiguous)
}

func TestRunParseErrorFailsWholeRun(t *testing.T) {
	good := writeFA(t, "good.fa", ">a\nACGT\n")
	bad := writeFA(t, "bad.fa", ">b\nACGT\nAC?T\n")
	_, err := Run(context.Background(), Config{Widths: allWidths, Threads: 2}, []string{good, bad})
	var pe *fasta.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.Source)
	assert.Equal(t, "b", pe.Contig)
	assert.Equal(t, 3, pe.Line)
}

func TestRunMissingInput(t *testing.T) {
	_, err := Run(context.Background(), Config{Widths: allWidths}, []string{filepath.Join(t.TempDir(), "none.fa")})
	var ie *fasta.InputError
	assert.ErrorAs(t, err, &ie)
}

func TestRunRejectsBadWidths(t *testing.T) {
	fa := writeFA(t, "s.fa", ">a\nACGT\n")
	_, err := Run(context.Background(), Config{Widths: []int{4}}, []string{fa})
	assert.Error(t, err)
}

func TestRunCanceled(t *testing.T) {
	fa := writeFA(t, "s.fa", ">a\n"+strings.Repeat("ACGT", 1000)+"\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, Config{Widths: allWidths, Threads: 2}, []string{fa})
	assert.True(t, IsCanceled(err))
	assert.Nil(t, res.Counter)
}
