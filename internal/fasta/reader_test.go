package fasta

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contigSeq struct {
	name   string
	seq    string
	chunks int
}

// collect reassembles contigs from chunks, checking the carry-over invariants.
func collect(t *testing.T, in string, opt Options) []contigSeq {
	t.Helper()
	var out []contigSeq
	err := StreamCtx(context.Background(), strings.NewReader(in), "test.fa", opt, func(c Chunk) error {
		if c.First() {
			require.Zero(t, c.Lead, "first chunk of %s carries bases", c.Contig)
			out = append(out, contigSeq{name: c.Contig})
		}
		cur := &out[len(out)-1]
		require.Equal(t, cur.name, c.Contig)
		require.Equal(t, int64(len(cur.seq)), c.Offset)
		if c.Lead > 0 {
			require.True(t, strings.HasSuffix(cur.seq, string(c.Seq[:c.Lead])), "lead must repeat previous tail")
		}
		cur.seq += string(c.New())
		cur.chunks++
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestReaderBasic(t *testing.T) {
	got := collect(t, ">chr1 some description\nACGT\nacgt\n\n>chr2\nNNnn\n", Options{})
	require.Len(t, got, 2)
	assert.Equal(t, "chr1", got[0].name)
	assert.Equal(t, "ACGTACGT", got[0].seq)
	assert.Equal(t, "chr2", got[1].name)
	assert.Equal(t, "NNNN", got[1].seq)
}

func TestReaderCRLFAndNoTrailingNewline(t *testing.T) {
	got := collect(t, ">a\r\nAC\r\nGT", Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].name)
	assert.Equal(t, "ACGT", got[0].seq)
}

func TestReaderEmptyContigStillReported(t *testing.T) {
	got := collect(t, ">empty\n>full\nAC\n>tail", Options{})
	require.Len(t, got, 3)
	assert.Equal(t, "", got[0].seq)
	assert.Equal(t, "AC", got[1].seq)
	assert.Equal(t, "tail", got[2].name)
	assert.Equal(t, 1, got[0].chunks)
}

func TestReaderSkipsCommentLines(t *testing.T) {
	got := collect(t, ";old style comment\n>x\nAC\n;note\nGT\n", Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "ACGT", got[0].seq)
}

func TestReaderChunking(t *testing.T) {
	seq := strings.Repeat("ACGTTGCA", 100)
	in := ">c\n" + seq[:333] + "\n" + seq[333:] + "\n"
	for _, size := range []int{1, 2, 5, 64, 10000} {
		got := collect(t, in, Options{ChunkSize: size, Lead: 4})
		require.Len(t, got, 1)
		assert.Equal(t, seq, got[0].seq, "chunk size %d", size)
		if size < len(seq) {
			assert.Greater(t, got[0].chunks, 1, "chunk size %d", size)
		}
	}
}

func TestReaderLongSingleLine(t *testing.T) {
	seq := strings.Repeat("A", 3*readBufSize+17)
	got := collect(t, ">long\n"+seq+"\n", Options{ChunkSize: readBufSize / 2, Lead: 4})
	require.Len(t, got, 1)
	assert.Equal(t, len(seq), len(got[0].seq))
}

func TestReaderLongHeader(t *testing.T) {
	name := strings.Repeat("n", 2*readBufSize)
	got := collect(t, ">"+name+" desc\nAC\n", Options{})
	require.Len(t, got, 1)
	assert.Equal(t, name, got[0].name)
}

func TestReaderParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		line   int
		contig string
		msg    string
	}{
		{"invalid base", ">chr1\nACGT\nACXT\n", 3, "chr1", "invalid character 'X' at column 3"},
		{"gap symbol", ">chr1\nAC-T\n", 2, "chr1", "invalid character '-'"},
		{"data before header", "ACGT\n>chr1\nAC\n", 1, "", "before the first header"},
		{"empty name", ">\nACGT\n", 1, "", "without a contig name"},
		{"not fasta", "<html>\n", 1, "", "invalid character '<'"},
		{"space inside line", ">a\nAC GT\n", 2, "a", "invalid character ' ' at column 3"},
		{"tab inside line", ">a\nACGT\n\tAC\n", 3, "a", "invalid character '\\t' at column 1"},
		{"trailing blank", ">a\nACGT \n", 2, "a", "invalid character ' ' at column 5"},
		{"empty input", "", 0, "", "no FASTA records"},
		{"blank only", "\n\n", 2, "", "no FASTA records"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StreamCtx(context.Background(), strings.NewReader(tt.in), "in.fa", Options{}, func(Chunk) error { return nil })
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "in.fa", pe.Source)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.contig, pe.Contig)
			assert.Contains(t, pe.Error(), tt.msg)
		})
	}
}

func TestReaderIUPACIsAccepted(t *testing.T) {
	got := collect(t, ">x\nRYSWKMBDHVNrysw\n", Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "RYSWKMBDHVNRYSW", got[0].seq)
}

func TestReaderErrorsAreSticky(t *testing.T) {
	rd := NewReader(strings.NewReader(">a\nA!\n"), "x", Options{})
	_, err := rd.Next()
	require.Error(t, err)
	_, err2 := rd.Next()
	assert.Same(t, err, err2)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReaderWrapsReadFailures(t *testing.T) {
	err := StreamCtx(context.Background(), failingReader{}, "bad", Options{}, func(Chunk) error { return nil })
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "bad", ie.Source)
}

func TestStreamStopsOnEmitError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := StreamCtx(context.Background(), strings.NewReader(">a\nA\n>b\nC\n"), "x", Options{}, func(Chunk) error {
		n++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestStreamCtxCancelImmediatelyYieldsNoChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := StreamCtx(ctx, strings.NewReader(">s\nACGT\n"), "x", Options{}, func(Chunk) error {
		n++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

var _ io.Reader = failingReader{}
