// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Defaults for Options.
const (
	DefaultChunkSize = 1 << 20
	readBufSize      = 64 << 10
)

// Chunk is a span of one contig's sequence. Seq[:Lead] repeats the tail of the
// previous chunk of the same contig so windows spanning the seam can be formed;
// Seq[Lead:] are new bases starting at contig offset Offset. Bases are upper
// case. Last marks the end of the contig; a contig without bases still yields
// one empty Last chunk.
type Chunk struct {
	Source  string
	Contig  string
	Ordinal int // 0-based record index within Source
	Offset  int64
	Lead    int
	Seq     []byte
	Last    bool
}

// New returns the bases that were not carried over.
func (c Chunk) New() []byte { return c.Seq[c.Lead:] }

// First reports whether this is the first chunk of its contig.
func (c Chunk) First() bool { return c.Offset == 0 }

// Options controls chunking.
type Options struct {
	ChunkSize int // new bases per chunk, <= 0 means DefaultChunkSize
	Lead      int // bases carried between chunks, typically widest window - 1
}

// byte classes
const (
	clsInvalid = iota
	clsBase
	clsEOL
)

var (
	class [256]uint8
	fold  [256]byte
)

func init() {
	for _, b := range []byte("ACGTRYSWKMBDHVN") {
		lo := b + 'a' - 'A'
		class[b], class[lo] = clsBase, clsBase
		fold[b], fold[lo] = b, b
	}
	// blanks inside a sequence line are invalid like any other symbol
	class['\r'], class['\n'] = clsEOL, clsEOL
}

// Reader pulls Chunks from a FASTA stream without holding whole lines or
// contigs in memory.
type Reader struct {
	br     *bufio.Reader
	source string
	opt    Options

	line    int  // 1-based number of the line being read
	col     int  // bytes of the current line already consumed
	midLine bool // previous fragment did not end a line
	eof     bool
	err     error

	inHeader  bool
	inComment bool
	hdr       []byte

	pending    string
	hasPending bool

	open    bool
	name    string
	ordinal int
	offset  int64
	buf     []byte
	carry   int
}

// NewReader wraps r. source names the input in errors.
func NewReader(r io.Reader, source string, opt Options) *Reader {
	if opt.ChunkSize <= 0 {
		opt.ChunkSize = DefaultChunkSize
	}
	if opt.Lead < 0 {
		opt.Lead = 0
	}
	return &Reader{
		br:      bufio.NewReaderSize(r, readBufSize),
		source:  source,
		opt:     opt,
		ordinal: -1,
		buf:     make([]byte, 0, opt.ChunkSize+opt.Lead+readBufSize),
	}
}

// Next returns the next chunk, io.EOF after the last one, or a *ParseError /
// *InputError. Errors are sticky.
func (r *Reader) Next() (Chunk, error) {
	if r.err != nil {
		return Chunk{}, r.err
	}
	for {
		if r.hasPending && !r.open {
			r.open, r.hasPending = true, false
			r.name = r.pending
			r.ordinal++
			r.offset = 0
			r.buf = r.buf[:0]
			r.carry = 0
		}
		if r.open && len(r.buf)-r.carry >= r.opt.ChunkSize {
			return r.cut(false), nil
		}
		if r.hasPending && r.open {
			r.open = false
			return r.cut(true), nil
		}
		if r.eof {
			if r.inHeader {
				if err := r.endHeader(); err != nil {
					return Chunk{}, err
				}
				continue
			}
			if r.open {
				r.open = false
				return r.cut(true), nil
			}
			if r.ordinal < 0 {
				r.err = &ParseError{Source: r.source, Line: r.line, Msg: "no FASTA records found"}
				return Chunk{}, r.err
			}
			r.err = io.EOF
			return Chunk{}, io.EOF
		}
		if err := r.step(); err != nil {
			return Chunk{}, err
		}
	}
}

// step consumes one line fragment.
func (r *Reader) step() error {
	frag, err := r.br.ReadSlice('\n')
	switch {
	case err == nil, errors.Is(err, bufio.ErrBufferFull):
	case errors.Is(err, io.EOF):
		r.eof = true
	default:
		r.err = &InputError{Source: r.source, Err: err}
		return r.err
	}
	atStart := !r.midLine
	ends := len(frag) > 0 && frag[len(frag)-1] == '\n'
	r.midLine = !ends
	if atStart && len(frag) > 0 {
		r.line++
		r.col = 0
		r.inComment = false
		switch frag[0] {
		case '>':
			r.inHeader = true
			r.hdr = append(r.hdr[:0], frag[1:]...)
			if ends {
				return r.endHeader()
			}
			return nil
		case ';':
			r.inComment = true
			return nil
		}
	}
	switch {
	case r.inHeader:
		r.hdr = append(r.hdr, frag...)
		if ends {
			return r.endHeader()
		}
	case r.inComment:
	default:
		err := r.appendSeq(frag)
		r.col += len(frag)
		return err
	}
	return nil
}

func (r *Reader) endHeader() error {
	r.inHeader = false
	id := parseHeaderID(r.hdr)
	if id == "" {
		r.err = &ParseError{Source: r.source, Line: r.line, Msg: "header without a contig name"}
		return r.err
	}
	r.pending, r.hasPending = id, true
	return nil
}

func (r *Reader) appendSeq(frag []byte) error {
	for i, b := range frag {
		switch class[b] {
		case clsEOL:
			continue
		case clsBase:
			if !r.open {
				r.err = &ParseError{Source: r.source, Line: r.line, Msg: "sequence data before the first header"}
				return r.err
			}
			r.buf = append(r.buf, fold[b])
		default:
			contig := ""
			if r.open {
				contig = r.name
			}
			r.err = &ParseError{
				Source: r.source, Contig: contig, Line: r.line,
				Msg: fmt.Sprintf("invalid character %q at column %d", b, r.col+i+1),
			}
			return r.err
		}
	}
	return nil
}

func (r *Reader) cut(last bool) Chunk {
	c := Chunk{
		Source:  r.source,
		Contig:  r.name,
		Ordinal: r.ordinal,
		Offset:  r.offset,
		Lead:    r.carry,
		Seq:     append([]byte(nil), r.buf...), // consumers own the copy
		Last:    last,
	}
	r.offset += int64(len(r.buf) - r.carry)
	keep := r.opt.Lead
	if keep > len(r.buf) {
		keep = len(r.buf)
	}
	n := copy(r.buf, r.buf[len(r.buf)-keep:])
	r.buf = r.buf[:n]
	r.carry = n
	return c
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
