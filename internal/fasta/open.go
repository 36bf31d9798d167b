// internal/fasta/open.go
package fasta

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader over the decompressed contents of path ("-" for stdin).
// gzip is detected by magic number (1F 8B), for files and stdin alike, or by a
// .gz suffix. tap, when non-nil, wraps the raw byte stream before
// decompression. Failures are *InputError.
func Open(path string, tap func(io.Reader) io.Reader) (io.ReadCloser, error) {
	var (
		raw    io.Reader
		closer io.Closer
	)
	if path == Stdin {
		raw, closer = os.Stdin, io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, &InputError{Source: path, Err: err}
		}
		raw, closer = fh, fh
	}
	if tap != nil {
		raw = tap(raw)
	}
	br := bufio.NewReaderSize(raw, readBufSize)
	sig, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = closer.Close()
		return nil, &InputError{Source: path, Err: err}
	}
	if (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, &InputError{Source: path, Err: err}
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
}

// Size returns the on-disk byte size of path, or 0 for stdin and unknowns.
func Size(path string) int64 {
	if path == Stdin {
		return 0
	}
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return 0
	}
	return st.Size()
}
