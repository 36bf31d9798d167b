// internal/fasta/stream.go
package fasta

import (
	"context"
	"errors"
	"io"
)

// StreamCtx parses FASTA from r and hands each chunk to emit, in order.
// It returns promptly with ctx.Err() once ctx is done, the first error from
// emit, or a *ParseError / *InputError from the stream.
func StreamCtx(ctx context.Context, r io.Reader, source string, opt Options, emit func(Chunk) error) error {
	rd := NewReader(r, source, opt)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := emit(c); err != nil {
			return err
		}
	}
}

// StreamPathCtx opens path (gzip and "-" aware, see Open) and streams it.
func StreamPathCtx(ctx context.Context, path string, opt Options, tap func(io.Reader) io.Reader, emit func(Chunk) error) error {
	rc, err := Open(path, tap)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamCtx(ctx, rc, path, opt, emit)
}
