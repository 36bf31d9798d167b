package fasta

import "fmt"

// InputError reports a source that could not be opened or read.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string { return fmt.Sprintf("input %s: %v", e.Source, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// ParseError reports content that is not valid FASTA. Line is 1-based;
// Contig is empty when the problem precedes the first header.
type ParseError struct {
	Source string
	Contig string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Contig == "" {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: contig %s: %s", e.Source, e.Line, e.Contig, e.Msg)
}
