// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"ctxcount/internal/contig"
	"ctxcount/internal/counter"
	"ctxcount/internal/fasta"
	"ctxcount/internal/report"
)

// Config controls the counting pipeline.
type Config struct {
	Widths    []int
	Threads   int // number of worker goroutines (>=1)
	ChunkSize int // new bases per work unit; 0 means fasta.DefaultChunkSize
	Filter    contig.Filter

	// Tap wraps each raw input stream, e.g. for progress reporting.
	Tap func(io.Reader) io.Reader
	Log logrus.FieldLogger
}

// Result is the outcome of a complete run.
type Result struct {
	Counter *counter.Counter
	Contigs []report.ContigStat
}

// Report is shorthand for r.Counter.Report().
func (r Result) Report() report.Report { return r.Counter.Report() }

type job struct {
	contig int // index into the run's contig list
	chunk  fasta.Chunk
}

type partial struct {
	c         *counter.Counter
	ambiguous map[int]int64
}

// Run counts contexts over every source in order. It returns the first error
// encountered, including context cancellation; no partial Result is returned.
func Run(ctx context.Context, cfg Config, sources []string) (Result, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	total, err := counter.New(cfg.Widths)
	if err != nil {
		return Result{}, err
	}
	opt := fasta.Options{ChunkSize: cfg.ChunkSize, Lead: total.MaxWidth() - 1}

	parts := make([]partial, cfg.Threads)
	for i := range parts {
		c, _ := counter.New(cfg.Widths) // widths already validated above
		parts[i] = partial{c: c, ambiguous: map[int]int64{}}
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, cfg.Threads*2)

	for i := range parts {
		p := &parts[i]
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case j, ok := <-jobs:
					if !ok {
						return nil
					}
					st := p.c.Scan(j.chunk.Seq, j.chunk.Lead)
					p.ambiguous[j.contig] += st.Ambiguous
				}
			}
		})
	}

	var contigs []report.ContigStat
	g.Go(func() error {
		defer close(jobs)
		for _, src := range sources {
			srcLog := log.WithField("source", src)
			srcLog.Info("reading")
			err := fasta.StreamPathCtx(gctx, src, opt, cfg.Tap, func(c fasta.Chunk) error {
				if c.First() {
					counted, reason := cfg.Filter.Decide(c.Contig)
					contigs = append(contigs, report.ContigStat{
						Source: src, Name: c.Contig, Counted: counted, Reason: reason,
					})
				}
				cs := &contigs[len(contigs)-1]
				cs.Bases = c.Offset + int64(len(c.New()))
				if c.Last {
					entry := srcLog.WithFields(logrus.Fields{"contig": cs.Name, "bases": cs.Bases})
					if cs.Counted {
						entry.Info("contig counted")
					} else {
						entry.WithField("reason", cs.Reason).Info("contig skipped")
					}
				}
				if !cs.Counted {
					return nil
				}
				srcLog.WithFields(logrus.Fields{"contig": c.Contig, "offset": c.Offset, "len": len(c.New())}).Debug("chunk")
				select {
				case jobs <- job{contig: len(contigs) - 1, chunk: c}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	for _, p := range parts {
		if err := total.Merge(p.c); err != nil {
			return Result{}, err
		}
		for i, n := range p.ambiguous {
			contigs[i].Ambiguous += n
		}
	}
	return Result{Counter: total, Contigs: contigs}, nil
}

// IsCanceled reports whether err stems from context cancellation.
func IsCanceled(err error) bool { return errors.Is(err, context.Canceled) }
