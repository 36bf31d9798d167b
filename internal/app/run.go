// internal/app/run.go
package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"

	"ctxcount/internal/config"
	"ctxcount/internal/contig"
	"ctxcount/internal/counter"
	"ctxcount/internal/fasta"
	"ctxcount/internal/pipeline"
	"ctxcount/internal/report"
	"ctxcount/internal/version"
	"ctxcount/internal/writers"
)

// NewLogger builds the stderr logger for a run. quiet caps the level at warn.
func NewLogger(w io.Writer, level string, quiet bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, &config.ConfigError{Field: "--log-level", Msg: err.Error()}
	}
	if quiet && lvl > logrus.WarnLevel {
		lvl = logrus.WarnLevel
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

// DefaultPrefix derives an output prefix from the first input: its base name
// without a .gz suffix and without the FASTA extension. Stdin is "stdin".
func DefaultPrefix(inputs []string) string {
	if len(inputs) == 0 || inputs[0] == fasta.Stdin {
		return "stdin"
	}
	name := strings.TrimSuffix(filepath.Base(inputs[0]), ".gz")
	if stem := strings.TrimSuffix(name, filepath.Ext(name)); stem != "" {
		return stem
	}
	return name
}

// exitCode maps a run error onto the CLI's exit codes.
func exitCode(err error) int {
	var ce *config.ConfigError
	var we *counter.UnsupportedWidthError
	switch {
	case err == nil:
		return ExitOK
	case pipeline.IsCanceled(err):
		return ExitCanceled
	case errors.As(err, &ce), errors.As(err, &we):
		return ExitUsage
	default:
		return ExitFailure
	}
}

func execute(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) int {
	log, err := NewLogger(stderr, cfg.LogLevel, cfg.Quiet)
	if err != nil {
		_, _ = io.WriteString(stderr, "error: "+err.Error()+"\n")
		return ExitUsage
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix(cfg.Inputs)
	}
	filter := contig.New(cfg.Skip, cfg.Include)
	started := time.Now()

	pcfg := pipeline.Config{
		Widths:    cfg.Widths,
		Threads:   cfg.EffectiveThreads(),
		ChunkSize: cfg.ChunkSize,
		Filter:    filter,
		Log:       log,
	}
	if cfg.Progress {
		bar := startProgress(stderr, cfg.Inputs)
		defer bar.Finish()
		pcfg.Tap = func(r io.Reader) io.Reader { return bar.NewProxyReader(r) }
	}

	log.WithFields(logrus.Fields{
		"inputs":  len(cfg.Inputs),
		"widths":  cfg.Widths,
		"threads": pcfg.Threads,
	}).Info("counting contexts")

	res, err := pipeline.Run(ctx, pcfg, cfg.Inputs)
	if err != nil {
		if code := exitCode(err); code == ExitCanceled {
			log.Warn("canceled; no output written")
			return code
		}
		log.WithError(err).Error("run failed; no output written")
		return exitCode(err)
	}
	warnUnseen(log, filter, res.Contigs)

	rep := res.Report()
	var out writers.Outputs
	defer out.Discard()
	if err := out.StageTables(ctx, cfg.OutDir, cfg.Prefix, cfg.Format, rep); err != nil {
		log.WithError(err).Error("writing tables; no output written")
		return exitCode(err)
	}
	if cfg.SummaryPath != "" {
		sum := report.Summary{
			Version: version.Version,
			Inputs:  cfg.Inputs,
			Widths:  cfg.Widths,
			Skip:    filter.Excluded(),
			Include: filter.Included(),
			Contigs: res.Contigs,
			Report:  rep,
			Started: started,
			Elapsed: time.Since(started),
		}
		if err := out.StageSummary(cfg.SummaryPath, sum); err != nil {
			log.WithError(err).Error("writing summary; no output written")
			return ExitFailure
		}
	}
	if err := ctx.Err(); err != nil {
		log.Warn("canceled; no output written")
		return ExitCanceled
	}
	paths, err := out.Commit()
	if err != nil {
		log.WithError(err).Error("publishing output; no output written")
		return ExitFailure
	}
	for i, p := range paths {
		if i < len(rep.Tables) {
			t := rep.Tables[i]
			log.WithFields(logrus.Fields{"file": p, "total": t.Total}).Infof("%s table written", t.Name)
		} else {
			log.WithField("file", p).Info("summary written")
		}
	}

	if cfg.PrintCounts {
		if err := writers.PrintReport(stdout, cfg.Format, rep); err != nil && !writers.IsBrokenPipe(err) {
			log.WithError(err).Error("printing tables")
			return ExitFailure
		}
	}
	log.WithField("elapsed", time.Since(started).Round(time.Millisecond)).Info("done")
	return ExitOK
}

func startProgress(w io.Writer, inputs []string) *pb.ProgressBar {
	var total int64
	for _, in := range inputs {
		total += fasta.Size(in)
	}
	return pb.New64(total).
		SetTemplate(pb.Full).
		SetWriter(w).
		Set(pb.Bytes, true).
		Start()
}

// warnUnseen flags --skip/--include names that matched no record, which
// usually means a naming mismatch such as "chrM" vs "MT".
func warnUnseen(log logrus.FieldLogger, f contig.Filter, seen []report.ContigStat) {
	names := make(map[string]bool, len(seen))
	for _, c := range seen {
		names[c.Name] = true
	}
	for _, list := range [][]string{f.Excluded(), f.Included()} {
		for _, n := range list {
			if !names[n] {
				log.WithField("contig", n).Warn("listed contig not found in any input")
			}
		}
	}
}
