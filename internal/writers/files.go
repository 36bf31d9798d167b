// internal/writers/files.go
package writers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ctxcount/internal/config"
	"ctxcount/internal/report"
	"ctxcount/pkg/api"
)

const filePerm = 0o644

// FileName is the output file name of one table: <prefix>_<name>.<format>.
func FileName(prefix string, t report.Table, format string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, t.Name, format)
}

// Outputs stages result files next to their destinations and publishes them
// together. Nothing reaches a final path until Commit, and a failed Commit
// undoes what it already renamed, so a failed run leaves no output behind.
// The zero value is ready to use.
type Outputs struct {
	files   []stagedFile
	created []string // folders made while staging, parents first
}

type stagedFile struct{ tmp, dest string }

// StageTables stages every table of r for dir, one file per width.
func (o *Outputs) StageTables(ctx context.Context, dir, prefix, format string, r report.Report) error {
	if _, ok := TableWriters[format]; !ok {
		return fmt.Errorf("unknown table format %q (no writer registered)", format)
	}
	if err := o.mkdirAll(dir); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}
	for _, t := range r.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmp, err := stage(dir, func(w io.Writer) error { return WriteTable(format, w, t) })
		if err != nil {
			return fmt.Errorf("write %s table: %w", t.Name, err)
		}
		o.files = append(o.files, stagedFile{tmp: tmp, dest: filepath.Join(dir, FileName(prefix, t, format))})
	}
	return nil
}

// StageSummary stages the v1 JSON summary for path.
func (o *Outputs) StageSummary(path string, s report.Summary) error {
	dir := filepath.Dir(path)
	if err := o.mkdirAll(dir); err != nil {
		return fmt.Errorf("create summary folder: %w", err)
	}
	tmp, err := stage(dir, func(w io.Writer) error { return WriteSummary(w, s) })
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	o.files = append(o.files, stagedFile{tmp: tmp, dest: path})
	return nil
}

// Commit renames every staged file into place and returns the final paths in
// staging order. On failure the files already renamed are removed again and
// the remaining temp files discarded.
func (o *Outputs) Commit() ([]string, error) {
	paths := make([]string, 0, len(o.files))
	for i, f := range o.files {
		if err := os.Rename(f.tmp, f.dest); err != nil {
			for _, p := range paths {
				_ = os.Remove(p)
			}
			o.files = o.files[i:]
			o.Discard()
			return nil, err
		}
		paths = append(paths, f.dest)
	}
	o.files, o.created = nil, nil
	return paths, nil
}

// Discard removes all staged temp files and any folder staging created.
// It is a no-op after a successful Commit.
func (o *Outputs) Discard() {
	for _, f := range o.files {
		_ = os.Remove(f.tmp)
	}
	for i := len(o.created) - 1; i >= 0; i-- {
		_ = os.Remove(o.created[i]) // only succeeds while empty
	}
	o.files, o.created = nil, nil
}

// mkdirAll is os.MkdirAll that remembers which folders it had to create.
func (o *Outputs) mkdirAll(dir string) error {
	var missing []string
	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	for i := len(missing) - 1; i >= 0; i-- {
		o.created = append(o.created, missing[i])
	}
	return os.MkdirAll(dir, 0o755)
}

// stage writes through fn into a fresh temp file in dir and returns its path.
func stage(dir string, fn func(io.Writer) error) (string, error) {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, filePerm)

	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	bw := bufio.NewWriter(tmp)
	if err := fn(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

// PrintReport writes all tables to w. TSV tables are preceded by a
// "# <name>" line and separated by blank lines; JSON is one array.
func PrintReport(w io.Writer, format string, r report.Report) error {
	if format == config.FormatJSON {
		tables := make([]api.CountTableV1, len(r.Tables))
		for i, t := range r.Tables {
			tables[i] = ToAPITable(t)
		}
		return EncodePretty(w, tables)
	}
	for i, t := range r.Tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %s\n", t.Name); err != nil {
			return err
		}
		if err := WriteTable(format, w, t); err != nil {
			return err
		}
	}
	return nil
}
