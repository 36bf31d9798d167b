package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"ctxcount/internal/version"
	"ctxcount/internal/writers"
)

// Usage prints the grouped help text, reading defaults back from fs.
func Usage(out io.Writer, fs *flag.FlagSet, name string) {
	def := func(flagName string) string {
		if f := fs.Lookup(flagName); f != nil {
			return f.DefValue
		}
		return ""
	}

	fmt.Fprintf(out, "%s – strand-collapsed sequence context counter\n\n", name)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
	fmt.Fprintf(out, "Usage:\n  %s [flags] <ref.fa[.gz]|-> [more.fa ...]\n", name)

	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -s, --sequences file        FASTA file(s) (repeatable) or '-' for STDIN")
	fmt.Fprintf(out, "  -w, --widths list           Context widths, subset of 2,3,5 [%s]\n", def("widths"))
	fmt.Fprintln(out, "      --skip list             Contigs to exclude (comma separated, repeatable)")
	fmt.Fprintln(out, "      --include list          Count only these contigs (conflicts with --skip)")

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -d, --outdir dir            Output folder [%s]\n", def("outdir"))
	fmt.Fprintln(out, "      --prefix name           Output file prefix [stem of first input]")
	fmt.Fprintf(out, "  -o, --output string         Output: %s [%s]\n", strings.Join(writers.Formats(), " | "), def("output"))
	fmt.Fprintf(out, "  -p, --print-counts          Also print tables to stdout [%s]\n", def("print-counts"))
	fmt.Fprintln(out, "      --summary file          Write a JSON run summary")

	fmt.Fprintln(out, "\nPerformance:")
	fmt.Fprintf(out, "  -t, --threads int           Worker goroutines (0=all CPUs) [%s]\n", def("threads"))
	fmt.Fprintf(out, "      --chunk-size int        Bases per work unit [%s]\n", def("chunk-size"))
	fmt.Fprintf(out, "      --progress              Show a progress bar on stderr [%s]\n", def("progress"))

	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintf(out, "      --log-level string      panic|fatal|error|warn|info|debug|trace [%s]\n", def("log-level"))
	fmt.Fprintf(out, "  -q, --quiet                 Only log warnings and errors [%s]\n", def("quiet"))
	fmt.Fprintln(out, "  -v, --version               Print version and exit")
	fmt.Fprintln(out, "  -h, --help                  Show this help and exit")

	fmt.Fprintln(out, "\nEnvironment (flags win; a ./.env file is read if present):")
	fmt.Fprintln(out, "  CTXCOUNT_THREADS, CTXCOUNT_CHUNK_SIZE, CTXCOUNT_OUTDIR,")
	fmt.Fprintln(out, "  CTXCOUNT_LOG_LEVEL, CTXCOUNT_SKIP, CTXCOUNT_WIDTHS")
}
