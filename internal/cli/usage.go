// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"effectoro/internal/version"
)

// Usage installs the effectoro help text on fs.
func Usage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – secreted oomycete effector classifier\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s [flags] -i proteins.fasta\n", name)
		fmt.Fprintf(out, "       %s [flags] proteins.fasta\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -i, --input_fasta file      Protein FASTA (.fasta .fas .fa .fna .ffn .faa .mpfa .frn, optionally .gz) or '-' for STDIN [*]")
		fmt.Fprintf(out, "      --multiline             Sequences may span several lines [%s]\n", def("multiline"))

		fmt.Fprintln(out, "\nModel:")
		fmt.Fprintln(out, "  -m, --model_path file       Trained forest (JSON); empty uses the bundled RF_88_best")
		fmt.Fprintf(out, "      --batch-size int        Rows per extract/predict batch (0=all) [%s]\n", def("batch-size"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output_dir dir        Output directory (created if missing) [%s]\n", def("output_dir"))
		fmt.Fprintf(out, "      --json                  Also write <name>.effector_classification_table.json [%s]\n", def("json"))
		fmt.Fprintln(out, "      --metrics-file file     Write run metrics in Prometheus text format")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --suppress_prints       Suppress progress and summary output [%s]\n", def("suppress_prints"))
		fmt.Fprintf(out, "      --log-level string      debug | info | warn | error [%s]\n", def("log-level"))
		fmt.Fprintln(out, "      --log-file file         Append JSON log entries (warnings included) to file")
		fmt.Fprintln(out, "      --examples              Print usage examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")

		fmt.Fprintln(out, "\nEnvironment: EFFECTORO_MODEL_PATH, EFFECTORO_OUTPUT_DIR, EFFECTORO_BATCH_SIZE, EFFECTORO_MULTILINE,")
		fmt.Fprintln(out, "EFFECTORO_LOG_LEVEL, EFFECTORO_LOG_ENV, EFFECTORO_LOG_FILE, EFFECTORO_METRICS_FILE (.env is read). Flags win.")
	}
}

// PrintExamples prints a short quickstart followed by a pointer to --help.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	_, _ = fmt.Fprintf(out, "  # classify with the bundled model, results in ./effectoro_results\n")
	_, _ = fmt.Fprintf(out, "  %s -i secretome.fasta\n\n", name)
	_, _ = fmt.Fprintf(out, "  # custom model and output directory, quiet\n")
	_, _ = fmt.Fprintf(out, "  %s -i secretome.faa -m models/rf.json -o out -q\n\n", name)
	_, _ = fmt.Fprintf(out, "  # gzipped multi-line FASTA from a pipe, with JSON and metrics\n")
	_, _ = fmt.Fprintf(out, "  zcat proteome.fa.gz | %s --multiline --json --metrics-file run.prom -\n", name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
