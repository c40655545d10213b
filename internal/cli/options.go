// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"effectoro/internal/cliutil"
	"effectoro/internal/config"
)

// ErrExamples is returned by ParseArgs when --examples was given. Callers print
// Examples and exit 0.
var ErrExamples = errors.New("examples requested")

// LogLevels accepted by --log-level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Input     string
	Multiline bool

	// Model
	ModelPath string
	BatchSize int

	// Output
	OutputDir   string
	JSON        bool
	MetricsFile string

	// Logging
	Quiet    bool
	LogLevel string
	LogEnv   string
	LogFile  string

	Version bool
}

// Defaults seeds Options from environment config; flags then override it.
func Defaults(cfg *config.Config) Options {
	if cfg == nil {
		return Options{OutputDir: "effectoro_results", LogLevel: "info", LogEnv: "development"}
	}
	return Options{
		Multiline:   cfg.Multiline,
		ModelPath:   cfg.ModelPath,
		BatchSize:   cfg.BatchSize,
		OutputDir:   cfg.OutputDir,
		MetricsFile: cfg.MetricsFile,
		LogLevel:    cfg.LogLevel,
		LogEnv:      cfg.LogEnv,
		LogFile:     cfg.LogFile,
	}
}

// Register wires every flag onto fs with defaults taken from def.
func Register(fs *flag.FlagSet, o *Options, def Options) {
	fs.StringVar(&o.Input, "input_fasta", "", "input FASTA file or '-' for STDIN")
	fs.StringVar(&o.Input, "i", "", "alias of --input_fasta")
	fs.BoolVar(&o.Multiline, "multiline", def.Multiline, "read multi-line FASTA records")

	fs.StringVar(&o.ModelPath, "model_path", def.ModelPath, "trained model (JSON forest); empty = bundled RF_88_best")
	fs.StringVar(&o.ModelPath, "m", def.ModelPath, "alias of --model_path")
	fs.IntVar(&o.BatchSize, "batch-size", def.BatchSize, "rows per extract/predict batch (0 = all)")

	fs.StringVar(&o.OutputDir, "output_dir", def.OutputDir, "output directory")
	fs.StringVar(&o.OutputDir, "o", def.OutputDir, "alias of --output_dir")
	fs.BoolVar(&o.JSON, "json", false, "also write the classification table as JSON")
	fs.StringVar(&o.MetricsFile, "metrics-file", def.MetricsFile, "write run metrics (Prometheus text format) to this file")

	fs.BoolVar(&o.Quiet, "suppress_prints", false, "suppress progress and summary output")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --suppress_prints")
	fs.StringVar(&o.LogLevel, "log-level", def.LogLevel, "log level: debug | info | warn | error")
	fs.StringVar(&o.LogFile, "log-file", def.LogFile, "append JSON log entries to this file")

	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(&o.Version, "v", false, "alias of --version")
}

// ParseArgs registers and parses all flags. A single positional argument is
// taken as the input FASTA when --input_fasta is absent.
func ParseArgs(fs *flag.FlagSet, argv []string, def Options) (Options, error) {
	opt := Options{LogEnv: def.LogEnv}
	var help, examples bool
	Register(fs, &opt, def)
	fs.BoolVar(&help, "h", false, "show this help message")
	fs.BoolVar(&help, "help", false, "show this help message")
	fs.BoolVar(&examples, "examples", false, "print usage examples and exit")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if examples {
		return opt, ErrExamples
	}
	if opt.Version {
		return opt, nil
	}
	posArgs, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}

	switch {
	case len(posArgs) > 1:
		return opt, fmt.Errorf("expected one input FASTA, got %d: %s", len(posArgs), strings.Join(posArgs, " "))
	case len(posArgs) == 1 && opt.Input != "":
		return opt, fmt.Errorf("input given twice: --input_fasta %q and %q", opt.Input, posArgs[0])
	case len(posArgs) == 1:
		opt.Input = posArgs[0]
	}
	return opt, opt.Validate()
}

// Validate checks option combinations after parsing.
func (o Options) Validate() error {
	if o.Input == "" {
		return errors.New("provide --input_fasta (-i) or a FASTA path")
	}
	if o.BatchSize < 0 {
		return errors.New("--batch-size must be ≥ 0")
	}
	if strings.TrimSpace(o.OutputDir) == "" {
		return errors.New("--output_dir must not be empty")
	}
	for _, l := range LogLevels {
		if o.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("invalid --log-level %q", o.LogLevel)
}
