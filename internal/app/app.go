// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"effectoro/internal/cli"
	"effectoro/internal/config"
	"effectoro/internal/errs"
	"effectoro/internal/logger"
	"effectoro/internal/metrics"
	"effectoro/internal/model"
	"effectoro/internal/pipeline"
	"effectoro/internal/results"
	"effectoro/internal/version"
	"effectoro/internal/writers"
)

const name = "effectoro"

// flush writes buffered stdout and returns code, or 3 if stdout failed.
// A closed pipe downstream is not an error.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := writers.Flush(outw); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	// a broken environment must not block --help or --version
	cfg, cfgErr := config.Load()

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := cli.ParseArgs(fs, argv, cli.Defaults(cfg))
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, 0)
		case errors.Is(err, cli.ErrExamples):
			cli.PrintExamples(outw, name)
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(outw, stderr, 0)
	}
	if cfgErr != nil {
		_, _ = fmt.Fprintln(stderr, cfgErr)
		return flush(outw, stderr, 2)
	}

	log, closeLog, err := logger.New(logger.Options{
		Writer: stderr, Level: opts.LogLevel, Env: opts.LogEnv, Quiet: opts.Quiet, File: opts.LogFile,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = closeLog() }()
	log = log.With(zap.String("run_id", uuid.NewString()))

	var m *metrics.Metrics
	if opts.MetricsFile != "" {
		m = metrics.New()
	}

	start := time.Now()
	log.Info("starting run", zap.String("input", opts.Input), zap.String("output_dir", opts.OutputDir), zap.String("version", version.Version))
	res, err := pipeline.Runner{Log: log, Metrics: m}.Run(parent, pipeline.Config{
		Input:     opts.Input,
		Multiline: opts.Multiline,
		ModelPath: opts.ModelPath,
		BatchSize: opts.BatchSize,
		OutputDir: opts.OutputDir,
		JSON:      opts.JSON,
	})
	if m != nil {
		status := "success"
		if err != nil {
			status = string(errs.Classify(err))
		}
		m.Runs.WithLabelValues(status).Inc()
		if werr := m.WriteFile(opts.MetricsFile); werr != nil {
			log.Warn("failed to write metrics file", zap.String("path", opts.MetricsFile), zap.Error(werr))
		}
	}
	if err != nil {
		log.Error("run failed", zap.String("code", string(errs.Classify(err))), zap.Error(err))
		if opts.Quiet {
			_, _ = fmt.Fprintln(stderr, err)
		}
		code := errs.ExitCode(err)
		if parent.Err() != nil {
			code = 130
		}
		return flush(outw, stderr, code)
	}

	if res.DirExisted {
		log.Warn("output directory already exists; files with the same names were replaced", zap.String("dir", res.Dir))
	}
	log.Info("run finished", zap.Int("records", res.Store.Len()), zap.Duration("elapsed", time.Since(start)))
	if !opts.Quiet {
		printSummary(outw, res, model.IsDefault(opts.ModelPath))
	}
	return flush(outw, stderr, 0)
}

func printSummary(w io.Writer, res *pipeline.Result, defaultModel bool) {
	label := res.Model
	if defaultModel {
		label = "Random Forest (" + res.Model + ")"
	}
	_, _ = fmt.Fprintf(w, "Sequences run through secreted oomycete-trained %s effector classifier: %s\n",
		label, humanize.Comma(int64(res.Store.Len())))
	if defaultModel {
		_, _ = fmt.Fprint(w, "\n**NOTES**:\n\n"+
			"Positive training dataset: ~100 experimentally validated oomycete avirulence effectors\n"+
			"Negative training dataset: ~100 secreted orthologous oomycete genes\n"+
			"\n**END OF NOTES**\n")
	}

	_, _ = fmt.Fprintln(w, "\nCounts of predicted classes:")
	for _, c := range sortedCounts(res.Table) {
		_, _ = fmt.Fprintf(w, "%-24s %s\n", c.meaning, humanize.Comma(int64(c.n)))
	}

	_, _ = fmt.Fprintln(w, "\nOutputs:")
	for _, p := range res.Paths {
		_, _ = fmt.Fprintf(w, "  %s\n", p)
	}
}

type meaningCount struct {
	meaning results.Meaning
	n       int
}

// sortedCounts lists non-zero classes, most frequent first.
func sortedCounts(t results.Table) []meaningCount {
	var out []meaningCount
	for m, n := range t.Counts() {
		if n > 0 {
			out = append(out, meaningCount{m, n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].meaning < out[j].meaning
	})
	return out
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
