// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"effectoro/internal/errs"
	"effectoro/internal/fasta"
	"effectoro/internal/features"
	"effectoro/internal/metrics"
	"effectoro/internal/model"
	"effectoro/internal/results"
	"effectoro/internal/writers"
)

// Config controls a single run.
type Config struct {
	Input     string // FASTA path, or "-" for stdin
	Text      string // in-memory FASTA, used when Input is empty
	TextName  string // source name for Text (default "input")
	Multiline bool   // concatenate multi-line sequences
	ModelPath string // empty means the bundled default
	BatchSize int    // rows per extract/predict batch; 0 processes everything at once
	OutputDir string // empty skips writing
	JSON      bool   // also write the JSON table
}

// Result describes a finished run.
type Result struct {
	Store      *fasta.Store
	Model      string
	Table      results.Table
	Dir        string
	DirExisted bool
	Paths      []string
}

// Runner holds the collaborators shared by every stage. All fields are optional.
type Runner struct {
	// Classifier overrides Config.ModelPath.
	Classifier model.Classifier
	Log        *zap.Logger
	Metrics    *metrics.Metrics
}

// Run executes every stage in order and returns the first error encountered
// (including context cancellation).
func (r Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := r.Metrics

	start := time.Now()
	store, err := parse(cfg, log)
	if err != nil {
		return nil, err
	}
	m.ObserveStage(metrics.StageParse, start)
	if m != nil {
		m.RecordsParsed.Add(float64(store.Len()))
		m.ResiduesSanitized.Add(float64(store.Sanitized))
	}
	log.Info("parsed input", zap.String("source", store.Source), zap.Int("records", store.Len()), zap.Int("sanitized", store.Sanitized))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clf := r.Classifier
	if clf == nil {
		f, err := model.Load(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		log.Info("loaded model", zap.String("model", f.Name()), zap.Int("trees", f.NumTrees()))
		clf = f
	}

	start = time.Now()
	labels, probs, err := Predict(ctx, store.Records, clf, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	m.ObserveStage(metrics.StagePredict, start)

	start = time.Now()
	table, err := results.Assemble(store, labels, probs)
	if err != nil {
		return nil, err
	}
	m.ObserveStage(metrics.StageAssemble, start)
	if m != nil {
		for meaning, n := range table.Counts() {
			m.Predictions.WithLabelValues(meaning.String()).Add(float64(n))
		}
	}

	res := &Result{Store: store, Model: clf.Name(), Table: table}
	if cfg.OutputDir == "" {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	files, err := writers.New(writers.Options{Dir: cfg.OutputDir})
	if err != nil {
		return nil, err
	}
	res.Dir = files.Dir()
	if res.DirExisted, err = files.Prepare(); err != nil {
		return nil, err
	}
	payload := writers.Payload{Source: store.Source, Model: res.Model, Table: table}
	res.Paths, err = files.WriteResults(ctx, store.Name, payload, cfg.JSON)
	if err != nil {
		return res, err
	}
	m.ObserveStage(metrics.StageWrite, start)
	return res, nil
}

func parse(cfg Config, log *zap.Logger) (*fasta.Store, error) {
	p := fasta.Parser{Multiline: cfg.Multiline, Log: log}
	if cfg.Input != "" {
		return p.ParseFile(cfg.Input)
	}
	name := cfg.TextName
	if name == "" {
		name = "input"
	}
	return p.ParseString(cfg.Text, name)
}

// Predict extracts features and classifies records, batchSize rows at a time
// (0 means one batch). Output order matches records.
func Predict(ctx context.Context, records []fasta.Record, clf model.Classifier, batchSize int) ([]int, []float64, error) {
	if clf.NumFeatures() != features.Len {
		return nil, nil, errs.Wrapf(errs.ErrDimension, "model %s expects %d features, extractor produces %d", clf.Name(), clf.NumFeatures(), features.Len)
	}
	if batchSize <= 0 || batchSize > len(records) {
		batchSize = len(records)
	}
	labels := make([]int, 0, len(records))
	probs := make([]float64, 0, len(records))
	for lo := 0; lo < len(records); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		hi := min(lo+batchSize, len(records))
		x, err := features.ExtractAll(records[lo:hi])
		if err != nil {
			return nil, nil, err
		}
		l, p, err := clf.Predict(x)
		if err != nil {
			return nil, nil, err
		}
		if len(l) != hi-lo || len(p) != hi-lo {
			return nil, nil, errs.Wrapf(errs.ErrDimension, "model %s returned %d labels and %d probabilities for %d rows", clf.Name(), len(l), len(p), hi-lo)
		}
		labels = append(labels, l...)
		probs = append(probs, p...)
	}
	return labels, probs, nil
}
