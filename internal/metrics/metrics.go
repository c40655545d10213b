// Package metrics collects per-run counters and writes them in the
// Prometheus text format (--metrics-file).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used as the "stage" label.
const (
	StageParse    = "parse"
	StagePredict  = "predict"
	StageAssemble = "assemble"
	StageWrite    = "write"
)

// Metrics is a private registry per run; nothing is registered globally.
type Metrics struct {
	reg *prometheus.Registry

	RecordsParsed     prometheus.Counter
	ResiduesSanitized prometheus.Counter
	Predictions       *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	Runs              *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "effectoro_records_parsed_total",
			Help: "Protein records read from the input FASTA",
		}),
		ResiduesSanitized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "effectoro_residues_sanitized_total",
			Help: "Characters removed from sequences because they are not amino-acid letters",
		}),
		Predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "effectoro_predictions_total",
				Help: "Classified proteins by predicted meaning",
			},
			[]string{"meaning"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "effectoro_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"stage"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "effectoro_runs_total",
				Help: "Pipeline runs by outcome",
			},
			[]string{"status"}, // status: success|<error code>
		),
	}
	m.reg.MustRegister(m.RecordsParsed, m.ResiduesSanitized, m.Predictions, m.StageDuration, m.Runs)
	return m
}

// ObserveStage records the time elapsed since start under stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteFile writes the current values to path, replacing it atomically.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
