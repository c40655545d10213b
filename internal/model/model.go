// Package model loads the pretrained effector classifier and runs it over a
// feature matrix. Pipeline code only sees the Classifier interface.
package model

import (
	_ "embed"

	"effectoro/internal/features"
)

// DefaultName identifies the bundled model used when no path is given.
const DefaultName = "RF_88_best"

//go:embed trained/RF_88_best.json
var defaultModel []byte

// Classifier maps feature rows to labels (0 non-effector, 1 effector) and
// the probability of label 1.
type Classifier interface {
	Name() string
	NumFeatures() int
	Predict(x features.Matrix) (labels []int, probabilities []float64, err error)
}

// IsDefault reports whether path resolves to the bundled model.
func IsDefault(path string) bool { return path == "" || path == DefaultName }
