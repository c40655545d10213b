package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"effectoro/internal/errs"
	"effectoro/internal/features"
)

// Format is the accepted value of the artifact's "format" field.
const Format = "effectoro-forest/v1"

// leaf marks a node without children.
const leaf = -1

// Tree is one decision tree in flat-array form. Node i is a leaf when
// Left[i] == -1; otherwise rows with x[Feature[i]] <= Threshold[i] go to
// Left[i] and the rest to Right[i]. Value[i] holds per-class weights.
type Tree struct {
	Feature   []int       `json:"feature"`
	Threshold []float64   `json:"threshold"`
	Left      []int       `json:"left"`
	Right     []int       `json:"right"`
	Value     [][]float64 `json:"value"`
}

type forestFile struct {
	Format       string   `json:"format"`
	Name         string   `json:"name"`
	NFeatures    int      `json:"n_features"`
	Classes      []int    `json:"classes"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Trees        []Tree   `json:"trees"`
}

// Forest is a random-forest style ensemble: the positive-class probability is
// the mean of per-tree leaf probabilities.
type Forest struct {
	name  string
	trees []Tree
}

var _ Classifier = (*Forest)(nil)

// Load reads a forest artifact from path. An empty path (or DefaultName)
// loads the bundled model.
func Load(path string) (*Forest, error) {
	if IsDefault(path) {
		return Decode(bytes.NewReader(defaultModel), DefaultName)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrModelLoad, err)
	}
	defer f.Close()
	return Decode(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Decode parses and validates a forest artifact. name overrides the name
// stored in the artifact when non-empty.
func Decode(r io.Reader, name string) (*Forest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var ff forestFile
	if err := dec.Decode(&ff); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", errs.ErrModelLoad, err)
	}
	if err := ff.validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = ff.Name
	}
	return &Forest{name: name, trees: ff.Trees}, nil
}

func (ff *forestFile) validate() error {
	if ff.Format != Format {
		return errs.Wrapf(errs.ErrModelLoad, "unsupported format %q", ff.Format)
	}
	if ff.NFeatures != features.Len {
		return errs.Wrapf(errs.ErrModelLoad, "model expects %d features, extractor yields %d", ff.NFeatures, features.Len)
	}
	if len(ff.Classes) != 2 || ff.Classes[0] != 0 || ff.Classes[1] != 1 {
		return errs.Wrapf(errs.ErrModelLoad, "classes must be [0 1], got %v", ff.Classes)
	}
	if len(ff.Trees) == 0 {
		return errs.Wrap(errs.ErrModelLoad, "no trees")
	}
	for i := range ff.Trees {
		if err := ff.Trees[i].validate(ff.NFeatures); err != nil {
			return errs.Wrapf(err, "tree %d", i)
		}
	}
	return nil
}

func (t *Tree) validate(nFeatures int) error {
	n := len(t.Left)
	if n == 0 {
		return errs.Wrap(errs.ErrModelLoad, "empty tree")
	}
	if len(t.Right) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errs.Wrap(errs.ErrModelLoad, "node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if t.Left[i] == leaf {
			if t.Right[i] != leaf {
				return errs.Wrapf(errs.ErrModelLoad, "node %d has one child", i)
			}
			v := t.Value[i]
			if len(v) != 2 || v[0] < 0 || v[1] < 0 || v[0]+v[1] <= 0 {
				return errs.Wrapf(errs.ErrModelLoad, "leaf %d has bad value %v", i, v)
			}
			continue
		}
		// children must point forward so every walk terminates
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return errs.Wrapf(errs.ErrModelLoad, "node %d has child out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return errs.Wrapf(errs.ErrModelLoad, "node %d splits on feature %d", i, t.Feature[i])
		}
	}
	return nil
}

// Name returns the model's display name.
func (f *Forest) Name() string { return f.name }

// NumFeatures returns the expected row width.
func (f *Forest) NumFeatures() int { return features.Len }

// NumTrees returns the ensemble size.
func (f *Forest) NumTrees() int { return len(f.trees) }

// Predict returns, per row, the label with the higher mean class probability
// (ties go to 0) and the mean probability of class 1.
func (f *Forest) Predict(x features.Matrix) ([]int, []float64, error) {
	labels := make([]int, len(x))
	probs := make([]float64, len(x))
	n := float64(len(f.trees))
	for r, row := range x {
		var p0, p1 float64
		for i := range f.trees {
			v := f.trees[i].leafValue(row)
			total := v[0] + v[1]
			p0 += v[0] / total
			p1 += v[1] / total
		}
		p0 /= n
		p1 /= n
		if p1 > p0 {
			labels[r] = 1
		}
		probs[r] = p1
	}
	return labels, probs, nil
}

func (t *Tree) leafValue(row features.Vector) []float64 {
	node := 0
	for t.Left[node] != leaf {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Value[node]
}
