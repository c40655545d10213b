package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"effectoro/internal/errs"
	"effectoro/internal/features"
	"effectoro/internal/metrics"
)

const proteins = `>p1 secreted candidate
MKLLSLAVVALLAVASAAPAPQERRSKLSDDEWKKLAEKHGLS
>p2
MSTNPKPQRKTKRNTNRRPQDVKFPGGGQIVGGVYLLPRRGPRLGVRATRKTSERSQPRGRRQPIPKARRPEGRTWAQPGYPWPLYGNEGCGWAGWLLSPRGSRPSWGPTDPRRRSRNLGKVIDTLTCGFADLMGYIPLVGAPLGGAARALAHGVRVLEDGVNYATGNLPGCSFSIFLLALLSCLTVPASA
>p3 short
MAGIC*
>p4
wkdnlqrstvy
`

type fakeClassifier struct {
	n     int
	short bool
}

func (f fakeClassifier) Name() string     { return "fake" }
func (f fakeClassifier) NumFeatures() int { return f.n }
func (f fakeClassifier) Predict(x features.Matrix) ([]int, []float64, error) {
	labels := make([]int, len(x))
	probs := make([]float64, len(x))
	for i, row := range x {
		if row[0] > 0 {
			labels[i], probs[i] = 1, 0.9
		} else {
			probs[i] = 0.1
		}
	}
	if f.short && len(x) > 0 {
		return labels[1:], probs[1:], nil
	}
	return labels, probs, nil
}

func TestRun_InMemory(t *testing.T) {
	res, err := Runner{}.Run(context.Background(), Config{Text: proteins})
	require.NoError(t, err)
	assert.Equal(t, "RF_88_best", res.Model)
	require.Len(t, res.Table, 4)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, res.Store.IDs())
	assert.Equal(t, "MAGIC", res.Table[2].Sequence)
	assert.Equal(t, 1, res.Store.Sanitized)
	assert.Empty(t, res.Paths)
	for _, row := range res.Table {
		assert.GreaterOrEqual(t, row.Probability, 0.0)
		assert.LessOrEqual(t, row.Probability, 1.0)
		assert.Equal(t, row.Prediction, row.Meaning.Label())
	}
}

func TestRun_LogsLoadedModel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	_, err := Runner{Log: zap.New(core)}.Run(context.Background(), Config{Text: proteins})
	require.NoError(t, err)

	entries := logs.FilterMessage("loaded model").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "RF_88_best", entries[0].ContextMap()["model"])
	assert.EqualValues(t, 8, entries[0].ContextMap()["trees"])
}

func TestRun_BatchingMatchesSinglePass(t *testing.T) {
	whole, err := Runner{}.Run(context.Background(), Config{Text: proteins})
	require.NoError(t, err)
	for _, bs := range []int{1, 2, 3, 100} {
		batched, err := Runner{}.Run(context.Background(), Config{Text: proteins, BatchSize: bs})
		require.NoError(t, err)
		assert.Equal(t, whole.Table, batched.Table, "batch size %d", bs)
	}
}

func TestRun_WritesIdenticalFiles(t *testing.T) {
	in := filepath.Join(t.TempDir(), "sample.fasta")
	require.NoError(t, os.WriteFile(in, []byte(proteins), 0o644))

	var csvs [][]byte
	for _, sub := range []string{"a", "b"} {
		dir := filepath.Join(t.TempDir(), sub)
		res, err := Runner{}.Run(context.Background(), Config{Input: in, OutputDir: dir, JSON: true})
		require.NoError(t, err)
		assert.False(t, res.DirExisted)
		require.Len(t, res.Paths, 5)
		assert.Equal(t, filepath.Join(dir, "sample.effector_classification_table.csv"), res.Paths[0])
		for _, p := range res.Paths {
			assert.FileExists(t, p)
		}
		b, err := os.ReadFile(res.Paths[0])
		require.NoError(t, err)
		csvs = append(csvs, b)
	}
	assert.Equal(t, csvs[0], csvs[1])
}

func TestRun_BadExtensionCreatesNothing(t *testing.T) {
	in := filepath.Join(t.TempDir(), "proteins.txt")
	require.NoError(t, os.WriteFile(in, []byte(proteins), 0o644))
	out := filepath.Join(t.TempDir(), "out")

	_, err := Runner{}.Run(context.Background(), Config{Input: in, OutputDir: out})
	require.ErrorIs(t, err, errs.ErrFormat)
	assert.NoDirExists(t, out)
}

func TestRun_EmptySequence(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	_, err := Runner{}.Run(context.Background(), Config{Text: ">ok\nMKV\n>bad\n1234\n", OutputDir: out})
	require.ErrorIs(t, err, errs.ErrFeatureComputation)
	assert.Contains(t, err.Error(), "bad")
	assert.NoDirExists(t, out)
}

func TestRun_MissingModel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	_, err := Runner{}.Run(context.Background(), Config{Text: proteins, ModelPath: filepath.Join(t.TempDir(), "nope.json"), OutputDir: out})
	require.ErrorIs(t, err, errs.ErrModelLoad)
	assert.NoDirExists(t, out)
}

func TestRun_ClassifierContract(t *testing.T) {
	res, err := Runner{Classifier: fakeClassifier{n: features.Len}}.Run(context.Background(), Config{Text: proteins})
	require.NoError(t, err)
	assert.Equal(t, "fake", res.Model)

	_, err = Runner{Classifier: fakeClassifier{n: 4}}.Run(context.Background(), Config{Text: proteins})
	assert.ErrorIs(t, err, errs.ErrDimension)

	_, err = Runner{Classifier: fakeClassifier{n: features.Len, short: true}}.Run(context.Background(), Config{Text: proteins})
	assert.ErrorIs(t, err, errs.ErrDimension)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "out")
	_, err := Runner{}.Run(ctx, Config{Text: proteins, OutputDir: out})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 130, errs.ExitCode(err))
	assert.NoDirExists(t, out)
}

func TestRun_Metrics(t *testing.T) {
	m := metrics.New()
	res, err := Runner{Metrics: m}.Run(context.Background(), Config{Text: proteins, OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RecordsParsed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResiduesSanitized))

	var total float64
	for meaning, n := range res.Table.Counts() {
		got := testutil.ToFloat64(m.Predictions.WithLabelValues(meaning.String()))
		assert.Equal(t, float64(n), got)
		total += got
	}
	assert.Equal(t, 4.0, total)
	assert.Equal(t, 4, testutil.CollectAndCount(m.StageDuration))
}

func TestPredict_Empty(t *testing.T) {
	labels, probs, err := Predict(context.Background(), nil, fakeClassifier{n: features.Len}, 10)
	require.NoError(t, err)
	assert.Empty(t, labels)
	assert.Empty(t, probs)
}
