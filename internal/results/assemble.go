// Package results joins parsed records with classifier output.
package results

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"effectoro/internal/errs"
	"effectoro/internal/fasta"
)

// Row is the classification of one input record.
type Row struct {
	ProteinID   string
	Sequence    string
	Prediction  int
	Probability float64 // rounded to 2 decimal places
	Meaning     Meaning
}

// Table holds one Row per input record, in input order.
type Table []Row

// Assemble builds the result table. Row i pairs records[i] with labels[i]
// and probabilities[i].
func Assemble(store *fasta.Store, labels []int, probabilities []float64) (Table, error) {
	n := store.Len()
	if len(labels) != n || len(probabilities) != n {
		return nil, errs.Wrapf(errs.ErrDimension, "%d records, %d labels, %d probabilities", n, len(labels), len(probabilities))
	}
	t := make(Table, n)
	for i, rec := range store.Records {
		m, err := MeaningOf(labels[i])
		if err != nil {
			return nil, errs.Wrapf(errs.ErrDimension, "row %d: %v", i, err)
		}
		p := probabilities[i]
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, errs.Wrapf(errs.ErrDimension, "row %d: probability %v outside [0,1]", i, p)
		}
		t[i] = Row{
			ProteinID:   rec.ID,
			Sequence:    rec.Sequence,
			Prediction:  labels[i],
			Probability: Round2(p),
			Meaning:     m,
		}
	}
	return t, nil
}

// Round2 rounds p to two decimals the way numpy does: p*100 is rounded half
// to even, then divided by 100.
func Round2(p float64) float64 {
	f, _ := decimal.NewFromFloat(p * 100).RoundBank(0).Shift(-2).Float64()
	return f
}

// FormatProbability renders p like Python's str(float): 0.57, 1.0, 0.0.
func FormatProbability(p float64) string {
	s := decimal.NewFromFloat(p).String()
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Filter returns the rows whose meaning is m, keeping order.
func (t Table) Filter(m Meaning) Table {
	var out Table
	for _, r := range t {
		if r.Meaning == m {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns the number of rows per meaning.
func (t Table) Counts() map[Meaning]int {
	c := map[Meaning]int{NonEffector: 0, Effector: 0}
	for _, r := range t {
		c[r.Meaning]++
	}
	return c
}
