// Package features turns a protein sequence into the six-component descriptor
// vector the classifier was trained on.
package features

import (
	"fmt"
	"unicode"

	"effectoro/internal/errs"
	"effectoro/internal/fasta"
)

const (
	// Len is the descriptor width.
	Len = 6
	// Window caps how many leading residues contribute.
	Window = 900
)

// Vector is one descriptor row: gravy, hydrophobicity, exposed, disorder, bulkiness, interface.
type Vector [Len]float64

// Matrix is a feature matrix of shape (n, Len).
type Matrix []Vector

// Extract averages the property tables over the first min(len, Window) characters.
//
// Characters missing from the tables add nothing to the sums but still count
// toward the divisor, so such sequences get attenuated averages. The trained
// model expects exactly this.
func Extract(sequence string) (Vector, error) {
	var v Vector
	n := 0
	for range sequence {
		n++
	}
	window := min(n, Window)
	if window == 0 {
		return v, errs.Wrap(errs.ErrFeatureComputation, "empty sequence")
	}

	var sums [Len]float64
	i := 0
	for _, r := range sequence {
		if i == window {
			break
		}
		i++
		aa := unicode.ToUpper(r)
		if _, ok := interfacePropensity[aa]; !ok {
			continue
		}
		for k, tab := range tables {
			val, ok := tab[aa]
			if !ok {
				return v, errs.Wrapf(errs.ErrFeatureComputation, "%s table has no entry for %q", names[k], aa)
			}
			sums[k] += val
		}
	}
	for k := range sums {
		v[k] = sums[k] / float64(window)
	}
	return v, nil
}

// ExtractAll extracts one row per record, in record order.
func ExtractAll(records []fasta.Record) (Matrix, error) {
	m := make(Matrix, 0, len(records))
	for _, rec := range records {
		v, err := Extract(rec.Sequence)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.ID, err)
		}
		m = append(m, v)
	}
	return m, nil
}

// CheckTables reports an error unless all property tables share one key set.
func CheckTables() error {
	for k, tab := range tables {
		if len(tab) != len(interfacePropensity) {
			return errs.Wrapf(errs.ErrFeatureComputation, "%s table has %d entries, want %d", names[k], len(tab), len(interfacePropensity))
		}
		for aa := range interfacePropensity {
			if _, ok := tab[aa]; !ok {
				return errs.Wrapf(errs.ErrFeatureComputation, "%s table has no entry for %q", names[k], aa)
			}
		}
	}
	return nil
}
