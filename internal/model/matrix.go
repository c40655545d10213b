package model

import (
	"effectoro/internal/errs"
	"effectoro/internal/features"
)

// AsMatrix normalises a feature input into a Matrix. A single flat row is
// promoted to shape (1, 6); rows must be exactly 6 wide; anything else is
// ErrDimension.
func AsMatrix(x any) (features.Matrix, error) {
	switch v := x.(type) {
	case features.Matrix:
		return v, nil
	case []features.Vector:
		return features.Matrix(v), nil
	case features.Vector:
		return features.Matrix{v}, nil
	case []float64:
		row, err := toVector(v, 0)
		if err != nil {
			return nil, err
		}
		return features.Matrix{row}, nil
	case [][]float64:
		m := make(features.Matrix, len(v))
		for i, r := range v {
			row, err := toVector(r, i)
			if err != nil {
				return nil, err
			}
			m[i] = row
		}
		return m, nil
	default:
		return nil, errs.Wrapf(errs.ErrDimension, "unsupported feature input %T, want rank 1 or 2", x)
	}
}

func toVector(r []float64, i int) (features.Vector, error) {
	var v features.Vector
	if len(r) != features.Len {
		return v, errs.Wrapf(errs.ErrDimension, "row %d has %d features, want %d", i, len(r), features.Len)
	}
	copy(v[:], r)
	return v, nil
}

// PredictAny promotes x with AsMatrix and runs c over it.
func PredictAny(c Classifier, x any) ([]int, []float64, error) {
	m, err := AsMatrix(x)
	if err != nil {
		return nil, nil, err
	}
	return c.Predict(m)
}
