package features

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effectoro/internal/errs"
	"effectoro/internal/fasta"
)

const allResidues = "ACDEFGHIKLMNPQRSTVWY"

// naive recomputes the reference average in the same summation order.
func naive(seq string, divisor int) Vector {
	var v Vector
	for k, tab := range tables {
		sum := 0.0
		for _, r := range seq {
			sum += tab[r]
		}
		v[k] = sum / float64(divisor)
	}
	return v
}

func TestTablesConsistent(t *testing.T) {
	require.NoError(t, CheckTables())
	for _, r := range allResidues {
		_, ok := interfacePropensity[r]
		assert.True(t, ok, "missing %q", r)
	}
	assert.Len(t, interfacePropensity, 20)
}

func TestTableOrderAndAnchors(t *testing.T) {
	assert.Equal(t, [Len]string{"gravy", "hydrophobicity", "exposed", "disorder", "bulkiness", "interface"}, names)
	want := [Len]map[rune]float64{gravy, hydrophobicity, exposed, disorder, bulkiness, interfacePropensity}
	for k := range tables {
		assert.Equal(t, want[k], tables[k], names[k])
	}
	assert.Equal(t, 1.8, gravy['A'])
	assert.Equal(t, -4.5, gravy['R'])

	v, err := Extract("A")
	require.NoError(t, err)
	assert.Equal(t, gravy['A'], v[0])
	assert.Equal(t, interfacePropensity['A'], v[Len-1])
}

func TestExtract_AllResidues(t *testing.T) {
	v, err := Extract(allResidues)
	require.NoError(t, err)
	assert.Equal(t, naive(allResidues, 20), v)

	assert.InDelta(t, -0.49, v[0], 1e-12)
	assert.InDelta(t, 5.0, v[2], 1e-12)
}

func TestExtract_CaseInsensitive(t *testing.T) {
	up, err := Extract("MKLLVAG")
	require.NoError(t, err)
	low, err := Extract("mklLVag")
	require.NoError(t, err)
	assert.Equal(t, up, low)
}

func TestExtract_WindowCap(t *testing.T) {
	head := strings.Repeat("ACDEFGHIKLMNPQRSTVWY", 45) // 900
	long := head + strings.Repeat("W", 500)
	v, err := Extract(long)
	require.NoError(t, err)
	assert.Equal(t, naive(head, 900), v)

	exact, err := Extract(head)
	require.NoError(t, err)
	assert.Equal(t, exact, v)
}

func TestExtract_UnknownResidueAttenuates(t *testing.T) {
	v, err := Extract("ACDX")
	require.NoError(t, err)

	// X counts toward the divisor but contributes nothing.
	assert.Equal(t, naive("ACD", 4), v)
	assert.NotEqual(t, naive("ACD", 3), v)
	assert.InDelta(t, 0.2, v[0], 1e-12)
}

func TestExtract_UnknownInsideWindowOnly(t *testing.T) {
	seq := strings.Repeat("B", 899) + "AW"
	v, err := Extract(seq)
	require.NoError(t, err)
	assert.Equal(t, naive("A", 900), v)
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract("")
	require.ErrorIs(t, err, errs.ErrFeatureComputation)
}

func TestExtractAll(t *testing.T) {
	recs := []fasta.Record{{ID: "a", Sequence: "MK"}, {ID: "b", Sequence: "W"}}
	m, err := ExtractAll(recs)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, naive("MK", 2), m[0])
	assert.Equal(t, naive("W", 1), m[1])

	_, err = ExtractAll([]fasta.Record{{ID: "ok", Sequence: "A"}, {ID: "empty"}})
	require.ErrorIs(t, err, errs.ErrFeatureComputation)
	assert.Contains(t, err.Error(), `"empty"`)
}
