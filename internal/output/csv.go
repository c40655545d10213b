package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"effectoro/internal/results"
)

// WriteCSV writes the table with CSVHeader and no index column.
func WriteCSV(w io.Writer, t results.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVColumns); err != nil {
		return err
	}
	for _, r := range t {
		if err := cw.Write([]string{
			r.ProteinID,
			r.Sequence,
			strconv.Itoa(r.Prediction),
			results.FormatProbability(r.Probability),
			r.Meaning.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
