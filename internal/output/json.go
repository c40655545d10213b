package output

import (
	"encoding/json"
	"io"

	"effectoro/internal/results"
	"effectoro/pkg/api"
)

// ToAPI converts a table to the v1 wire schema.
func ToAPI(t results.Table) []api.ClassificationV1 {
	out := make([]api.ClassificationV1, len(t))
	for i, r := range t {
		out[i] = api.ClassificationV1{
			ProteinID:   r.ProteinID,
			Sequence:    r.Sequence,
			Prediction:  r.Prediction,
			Probability: r.Probability,
			Meaning:     r.Meaning.String(),
		}
	}
	return out
}

// WriteJSON writes the table as an indented api.ClassificationTableV1.
func WriteJSON(w io.Writer, source, model string, t results.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(api.ClassificationTableV1{Source: source, Model: model, Rows: ToAPI(t)})
}
