package writers

import (
	"fmt"
	"io"

	"effectoro/internal/output"
	"effectoro/internal/results"
)

// Payload is everything a format needs to render one output file.
type Payload struct {
	Source string
	Model  string
	Table  results.Table
	// Filter restricts FASTA output to one meaning; nil keeps every row.
	Filter *results.Meaning
}

// Formats maps a format name to its handler (last registration wins).
var Formats = map[string]func(w io.Writer, p Payload) error{}

// Register adds or replaces a format handler.
func Register(format string, fn func(io.Writer, Payload) error) { Formats[format] = fn }

// Write dispatches p to the handler registered for format.
func Write(format string, w io.Writer, p Payload) error {
	fn, ok := Formats[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, p)
}

func init() {
	Register(output.FormatCSV, func(w io.Writer, p Payload) error { return output.WriteCSV(w, p.Table) })
	Register(output.FormatFASTA, func(w io.Writer, p Payload) error { return output.WriteFASTA(w, p.Table, p.Filter) })
	Register(output.FormatJSON, func(w io.Writer, p Payload) error { return output.WriteJSON(w, p.Source, p.Model, p.Table) })
}
