package output

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"effectoro/internal/results"
)

// Description is the header text after the id: "{meaning} probability={p}".
func Description(r results.Row) string {
	return fmt.Sprintf("%s probability=%s", r.Meaning, results.FormatProbability(r.Probability))
}

// WriteFASTA writes rows whose meaning equals *filter (all rows when filter
// is nil) as ">{id} {meaning} probability={p}" followed by the unwrapped
// sequence.
func WriteFASTA(w io.Writer, t results.Table, filter *results.Meaning) error {
	fw := biofasta.NewWriter(w, 1)
	for _, r := range t {
		if filter != nil && r.Meaning != *filter {
			continue
		}
		s := linear.NewSeq(r.ProteinID, alphabet.BytesToLetters([]byte(r.Sequence)), alphabet.Protein)
		s.Desc = Description(r)
		// one line per sequence
		fw.Width = max(len(r.Sequence), 1)
		if _, err := fw.Write(s); err != nil {
			return err
		}
	}
	return nil
}
