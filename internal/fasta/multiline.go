package fasta

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"effectoro/internal/errs"
)

// readMultiline reads records through biogo, concatenating wrapped sequence
// lines before sanitization.
func (b *builder) readMultiline(r io.Reader) error {
	fr := biofasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein))
	for {
		s, err := fr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrFormat, err)
		}
		ls, ok := s.(*linear.Seq)
		if !ok {
			return errs.Wrapf(errs.ErrFormat, "unexpected sequence type %T", s)
		}
		id := strings.TrimSpace(ls.Name())
		if id == "" {
			return errs.Wrap(errs.ErrFormat, "header has no id")
		}
		if len(ls.Seq) == 0 {
			return errs.Wrapf(errs.ErrFormat, "record %q has no sequence line", id)
		}
		raw := make([]byte, 0, len(ls.Seq))
		for _, l := range ls.Seq {
			if l != '\r' {
				raw = append(raw, byte(l))
			}
		}
		b.add(id, strings.Fields(ls.Description()), string(raw))
	}
}
