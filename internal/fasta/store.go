package fasta

import (
	"path/filepath"
	"strings"
)

// Record is one parsed FASTA entry. Sequence holds only the 20 standard
// residues once it has been through the parser.
type Record struct {
	ID           string
	HeaderTokens []string
	Sequence     string
}

// Store holds the records of one parse, in input order. A Store belongs to a
// single pipeline run; build a fresh one per input.
type Store struct {
	// Name is the source base name without directory and extension.
	Name string
	// Source is the path or label the records came from.
	Source  string
	Records []Record
	// Sanitized counts residues dropped during parsing.
	Sanitized int
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.Records) }

// IDs returns record ids in input order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.ID
	}
	return out
}

// StoreName strips the directory, a trailing .gz and the final extension.
func StoreName(source string) string {
	if source == "" {
		return ""
	}
	base := filepath.Base(source)
	if strings.HasSuffix(strings.ToLower(base), ".gz") {
		base = base[:len(base)-3]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
