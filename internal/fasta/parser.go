// Package fasta parses protein FASTA into a per-run Store, dropping any
// character outside the 20 standard amino acids.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"effectoro/internal/errs"
)

// AminoAcids is the residue alphabet kept by sanitization (upper case).
const AminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// Extensions are the file extensions ParseFile accepts.
var Extensions = []string{"fasta", "fas", "fa", "fna", "ffn", "faa", "mpfa", "frn"}

// maxLine bounds a single-line sequence (64 MiB).
var maxLine = 64 * 1024 * 1024

// Parser converts FASTA text into a Store.
type Parser struct {
	// Multiline concatenates every sequence line of a record. When false the
	// line right after a header is the whole sequence.
	Multiline bool
	// Log receives sanitization and duplicate-id warnings. Nil discards them.
	Log *zap.Logger
}

// CheckExtension returns ErrFormat unless path ends in a recognised FASTA
// extension, optionally followed by .gz.
func CheckExtension(path string) error {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".gz")
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, e := range Extensions {
		if ext == e {
			return nil
		}
	}
	return errs.Wrapf(errs.ErrFormat, "%s: extension %q is not one of %s", path, ext, strings.Join(Extensions, ", "))
}

// ParseFile checks the extension of path, then parses it. "-" reads stdin
// and skips the extension check.
func (p Parser) ParseFile(path string) (*Store, error) {
	source := path
	if path == "-" {
		source = "stdin"
	} else if err := CheckExtension(path); err != nil {
		return nil, err
	}
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return p.Parse(rc, source)
}

// ParseString parses in-memory FASTA text; sourceName only names the Store.
func (p Parser) ParseString(text, sourceName string) (*Store, error) {
	return p.Parse(strings.NewReader(text), sourceName)
}

// Parse reads all records from r.
func (p Parser) Parse(r io.Reader, sourceName string) (*Store, error) {
	b := &builder{
		log:   p.logger(),
		store: &Store{Name: StoreName(sourceName), Source: sourceName},
		seen:  map[string]int{},
	}
	var err error
	if p.Multiline {
		err = b.readMultiline(r)
	} else {
		err = b.readSingleLine(r)
	}
	if err != nil {
		return nil, err
	}
	return b.store, nil
}

func (p Parser) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

type builder struct {
	log   *zap.Logger
	store *Store
	seen  map[string]int
}

func (b *builder) add(id string, tokens []string, raw string) {
	seq, dropped := sanitize(raw, id, b.log)
	if first, dup := b.seen[id]; dup {
		b.log.Warn("duplicate record id; keeping both",
			zap.String("id", id), zap.Int("first_index", first), zap.Int("index", len(b.store.Records)))
	} else {
		b.seen[id] = len(b.store.Records)
	}
	b.store.Sanitized += dropped
	b.store.Records = append(b.store.Records, Record{ID: id, HeaderTokens: tokens, Sequence: seq})
}

func (b *builder) readSingleLine(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		lineNo  int
		pending bool // header seen, sequence line expected
		id      string
		tokens  []string
		warned  bool
		current string
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if pending {
			if strings.HasPrefix(line, ">") {
				return errs.Wrapf(errs.ErrFormat, "line %d: record %q has no sequence line", lineNo, id)
			}
			b.add(id, tokens, line)
			pending, warned, current = false, false, id
			continue
		}
		if strings.HasPrefix(line, ">") {
			var err error
			id, tokens, err = parseHeader(line)
			if err != nil {
				return errs.Wrapf(err, "line %d", lineNo)
			}
			pending = true
			continue
		}
		if strings.TrimSpace(line) == "" || current == "" {
			continue
		}
		if !warned {
			b.log.Warn("ignoring extra sequence line; single-line records assumed (use multi-line mode)",
				zap.String("id", current), zap.Int("line", lineNo))
			warned = true
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: line %d: longer than %d bytes: %v", errs.ErrFormat, lineNo+1, maxLine, err)
		}
		return fmt.Errorf("fasta scan: %w", err)
	}
	if pending {
		return errs.Wrapf(errs.ErrFormat, "record %q has no sequence line", id)
	}
	return nil
}

// parseHeader splits ">id tok tok" into id and the remaining tokens.
func parseHeader(line string) (string, []string, error) {
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return "", nil, errs.Wrap(errs.ErrFormat, "header has no id")
	}
	return fields[0], fields[1:], nil
}

// sanitize drops every character that is not a standard residue. It scans
// from the end so reported positions are those of the original string.
func sanitize(seq, id string, log *zap.Logger) (string, int) {
	rs := []rune(seq)
	keep := make([]bool, len(rs))
	dropped := 0
	for i := len(rs) - 1; i >= 0; i-- {
		if isResidue(rs[i]) {
			keep[i] = true
			continue
		}
		dropped++
		log.Warn("removing invalid character from sequence",
			zap.String("id", id), zap.String("char", string(rs[i])), zap.Int("pos", i))
	}
	if dropped == 0 {
		return seq, 0
	}
	out := make([]rune, 0, len(rs)-dropped)
	for i, r := range rs {
		if keep[i] {
			out = append(out, r)
		}
	}
	return string(out), dropped
}

// isResidue checks the raw rune first: ı and ſ upper-case to I and S.
func isResidue(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(AminoAcids, byte(unicode.ToUpper(r))) >= 0
}
