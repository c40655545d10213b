package writers

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"effectoro/internal/output"
	"effectoro/internal/results"
)

// Target is one output file: <name><Suffix>, rendered with Format.
type Target struct {
	Suffix string
	Format string
	Filter *results.Meaning
}

var (
	effector    = results.Effector
	nonEffector = results.NonEffector
)

// Targets lists the run outputs in write order. The JSON table is optional.
func Targets(includeJSON bool) []Target {
	ts := []Target{
		{Suffix: ".effector_classification_table.csv", Format: output.FormatCSV},
		{Suffix: ".predicted_effectors.fasta", Format: output.FormatFASTA, Filter: &effector},
		{Suffix: ".predicted_non-effectors.fasta", Format: output.FormatFASTA, Filter: &nonEffector},
		{Suffix: ".all_effector_predictions.fasta", Format: output.FormatFASTA},
	}
	if includeJSON {
		ts = append(ts, Target{Suffix: ".effector_classification_table.json", Format: output.FormatJSON})
	}
	return ts
}

// Options configures Files.
type Options struct {
	// Dir is the output directory (required). Existing contents are kept.
	Dir string
	// Atomic writes through a temp file and rename. Default true.
	Atomic *bool
	// PermFile/PermDir default to 0644/0755.
	PermFile os.FileMode
	PermDir  os.FileMode
	BufSize  int
}

// Files writes named outputs into one directory.
type Files struct {
	dir     string
	atomic  bool
	permF   os.FileMode
	permD   os.FileMode
	bufSize int
}

// New validates opts. It does not touch the filesystem.
func New(opts Options) (*Files, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, errors.New("output directory is empty")
	}
	f := &Files{dir: opts.Dir, atomic: true, permF: opts.PermFile, permD: opts.PermDir, bufSize: opts.BufSize}
	if opts.Atomic != nil {
		f.atomic = *opts.Atomic
	}
	if f.permF == 0 {
		f.permF = 0o644
	}
	if f.permD == 0 {
		f.permD = 0o755
	}
	if f.bufSize <= 0 {
		f.bufSize = 64 * 1024
	}
	return f, nil
}

// Dir returns the output directory.
func (f *Files) Dir() string { return f.dir }

// Prepare creates the directory if needed and reports whether it existed.
func (f *Files) Prepare() (existed bool, err error) {
	if st, err := os.Stat(f.dir); err == nil {
		if !st.IsDir() {
			return false, &os.PathError{Op: "mkdir", Path: f.dir, Err: errors.New("not a directory")}
		}
		existed = true
	}
	return existed, os.MkdirAll(f.dir, f.permD)
}

// WriteResults renders every target for p and returns the written paths.
func (f *Files) WriteResults(ctx context.Context, name string, p Payload, includeJSON bool) ([]string, error) {
	var paths []string
	for _, t := range Targets(includeJSON) {
		tp := p
		tp.Filter = t.Filter
		path, err := f.Write(ctx, name+t.Suffix, func(w io.Writer) error { return Write(t.Format, w, tp) })
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Write creates (or replaces) dir/filename with whatever render emits.
func (f *Files) Write(ctx context.Context, filename string, render func(io.Writer) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dest := filepath.Join(f.dir, filepath.Base(filename))
	if f.atomic {
		return dest, f.writeAtomic(dest, render)
	}
	return dest, f.writeOverwrite(dest, render)
}

func (f *Files) writeOverwrite(dest string, render func(io.Writer) error) error {
	fh, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.permF)
	if err != nil {
		return err
	}
	defer fh.Close()

	bw := bufio.NewWriterSize(fh, f.bufSize)
	if err := render(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return fh.Close()
}

func (f *Files) writeAtomic(dest string, render func(io.Writer) error) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, f.permF)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	bw := bufio.NewWriterSize(tmp, f.bufSize)
	if err := render(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
