// Package errs holds the error taxonomy shared by every pipeline stage.
// Stages wrap one of the sentinels with %w so callers can branch with errors.Is.
package errs

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrFormat: bad FASTA extension, header without id, header without sequence line.
	ErrFormat = errors.New("fasta format error")
	// ErrFeatureComputation: empty sequence or inconsistent property tables.
	ErrFeatureComputation = errors.New("feature computation error")
	// ErrModelLoad: model artifact missing, corrupt or structurally incompatible.
	ErrModelLoad = errors.New("model load error")
	// ErrDimension: feature matrix rank/width or row-count mismatch.
	ErrDimension = errors.New("dimension error")
)

// Wrap annotates err with message, keeping it matchable.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Code is a short error class used in logs and metric labels.
type Code string

const (
	CodeUnknown   Code = "unknown"
	CodeFormat    Code = "format"
	CodeFeature   Code = "feature"
	CodeModel     Code = "model"
	CodeDimension Code = "dimension"
	CodeCancel    Code = "cancel"
	CodeIO        Code = "io"
)

// Classify maps err onto a Code using sentinels and stdlib error types only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancel
	case errors.Is(err, ErrFormat):
		return CodeFormat
	case errors.Is(err, ErrFeatureComputation):
		return CodeFeature
	case errors.Is(err, ErrModelLoad):
		return CodeModel
	case errors.Is(err, ErrDimension):
		return CodeDimension
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// ExitCode is the CLI exit status for err: 0 ok, 2 bad input, 3 runtime, 130 cancelled.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Classify(err) {
	case CodeFormat:
		return 2
	case CodeCancel:
		return 130
	default:
		return 3
	}
}
