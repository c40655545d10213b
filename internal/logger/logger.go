// Package logger builds the zap logger used for run diagnostics.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects sinks and verbosity.
type Options struct {
	// Writer receives human-readable diagnostics (usually stderr).
	Writer io.Writer
	// Level is a zap level name; unknown values mean info.
	Level string
	// Env "production" switches the terminal sink to JSON.
	Env string
	// Quiet silences the terminal sink only; File still receives entries.
	Quiet bool
	// File, when set, receives every entry as JSON lines (appended).
	File string
}

// New builds a logger from opts. The returned close func syncs and releases
// the log file, if any.
func New(opts Options) (*zap.Logger, func() error, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var (
		cores   []zapcore.Core
		closers []func() error
	)
	if !opts.Quiet && opts.Writer != nil {
		var enc zapcore.Encoder
		if opts.Env == "production" {
			enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		} else {
			cfg := zap.NewDevelopmentEncoderConfig()
			cfg.EncodeLevel = zapcore.CapitalLevelEncoder
			cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
			enc = zapcore.NewConsoleEncoder(cfg)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(opts.Writer), lvl))
	}
	if opts.File != "" {
		fh, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		ws := zapcore.Lock(fh)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), ws, lvl))
		closers = append(closers, func() error {
			_ = ws.Sync()
			return fh.Close()
		})
	}
	if len(cores) == 0 {
		return zap.NewNop(), func() error { return nil }, nil
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.FatalLevel))
	closeFn := func() error {
		_ = l.Sync()
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	return l, closeFn, nil
}
