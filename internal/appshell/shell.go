// Package appshell wires process signals and exit codes around an app's
// RunContext so main stays a one-liner.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the signature shared by app entry points.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Exec runs fn under a context cancelled by SIGINT/SIGTERM and returns the
// exit code. A run interrupted by a signal never reports success.
func Exec(fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}

// Main calls Exec with the process arguments and exits.
func Main(fn RunFunc) {
	os.Exit(Exec(fn, os.Args[1:], os.Stdout, os.Stderr))
}
