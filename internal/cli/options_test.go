// internal/cli/options_test.go
package cli

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"effectoro/internal/config"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args, Defaults(nil))
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestLongAndShortFlags(t *testing.T) {
	o := mustParse(t, "--input_fasta", "a.fasta", "--model_path", "m.json", "--output_dir", "out", "--suppress_prints")
	if o.Input != "a.fasta" || o.ModelPath != "m.json" || o.OutputDir != "out" || !o.Quiet {
		t.Errorf("long flags: %+v", o)
	}
	o = mustParse(t, "-i", "a.fa", "-m", "m.json", "-o", "res", "-q")
	if o.Input != "a.fa" || o.ModelPath != "m.json" || o.OutputDir != "res" || !o.Quiet {
		t.Errorf("short flags: %+v", o)
	}
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "-i", "a.fa")
	if o.OutputDir != "effectoro_results" || o.ModelPath != "" || o.BatchSize != 0 || o.LogLevel != "info" || o.Quiet {
		t.Errorf("defaults: %+v", o)
	}
}

func TestPositionalInput(t *testing.T) {
	o := mustParse(t, "-q", "proteins.faa")
	if o.Input != "proteins.faa" {
		t.Fatalf("positional input not used: %+v", o)
	}
	o = mustParse(t, "--multiline", "-")
	if o.Input != "-" || !o.Multiline {
		t.Fatalf("stdin positional: %+v", o)
	}
}

func TestInputErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"-q"},
		{"a.fa", "b.fa"},
		{"-i", "a.fa", "b.fa"},
		{"-i", "a.fa", "--batch-size", "-1"},
		{"-i", "a.fa", "--log-level", "loud"},
		{"-i", "a.fa", "-o", " "},
	}
	for _, args := range cases {
		if _, err := ParseArgs(newFS(), args, Defaults(nil)); err == nil {
			t.Errorf("expected error for %q", args)
		}
	}
}

func TestEnvDefaultsAndFlagPrecedence(t *testing.T) {
	def := Defaults(&config.Config{
		ModelPath: "env.json", OutputDir: "env_out", LogLevel: "warn", LogEnv: "production", BatchSize: 16,
	})
	o, err := ParseArgs(newFS(), []string{"-i", "a.fa"}, def)
	if err != nil {
		t.Fatal(err)
	}
	if o.ModelPath != "env.json" || o.OutputDir != "env_out" || o.LogLevel != "warn" || o.BatchSize != 16 || o.LogEnv != "production" {
		t.Errorf("env defaults not applied: %+v", o)
	}
	o, err = ParseArgs(newFS(), []string{"-i", "a.fa", "-m", "flag.json", "--batch-size", "0", "--log-level", "debug"}, def)
	if err != nil {
		t.Fatal(err)
	}
	if o.ModelPath != "flag.json" || o.BatchSize != 0 || o.LogLevel != "debug" || o.OutputDir != "env_out" {
		t.Errorf("flags must override env: %+v", o)
	}
}

func TestHelpVersionExamples(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}, Defaults(nil)); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("want ErrHelp, got %v", err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}, Defaults(nil)); !errors.Is(err, ErrExamples) {
		t.Errorf("want ErrExamples, got %v", err)
	}
	o, err := ParseArgs(newFS(), []string{"-v"}, Defaults(nil))
	if err != nil || !o.Version {
		t.Errorf("version: %+v %v", o, err)
	}
}

func TestUsageMentionsEveryFlag(t *testing.T) {
	fs := NewFlagSet("effectoro")
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	_, _ = ParseArgs(fs, []string{"-h"}, Defaults(nil))
	fs.Usage()
	out := buf.String()
	for _, name := range []string{"--input_fasta", "--model_path", "--output_dir", "--suppress_prints", "--multiline", "--batch-size", "--json", "--metrics-file", "--log-level", "--log-file", "--version"} {
		if !strings.Contains(out, name) {
			t.Errorf("usage lacks %s", name)
		}
	}
	if !strings.Contains(out, "[effectoro_results]") {
		t.Errorf("usage lacks output_dir default:\n%s", out)
	}
}

func TestPrintExamples(t *testing.T) {
	var buf bytes.Buffer
	PrintExamples(&buf, "effectoro")
	if !strings.Contains(buf.String(), "effectoro -i secretome.fasta") {
		t.Errorf("examples: %s", buf.String())
	}
	PrintExamples(nil, "effectoro")
}
