package appshell

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestExecPassesArgsAndCode(t *testing.T) {
	var got []string
	var out bytes.Buffer
	code := Exec(func(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
		got = argv
		_, _ = io.WriteString(stdout, "ok")
		if ctx.Err() != nil {
			t.Error("context cancelled before run")
		}
		return 2
	}, []string{"-i", "a.fasta"}, &out, io.Discard)
	if code != 2 || len(got) != 2 || out.String() != "ok" {
		t.Fatalf("code=%d argv=%v out=%q", code, got, out.String())
	}
}
