package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	SetLevel(Notice)
	defer SetLevel(Notice)

	alpha := New("alpha")
	beta := New("beta")
	SetModuleLevel("beta", Error)

	alpha.Info("alpha-info")
	alpha.Noticef("alpha-%s", "notice")
	beta.Warning("beta-warning")
	beta.Error("beta-error")

	out := buf.String()
	type spec struct {
		msg    string
		expOut bool
	}
	specs := []spec{
		spec{"alpha-info", false},
		spec{"alpha-notice", true},
		spec{"beta-warning", false},
		spec{"beta-error", true},
	}
	for index, s := range specs {
		if strings.Contains(out, s.msg) != s.expOut {
			t.Fatalf("[spec %d] expected %q to be logged: %t; output:\n%s", index, s.msg, s.expOut, out)
		}
	}
	if !strings.Contains(out, "[alpha]") {
		t.Fatalf("expected module name in output; got:\n%s", out)
	}
}

func TestSetSinkPreservesLevel(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	New("gamma").Debug("gamma-debug")
	if !strings.Contains(buf.String(), "gamma-debug") {
		t.Fatalf("expected debug output after replacing the sink; got %q", buf.String())
	}
}
