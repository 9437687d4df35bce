package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunSummary(t *testing.T) {
	out, err := execute(t, "run", "--step", "100")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"sites=4",
		"arcs=5",
		"edges=5",
		"done=true",
		"(768.023256, 295.348837)",
		"(1197.368421, 581.578947)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--step", "50", "--until", "400", "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var snap voronoi.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if snap.Sweep != 400 || len(snap.Arcs) != 3 || snap.Done {
		t.Errorf("got y=%g arcs=%d done=%v, want y=400 arcs=3 done=false", snap.Sweep, len(snap.Arcs), snap.Done)
	}
}

func TestRunGeneratedSites(t *testing.T) {
	out, err := execute(t, "run", "--grid", "12", "--step", "25")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "sites=12") || !strings.Contains(out, "done=true") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"exclusive layouts", []string{"run", "--random", "5", "--grid", "5"}, "mutually exclusive"},
		{"bad step", []string{"run", "--step", "-1"}, "--step must be positive"},
		{"missing config", []string{"run", "--config", "does-not-exist.toml"}, "load config"},
		{"extra args", []string{"run", "now"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
