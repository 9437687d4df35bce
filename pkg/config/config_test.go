package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fortune.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if len(cfg.Points()) != 4 {
		t.Errorf("default sites = %d, want 4", len(cfg.Points()))
	}
	if cfg.Sweep.Step != 2 {
		t.Errorf("default step = %g, want 2", cfg.Sweep.Step)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[sweep]
step = 5

[server]
addr = "127.0.0.1:9000"
session_ttl = "5m"

[[sites]]
x = 10
y = 20

[[sites]]
x = 30
y = 40
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sweep.Step != 5 {
		t.Errorf("step = %g, want 5", cfg.Sweep.Step)
	}
	if cfg.Sweep.SiteOffset != Default().Sweep.SiteOffset {
		t.Errorf("site_offset = %g, want the default", cfg.Sweep.SiteOffset)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 5*time.Minute {
		t.Errorf("session_ttl = %s, want 5m", cfg.Server.SessionTTL)
	}
	pts := cfg.Points()
	if len(pts) != 2 || pts[1].X != 30 || pts[1].Y != 40 {
		t.Errorf("sites = %v", pts)
	}
	if !cfg.Render.ShowCircles {
		t.Error("render.show_circles lost its default")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[sweep\nstep = 1", "load config"},
		{"unknown key", "[sweep]\nstride = 3", "unknown keys sweep.stride"},
		{"invalid value", "[sweep]\nstep = -1", "sweep.step must be positive"},
		{"bad duration", "[server]\nsession_ttl = \"soon\"", "load config"},
		{"zero ttl", "[server]\nsession_ttl = \"0s\"", "server.session_ttl must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Sweep.Step = 0
	cfg.Log.Level = "loud"
	cfg.Sites = []Site{{X: 1, Y: 5}, {X: 2, Y: 5}, {X: 3, Y: -1}}

	err := cfg.Validate()
	if got := len(multierr.Errors(err)); got != 4 {
		t.Errorf("Validate() returned %d errors, want 4: %v", got, err)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Console = true
	var console bytes.Buffer
	log, err := cfg.NewLogger(&console)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Errorf("console got %q", console.String())
	}

	cfg.Log.Level = "nope"
	if _, err := cfg.NewLogger(nil); err == nil {
		t.Error("NewLogger accepted an unknown level")
	}
}
