package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestBufferedRecords(t *testing.T) {
	l := New()
	l.Info("[sweep] advanced", zap.Float64("y", 12.5))
	l.Debug("[queue] popped", zap.Int("event", 3))

	text := l.Text()
	for _, want := range []string{"[sweep] advanced", "y", "12.5", "[queue] popped"} {
		if !strings.Contains(text, want) {
			t.Errorf("log text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "\033[") {
		t.Errorf("Text kept colour codes: %q", text)
	}

	l.ClearLogs()
	if l.Text() != "" {
		t.Errorf("ClearLogs left %q", l.Text())
	}
}

func TestLevelFilter(t *testing.T) {
	l := NewWithOptions(Options{Level: zap.WarnLevel})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(l.Text(), "hidden") {
		t.Error("info record passed a warn-level logger")
	}
	if !strings.Contains(l.Text(), "shown") {
		t.Error("warn record missing")
	}
}

func TestConsoleTee(t *testing.T) {
	var console bytes.Buffer
	l := NewWithOptions(Options{Level: zap.DebugLevel, Console: &console})
	l.Info("both")
	if !strings.Contains(console.String(), "both") {
		t.Errorf("console copy missing record: %q", console.String())
	}
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	l.Error("nothing")
	if l.Text() != "" {
		t.Errorf("nop logger buffered %q", l.Text())
	}
}

func TestAnsiToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "a < b", "<pre>a &lt; b</pre>"},
		{"colour", "\033[32minfo\033[0m msg", `<pre><span style="color: green;">info</span> msg</pre>`},
		{"unknown code", "\033[35mx\033[0m", "<pre>x</pre>"},
		{"unterminated", "\033[31merr", `<pre><span style="color: red;">err</span></pre>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansiToHTML(tt.in); got != tt.want {
				t.Errorf("ansiToHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if _, err := ParseLevel("bogus"); err == nil {
		t.Error("expected error for unknown level")
	}
	lvl, err := ParseLevel("warn")
	if err != nil || lvl != zap.WarnLevel {
		t.Errorf("ParseLevel(warn) = %v, %v", lvl, err)
	}
}
