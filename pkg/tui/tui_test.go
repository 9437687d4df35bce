package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

func newModel(t *testing.T) Model {
	t.Helper()
	s, err := voronoi.New([]voronoi.Point{{X: 450, Y: 200}, {X: 1100, Y: 300}, {X: 900, Y: 600}, {X: 1400, Y: 800}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return New(s, 100)
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStepping(t *testing.T) {
	m := newModel(t)
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	m, _ = press(m, down, down, down, runes("j"))
	if got := m.Sweep.Y(); got != 400 {
		t.Errorf("y = %g after four steps, want 400", got)
	}
	m, _ = press(m, up)
	if got := m.Sweep.Y(); got != 300 {
		t.Errorf("y = %g after rewinding, want 300", got)
	}
	if m.Err != nil {
		t.Errorf("unexpected error %v", m.Err)
	}

	m, _ = press(m, up, up, up, up)
	if m.Err == nil {
		t.Error("rewinding past zero reported no error")
	}
	if !strings.Contains(m.View(), "cannot go negative") {
		t.Error("view does not show the error")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnd})
	if !m.Sweep.Done() || m.Err != nil {
		t.Errorf("finish: done=%v err=%v", m.Sweep.Done(), m.Err)
	}
}

func TestToggles(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})

	view := m.View()
	if !strings.Contains(view, "Circle events") || !strings.Contains(view, "Parabola") {
		t.Fatalf("both layers should show by default:\n%s", view)
	}

	m, _ = press(m, runes("c"), runes("p"))
	if m.ShowCircles || m.ShowParabolas {
		t.Fatal("toggles did not switch the layers off")
	}
	view = m.View()
	if strings.Contains(view, "Circle events") || strings.Contains(view, "Parabola") {
		t.Errorf("hidden layers still drawn:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%q returned no command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", k.String())
		}
	}
}
