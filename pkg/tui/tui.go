package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleError  = lipgloss.NewStyle().Foreground(colorRed)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleShrink = lipgloss.NewStyle().Foreground(colorYellow)
	styleDone   = lipgloss.NewStyle().Foreground(colorGreen)
)

// Model steps a sweep from the keyboard: down/j advances, up/k rewinds.
type Model struct {
	Sweep         *voronoi.Sweep
	Step          float64
	ShowCircles   bool
	ShowParabolas bool
	Err           error
}

func New(sweep *voronoi.Sweep, step float64) Model {
	return Model{
		Sweep:         sweep,
		Step:          step,
		ShowCircles:   true,
		ShowParabolas: true,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "down", "j":
		m.Err = m.Sweep.Advance(m.Step)
	case "up", "k":
		m.Err = m.Sweep.Advance(-m.Step)
	case "end", "G":
		m.Err = m.Sweep.Finish()
	case "c":
		m.ShowCircles = !m.ShowCircles
	case "p":
		m.ShowParabolas = !m.ShowParabolas
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.Sweep.Snapshot()
	var b strings.Builder

	b.WriteString(styleTitle.Render("Voronoi sweep"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ step  end finish  c circles  p parabolas  q quit"))
	b.WriteString("\n\n")

	fixed := 0
	for _, n := range snap.Nodes {
		if n.Fixed {
			fixed++
		}
	}
	fmt.Fprintf(&b, "y %s  sites %s  arcs %s  edges %s  vertices %s",
		styleNumber.Render(fmt.Sprintf("%.3f", snap.Sweep)),
		styleNumber.Render(fmt.Sprint(len(snap.Sites))),
		styleNumber.Render(fmt.Sprint(len(snap.Arcs))),
		styleNumber.Render(fmt.Sprint(len(snap.Edges))),
		styleNumber.Render(fmt.Sprint(fixed)),
	)
	if snap.Done {
		b.WriteString("  " + styleDone.Render("done"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.arcTable(snap))
	b.WriteString("\n")

	if m.ShowCircles {
		b.WriteString("\n")
		b.WriteString(styleHeader.Render("Circle events"))
		b.WriteString("\n")
		if len(snap.CircleEvents) == 0 {
			b.WriteString(styleDim.Render("  none pending"))
			b.WriteString("\n")
		}
		for _, c := range snap.CircleEvents {
			fmt.Fprintf(&b, "  #%d at y=%.3f  centre (%.2f, %.2f)  r=%.2f\n",
				c.ID, c.Priority, c.Circle.Center.X, c.Circle.Center.Y, c.Circle.Radius)
		}
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(styleError.Render(m.Err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) arcTable(snap voronoi.Snapshot) string {
	headers := []string{"Arc", "Site", "Focus"}
	if m.ShowParabolas {
		headers = append(headers, "Parabola")
	}

	rows := make([][]string, 0, len(snap.Arcs))
	for _, a := range snap.Arcs {
		row := []string{
			fmt.Sprint(a.ID),
			fmt.Sprint(a.Site.ID),
			fmt.Sprintf("(%.1f, %.1f)", a.Site.X, a.Site.Y),
		}
		if m.ShowParabolas {
			p := "undefined"
			if a.Defined {
				p = fmt.Sprintf("%.4gx² %+.4gx %+.4g", a.Parabola.A, a.Parabola.B, a.Parabola.C)
			}
			row = append(row, p)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row >= 0 && row < len(snap.Arcs) && snap.Arcs[row].Converging {
				return styleShrink
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
