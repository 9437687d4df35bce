package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

var testOptions = Options{
	Width:         800,
	Height:        600,
	XMax:          1600,
	YMax:          1000,
	ShowCircles:   true,
	ShowParabolas: true,
}

func snapshotAt(t *testing.T, y float64, points ...voronoi.Point) voronoi.Snapshot {
	t.Helper()
	s, err := voronoi.New(points)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.AdvanceTo(y); err != nil {
		t.Fatalf("AdvanceTo: %v", err)
	}
	return s.Snapshot()
}

func TestRenderLayers(t *testing.T) {
	four := []voronoi.Point{{X: 450, Y: 200}, {X: 1100, Y: 300}, {X: 900, Y: 600}, {X: 1400, Y: 800}}
	snap := snapshotAt(t, 850, four...)

	tests := []struct {
		name      string
		circles   bool
		parabolas bool
	}{
		{"everything", true, true},
		{"no circles", false, true},
		{"no parabolas", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOptions
			o.ShowCircles, o.ShowParabolas = tt.circles, tt.parabolas

			var buf bytes.Buffer
			if err := Render(&buf, snap, o); err != nil {
				t.Fatalf("Render: %v", err)
			}
			page := buf.String()
			for _, name := range []string{SeriesSites, SeriesVertices, SeriesOpenEdges, SeriesSweep} {
				if !strings.Contains(page, name) {
					t.Errorf("page has no %q series", name)
				}
			}
			if got := strings.Contains(page, SeriesCircles); got != tt.circles {
				t.Errorf("circle layer present = %v, want %v", got, tt.circles)
			}
			if got := strings.Contains(page, SeriesBeachline); got != tt.parabolas {
				t.Errorf("beachline layer present = %v, want %v", got, tt.parabolas)
			}
		})
	}
}

func TestBeachlineSamples(t *testing.T) {
	snap := snapshotAt(t, 400, voronoi.Point{X: 100, Y: 100}, voronoi.Point{X: 300, Y: 300})

	// the right copy of the first arc lies above the plane
	arcs := beachline(snap, testOptions)
	if len(arcs) != 2 {
		t.Fatalf("got %d sampled arcs, want 2", len(arcs))
	}
	for i, pts := range arcs {
		for j, p := range pts {
			if p.Y < 0 {
				t.Errorf("arc %d: sample %v above the plane", i, p)
			}
			if j > 0 && p.X <= pts[j-1].X {
				t.Errorf("arc %d: samples not left to right at %d", i, j)
			}
		}
	}
	if end, start := arcs[0][len(arcs[0])-1], arcs[1][0]; math.Abs(end.X-start.X) > 1e-9 || math.Abs(end.Y-start.Y) > 1e-6 {
		t.Errorf("arcs do not meet: %v and %v", end, start)
	}
}

func TestCircleSamples(t *testing.T) {
	c := voronoi.Circle{Center: voronoi.Point{X: 10, Y: 20}, Radius: 5}
	pts := circle(c)
	if len(pts) != circleSamples+1 {
		t.Fatalf("got %d samples", len(pts))
	}
	for _, p := range pts {
		if d := p.Dist(c.Center); math.Abs(d-5) > 1e-9 {
			t.Errorf("sample %v at distance %g", p, d)
		}
	}
}
