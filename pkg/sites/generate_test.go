package sites

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

func uniqueY(t *testing.T, points []voronoi.Point) {
	t.Helper()
	seen := make(map[float64]bool)
	for _, p := range points {
		if seen[p.Y] {
			t.Fatalf("y=%g used twice in %v", p.Y, points)
		}
		seen[p.Y] = true
	}
}

func TestRandom(t *testing.T) {
	points, err := Random(rand.New(rand.NewSource(3)), 50, 1000, 800)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if len(points) != 50 {
		t.Fatalf("got %d points", len(points))
	}
	for _, p := range points {
		if p.X < 0 || p.X >= 1000 || p.Y < 0 || p.Y >= 800 {
			t.Errorf("point %v outside the canvas", p)
		}
	}
	uniqueY(t, points)

	if _, err := Random(rand.New(rand.NewSource(3)), 11, 100, 10); err == nil {
		t.Error("Random fitted 11 rows into height 10")
	}
}

// noThreeInLine fails when three points are close enough to one line for the
// sweep to treat them as collinear.
func noThreeInLine(t *testing.T, points []voronoi.Point) {
	t.Helper()
	for a := 0; a < len(points); a++ {
		for b := a + 1; b < len(points); b++ {
			for c := b + 1; c < len(points); c++ {
				p, q, r := points[a], points[b], points[c]
				ux, uy := q.X-p.X, q.Y-p.Y
				vx, vy := r.X-p.X, r.Y-p.Y
				cross := ux*vy - uy*vx
				if math.Abs(cross) <= 1e-9*math.Hypot(ux, uy)*math.Hypot(vx, vy) {
					t.Errorf("%v, %v and %v are in line", p, q, r)
				}
			}
		}
	}
}

func TestGrid(t *testing.T) {
	for _, n := range []int{1, 2, 7, 12, 20, 100} {
		points, err := Grid(n, 1000, 1000)
		if err != nil {
			t.Fatalf("Grid(%d): %v", n, err)
		}
		if len(points) != n {
			t.Errorf("Grid(%d) made %d points", n, len(points))
		}
		for _, p := range points {
			if p.X < 0 || p.X >= 1000 || p.Y < 0 || p.Y >= 1000 {
				t.Errorf("Grid(%d): point %v outside the canvas", n, p)
			}
		}
		uniqueY(t, points)
		if n <= 20 {
			noThreeInLine(t, points)
		}
	}

	again, _ := Grid(12, 1000, 1000)
	first, _ := Grid(12, 1000, 1000)
	if !reflect.DeepEqual(first, again) {
		t.Error("Grid is not reproducible")
	}
}

func TestGridSweeps(t *testing.T) {
	tests := []struct {
		n             int
		width, height int
	}{
		{12, 1000, 1000},
		{12, 1600, 1000},
		{20, 1600, 1000},
		{100, 1600, 1000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d in %dx%d", tt.n, tt.width, tt.height), func(t *testing.T) {
			points, err := Grid(tt.n, tt.width, tt.height)
			if err != nil {
				t.Fatalf("Grid: %v", err)
			}
			s, err := voronoi.Compute(points)
			if err != nil {
				t.Fatalf("grid sites do not sweep: %v", err)
			}
			if !s.Done() {
				t.Error("sweep not done")
			}
			if s.Y() > 1e6 {
				t.Errorf("sweep ran out to y=%g", s.Y())
			}
		})
	}
}
