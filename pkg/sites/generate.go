package sites

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

// Random scatters n sites over [0,width)x[0,height). Y-coordinates are whole
// numbers drawn without repetition, so height must be at least n.
func Random(rng *rand.Rand, n, width, height int) ([]voronoi.Point, error) {
	if n < 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("random sites: bad size n=%d %dx%d", n, width, height)
	}
	if n > height {
		return nil, fmt.Errorf("random sites: %d distinct rows do not fit in height %d", n, height)
	}
	ys := rng.Perm(height)[:n]
	points := make([]voronoi.Point, n)
	for i := range points {
		points[i] = voronoi.Point{
			X: float64(rng.Intn(width)),
			Y: float64(ys[i]),
		}
	}
	return points, nil
}

// Grid lays n sites out in rows and columns. Each row is tilted a little so
// no two sites share a y-coordinate, and x is jittered with a seed derived
// from n so no three sites line up. The layout is the same for the same
// arguments.
func Grid(n, width, height int) ([]voronoi.Point, error) {
	if n <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid sites: bad size n=%d %dx%d", n, width, height)
	}
	points := make([]voronoi.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)
	tilt := yStep / float64(2*cols)
	rng := rand.New(rand.NewSource(int64(n)))

	for i := 0; i < rows && len(points) < n; i++ {
		for j := 0; j < cols && len(points) < n; j++ {
			jitter := (rng.Float64() - 0.5) * xStep / 4
			points = append(points, voronoi.Point{
				X: xStep/2 + float64(j)*xStep + jitter,
				Y: yStep/4 + float64(i)*yStep + float64(j)*tilt,
			})
		}
	}
	return points, nil
}
