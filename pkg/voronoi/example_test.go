package voronoi_test

import (
	"fmt"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

func ExampleCompute() {
	s, err := voronoi.Compute([]voronoi.Point{{X: 100, Y: 100}, {X: 300, Y: 300}})
	if err != nil {
		fmt.Println(err)
		return
	}
	snap := s.Snapshot()
	fmt.Printf("sweep at %.0f, %d arcs, %d edge, done: %v\n", snap.Sweep, len(snap.Arcs), len(snap.Edges), snap.Done)
	// Output: sweep at 301, 3 arcs, 1 edge, done: true
}

func ExampleSweep_Advance() {
	s, err := voronoi.New([]voronoi.Point{
		{X: 450, Y: 200},
		{X: 1100, Y: 300},
		{X: 900, Y: 600},
		{X: 1400, Y: 800},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, y := range []float64{500, 700, 1000} {
		if err := s.AdvanceTo(y); err != nil {
			fmt.Println(err)
			return
		}
		snap := s.Snapshot()
		fixed := 0
		for _, n := range snap.Nodes {
			if n.Fixed {
				fixed++
			}
		}
		fmt.Printf("y=%.0f arcs=%d edges=%d vertices=%d\n", y, len(snap.Arcs), len(snap.Edges), fixed)
	}
	// Output:
	// y=500 arcs=3 edges=1 vertices=0
	// y=700 arcs=4 edges=3 vertices=1
	// y=1000 arcs=5 edges=5 vertices=2
}
