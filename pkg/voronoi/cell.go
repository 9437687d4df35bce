package voronoi

import (
	"math"
	"sort"
)

// Cell is the region of one site: the edges that bound it, ordered by
// decreasing angle of the neighbouring site as seen from Site.
type Cell struct {
	Site  Site     `json:"site"`
	Edges []EdgeID `json:"edges"`
}

type halfEdge struct {
	edge  EdgeID
	angle float64
}

type halfEdgesByAngle []halfEdge

func (s halfEdgesByAngle) Len() int           { return len(s) }
func (s halfEdgesByAngle) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s halfEdgesByAngle) Less(i, j int) bool { return s[i].angle > s[j].angle }

// Cells groups the edges built so far by the sites they separate. Sites
// without any edge yet get an empty cell.
func (d *DiagramBuilder) Cells(sites []Site) []Cell {
	halves := make([][]halfEdge, len(sites))
	for _, e := range d.edges {
		for i, s := range e.Sites {
			other := e.Sites[1-i]
			halves[s.ID] = append(halves[s.ID], halfEdge{
				edge:  e.ID,
				angle: math.Atan2(other.Y-s.Y, other.X-s.X),
			})
		}
	}

	cells := make([]Cell, len(sites))
	for i, site := range sites {
		sort.Stable(halfEdgesByAngle(halves[i]))
		cells[i] = Cell{Site: site, Edges: make([]EdgeID, len(halves[i]))}
		for j, h := range halves[i] {
			cells[i].Edges[j] = h.edge
		}
	}
	return cells
}
