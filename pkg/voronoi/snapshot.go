package voronoi

type ArcView struct {
	ID   ArcID `json:"id"`
	Site Site  `json:"site"`

	// Left and Right index Snapshot.Breakpoints; NoBreakpoint at the ends.
	Left  BreakpointID `json:"left"`
	Right BreakpointID `json:"right"`

	// Parabola at the sweep line; Defined is false while the sweep sits on or
	// above the focus.
	Parabola Parabola `json:"parabola"`
	Defined  bool     `json:"defined"`

	// Converging is true when the arc's breakpoints got closer over the last
	// tick.
	Converging bool `json:"converging"`
}

type BreakpointView struct {
	ID       BreakpointID `json:"id"`
	At       Point        `json:"at"`
	Previous Point        `json:"previous"`
	Fixed    bool         `json:"fixed"`
	Sites    [2]int       `json:"sites"`
}

type CircleView struct {
	ID       EventID  `json:"id"`
	Arcs     [3]ArcID `json:"arcs"`
	Key      ArcKey   `json:"key"`
	Circle   Circle   `json:"circle"`
	Priority float64  `json:"priority"`
}

type NodeView struct {
	ID    NodeID `json:"id"`
	At    Point  `json:"at"`
	Fixed bool   `json:"fixed"`
}

// EdgeView is an edge with both ends resolved to positions. Final is set once
// both ends are fixed vertices, or once the sweep is done: no event is left
// that could fix an open end, so the edge is complete and unbounded.
type EdgeView struct {
	ID    EdgeID    `json:"id"`
	Nodes [2]NodeID `json:"nodes"`
	A     Point     `json:"a"`
	B     Point     `json:"b"`
	Sites [2]int    `json:"sites"`
	Final bool      `json:"final"`
}

// Snapshot is a read-only copy of everything a renderer needs at one tick.
type Snapshot struct {
	Sweep        float64          `json:"sweep"`
	Sites        []Site           `json:"sites"`
	Arcs         []ArcView        `json:"arcs"`
	Breakpoints  []BreakpointView `json:"breakpoints"`
	CircleEvents []CircleView     `json:"circle_events"`
	Nodes        []NodeView       `json:"nodes"`
	Edges        []EdgeView       `json:"edges"`
	Cells        []Cell           `json:"cells"`
	Done         bool             `json:"done"`
}

// Snapshot copies the current state. It does not change the sweep.
func (s *Sweep) Snapshot() Snapshot {
	snap := Snapshot{
		Sweep: s.y,
		Sites: s.Sites(),
		Done:  s.Done(),
	}

	for _, arc := range s.beach.Arcs() {
		v := ArcView{ID: arc.ID, Site: arc.Site, Left: arc.LeftBreakpoint, Right: arc.RightBreakpoint}
		v.Parabola, v.Defined = s.beach.Parabola(arc.ID, s.y)
		if arc.LeftBreakpoint != NoBreakpoint && arc.RightBreakpoint != NoBreakpoint {
			l := s.beach.Breakpoint(arc.LeftBreakpoint).Track
			r := s.beach.Breakpoint(arc.RightBreakpoint).Track
			v.Converging = l.Converging(r)
		}
		snap.Arcs = append(snap.Arcs, v)
	}

	for _, bp := range s.beach.Breakpoints() {
		snap.Breakpoints = append(snap.Breakpoints, BreakpointView{
			ID:       bp.ID,
			At:       bp.Track.Current,
			Previous: bp.Track.Previous,
			Fixed:    bp.Fixed(),
			Sites:    [2]int{bp.Sites[0].ID, bp.Sites[1].ID},
		})
	}

	for _, ev := range s.queue.Pending() {
		if ev.Kind != CircleEvent {
			continue
		}
		snap.CircleEvents = append(snap.CircleEvents, CircleView{
			ID:       ev.ID,
			Arcs:     ev.Arcs,
			Key:      ev.Key,
			Circle:   ev.Circle,
			Priority: ev.Priority,
		})
	}

	for _, n := range s.diagram.Nodes() {
		snap.Nodes = append(snap.Nodes, NodeView{
			ID:    n.ID,
			At:    s.diagram.Position(n.ID),
			Fixed: n.Fixed(),
		})
	}

	for _, e := range s.diagram.Edges() {
		a, b := s.diagram.Node(e.Nodes[0]), s.diagram.Node(e.Nodes[1])
		snap.Edges = append(snap.Edges, EdgeView{
			ID:    e.ID,
			Nodes: e.Nodes,
			A:     s.diagram.Position(a.ID),
			B:     s.diagram.Position(b.ID),
			Sites: [2]int{e.Sites[0].ID, e.Sites[1].ID},
			Final: snap.Done || (a.Fixed() && b.Fixed()),
		})
	}

	snap.Cells = s.diagram.Cells(s.sites)
	return snap
}
