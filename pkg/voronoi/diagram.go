package voronoi

import (
	"fmt"

	"github.com/0x0FACED/fortune-sweep/pkg/logger"
	"go.uber.org/zap"
)

type (
	NodeID int
	EdgeID int
)

// NodeState is either LiveNode or FixedNode.
type NodeState interface {
	isNodeState()
}

// LiveNode follows a breakpoint while it is still moving.
type LiveNode struct {
	Breakpoint BreakpointID
}

// FixedNode is a finished Voronoi vertex.
type FixedNode struct {
	At Point
}

func (LiveNode) isNodeState()  {}
func (FixedNode) isNodeState() {}

type VoronoiNode struct {
	ID    NodeID
	State NodeState
}

func (n VoronoiNode) Fixed() bool {
	_, ok := n.State.(FixedNode)
	return ok
}

// VoronoiEdge joins two nodes. Its ends are ids and must be read through
// DiagramBuilder.Resolve: merged nodes are redirected, never rewritten.
type VoronoiEdge struct {
	ID    EdgeID
	Nodes [2]NodeID
	// Sites whose cells the edge separates.
	Sites [2]Site
}

type ChangeKind int

const (
	NodeCreated ChangeKind = iota
	NodeFixed
	NodeMerged
	EdgeCreated
)

func (k ChangeKind) String() string {
	switch k {
	case NodeCreated:
		return "node-created"
	case NodeFixed:
		return "node-fixed"
	case NodeMerged:
		return "node-merged"
	default:
		return "edge-created"
	}
}

// Change is one entry of the builder history. Into is set for merges, At for
// fixes.
type Change struct {
	Kind ChangeKind
	Node NodeID
	Into NodeID
	Edge EdgeID
	At   Point
}

type positionSource interface {
	Position(BreakpointID) Point
}

// DiagramBuilder accumulates nodes and edges as the sweep runs. Nothing is
// deleted: nodes only go from live to fixed, and merged nodes are remapped.
type DiagramBuilder struct {
	nodes        []VoronoiNode
	edges        []VoronoiEdge
	remap        map[NodeID]NodeID
	byBreakpoint map[BreakpointID]NodeID
	history      []Change

	src positionSource
	log *logger.ZapLogger
}

func NewDiagramBuilder(src positionSource, log *logger.ZapLogger) *DiagramBuilder {
	if log == nil {
		log = logger.NewNop()
	}
	return &DiagramBuilder{
		remap:        make(map[NodeID]NodeID),
		byBreakpoint: make(map[BreakpointID]NodeID),
		src:          src,
		log:          log,
	}
}

// SiteInserted records the edge traced by the two breakpoints of a new arc.
func (d *DiagramBuilder) SiteInserted(left, right BreakpointID, sites [2]Site) EdgeID {
	a := d.liveNode(left)
	b := d.liveNode(right)
	e := d.addEdge(a, b, sites)
	d.log.Debug("[diagram] edge opened", zap.Int("edge", int(e)), zap.Int("site-a", sites[0].ID), zap.Int("site-b", sites[1].ID))
	return e
}

// CircleFired closes the two edges ending at the vanished arc's breakpoints
// in one fixed vertex and opens a new edge from it along the merged
// breakpoint. It returns the fixed node.
func (d *DiagramBuilder) CircleFired(m Merge) (NodeID, error) {
	left, lok := d.byBreakpoint[m.Left]
	right, rok := d.byBreakpoint[m.Right]
	live := d.liveNode(m.Merged)
	if !lok || !rok || d.nodes[left].Fixed() || d.nodes[right].Fixed() {
		return live, fmt.Errorf("vertex (%g, %g): breakpoints %d/%d are not followed by live nodes", m.Vertex.X, m.Vertex.Y, m.Left, m.Right)
	}

	d.fixNode(left, m.Vertex)
	d.fixNode(right, m.Vertex)

	vertex := d.addNode(FixedNode{At: m.Vertex})
	d.merge(left, vertex)
	d.merge(right, vertex)

	e := d.addEdge(live, vertex, m.Sites)
	d.log.Info("[diagram] vertex fixed",
		zap.Int("node", int(vertex)),
		zap.Float64("x", m.Vertex.X), zap.Float64("y", m.Vertex.Y),
		zap.Int("edge", int(e)),
	)
	return vertex, nil
}

// Resolve follows merges to the node an id currently stands for.
func (d *DiagramBuilder) Resolve(id NodeID) NodeID {
	for {
		next, ok := d.remap[id]
		if !ok {
			return id
		}
		id = next
	}
}

func (d *DiagramBuilder) Node(id NodeID) VoronoiNode {
	return d.nodes[d.Resolve(id)]
}

// Position of a node: the breakpoint's latest position while live.
func (d *DiagramBuilder) Position(id NodeID) Point {
	switch s := d.Node(id).State.(type) {
	case FixedNode:
		return s.At
	case LiveNode:
		return d.src.Position(s.Breakpoint)
	}
	panic(fmt.Sprintf("node %d has no state", id))
}

// Nodes returns the nodes not merged into another one.
func (d *DiagramBuilder) Nodes() []VoronoiNode {
	out := make([]VoronoiNode, 0, len(d.nodes))
	for _, n := range d.nodes {
		if _, merged := d.remap[n.ID]; !merged {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the edges with their ends resolved.
func (d *DiagramBuilder) Edges() []VoronoiEdge {
	out := make([]VoronoiEdge, len(d.edges))
	for i, e := range d.edges {
		e.Nodes = [2]NodeID{d.Resolve(e.Nodes[0]), d.Resolve(e.Nodes[1])}
		out[i] = e
	}
	return out
}

// FixedCount is the number of finished vertices.
func (d *DiagramBuilder) FixedCount() int {
	n := 0
	for _, node := range d.Nodes() {
		if node.Fixed() {
			n++
		}
	}
	return n
}

func (d *DiagramBuilder) History() []Change {
	out := make([]Change, len(d.history))
	copy(out, d.history)
	return out
}

func (d *DiagramBuilder) liveNode(bp BreakpointID) NodeID {
	id := d.addNode(LiveNode{Breakpoint: bp})
	d.byBreakpoint[bp] = id
	return id
}

func (d *DiagramBuilder) addNode(state NodeState) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, VoronoiNode{ID: id, State: state})
	d.history = append(d.history, Change{Kind: NodeCreated, Node: id})
	return id
}

func (d *DiagramBuilder) fixNode(id NodeID, at Point) {
	n := &d.nodes[id]
	if n.Fixed() {
		panic(fmt.Sprintf("node %d fixed twice", id))
	}
	n.State = FixedNode{At: at}
	d.history = append(d.history, Change{Kind: NodeFixed, Node: id, At: at})
}

func (d *DiagramBuilder) merge(id, into NodeID) {
	d.remap[id] = into
	d.history = append(d.history, Change{Kind: NodeMerged, Node: id, Into: into})
}

func (d *DiagramBuilder) addEdge(a, b NodeID, sites [2]Site) EdgeID {
	id := EdgeID(len(d.edges))
	d.edges = append(d.edges, VoronoiEdge{ID: id, Nodes: [2]NodeID{a, b}, Sites: sites})
	d.history = append(d.history, Change{Kind: EdgeCreated, Edge: id})
	return id
}
