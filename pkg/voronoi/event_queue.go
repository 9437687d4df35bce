package voronoi

import "sort"

type EventID int

// NoEvent is the zero EventID; real ids start at 1.
const NoEvent EventID = 0

type EventKind int

const (
	SiteEvent EventKind = iota
	CircleEvent
)

func (k EventKind) String() string {
	if k == SiteEvent {
		return "site"
	}
	return "circle"
}

// ArcKey names a circle event by its three arcs ordered by focus x.
type ArcKey struct {
	Left, Middle, Right ArcID
}

// Event is either a site event (Site set) or a circle event (Arcs and Circle
// set). Priority is the sweep coordinate at which it fires.
type Event struct {
	ID       EventID
	Kind     EventKind
	Priority float64

	Site Site

	// Arcs are the circle event's arcs in beachline order; Arcs[1] vanishes.
	Arcs   [3]ArcID
	Key    ArcKey
	Circle Circle

	seq uint64
}

func (e *Event) before(o *Event) bool {
	if e.Priority != o.Priority {
		return e.Priority < o.Priority
	}
	return e.seq < o.seq
}

func newCircleEvent(arcs [3]ArcID, foci [3]Site, circle Circle) *Event {
	order := []int{0, 1, 2}
	sort.SliceStable(order, func(i, j int) bool {
		return foci[order[i]].X < foci[order[j]].X
	})
	return &Event{
		Kind:     CircleEvent,
		Priority: circle.Bottom(),
		Arcs:     arcs,
		Key:      ArcKey{Left: arcs[order[0]], Middle: arcs[order[1]], Right: arcs[order[2]]},
		Circle:   circle,
	}
}

// EventQueue orders pending events by priority. Equal priorities fire in
// insertion order so replays are reproducible.
type EventQueue struct {
	tree   eventTree
	nodes  map[EventID]*eventNode
	nextID EventID
	seq    uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{nodes: make(map[EventID]*eventNode)}
}

// Insert assigns ev an id and queues it.
func (q *EventQueue) Insert(ev *Event) EventID {
	q.nextID++
	q.seq++
	ev.ID = q.nextID
	ev.seq = q.seq
	q.nodes[ev.ID] = q.tree.insert(ev)
	return ev.ID
}

func (q *EventQueue) Peek() (*Event, bool) {
	if q.tree.first == nil {
		return nil, false
	}
	return q.tree.first.event, true
}

// PeekReady returns the earliest event once the sweep has passed it.
func (q *EventQueue) PeekReady(sweep float64) (*Event, bool) {
	ev, ok := q.Peek()
	if !ok || !(ev.Priority < sweep) {
		return nil, false
	}
	return ev, true
}

func (q *EventQueue) Pop() (*Event, bool) {
	ev, ok := q.Peek()
	if !ok {
		return nil, false
	}
	q.remove(ev.ID)
	return ev, true
}

// Invalidate cancels a pending event. It reports false if the event already
// fired or was cancelled.
func (q *EventQueue) Invalidate(id EventID) bool {
	return q.remove(id)
}

func (q *EventQueue) remove(id EventID) bool {
	node, ok := q.nodes[id]
	if !ok {
		return false
	}
	delete(q.nodes, id)
	q.tree.removeNode(node)
	return true
}

func (q *EventQueue) Contains(id EventID) bool {
	_, ok := q.nodes[id]
	return ok
}

func (q *EventQueue) Len() int {
	return q.tree.size
}

// NextAbove returns the smallest pending priority strictly greater than p.
func (q *EventQueue) NextAbove(p float64) (float64, bool) {
	for node := q.tree.first; node != nil; node = node.next {
		if node.event.Priority > p {
			return node.event.Priority, true
		}
	}
	return 0, false
}

// Pending lists queued events in firing order.
func (q *EventQueue) Pending() []*Event {
	out := make([]*Event, 0, q.tree.size)
	for node := q.tree.first; node != nil; node = node.next {
		out = append(out, node.event)
	}
	return out
}
