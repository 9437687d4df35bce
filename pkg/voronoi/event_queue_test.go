package voronoi

import (
	"math/rand"
	"sort"
	"testing"
)

func TestEventQueueOrder(t *testing.T) {
	q := NewEventQueue()
	for _, p := range []float64{5, 1, 3, 3, 0, 9} {
		q.Insert(&Event{Kind: SiteEvent, Priority: p})
	}
	var got []float64
	for {
		ev, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, ev.Priority)
	}
	want := []float64{0, 1, 3, 3, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("popped %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("popped %v, want %v", got, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d after draining", q.Len())
	}
}

func TestEventQueueTiesKeepInsertionOrder(t *testing.T) {
	q := NewEventQueue()
	var ids []EventID
	for i := 0; i < 5; i++ {
		ids = append(ids, q.Insert(&Event{Kind: CircleEvent, Priority: 7}))
	}
	for i, want := range ids {
		ev, _ := q.Pop()
		if ev.ID != want {
			t.Errorf("pop %d: id %d, want %d", i, ev.ID, want)
		}
	}
}

func TestEventQueueInvalidate(t *testing.T) {
	q := NewEventQueue()
	a := q.Insert(&Event{Priority: 1})
	b := q.Insert(&Event{Priority: 2})
	c := q.Insert(&Event{Priority: 3})

	if !q.Invalidate(b) {
		t.Fatal("Invalidate of a pending event returned false")
	}
	if q.Invalidate(b) {
		t.Error("second Invalidate returned true")
	}
	if q.Contains(b) || !q.Contains(a) || !q.Contains(c) {
		t.Error("Contains out of sync after Invalidate")
	}
	if q.Invalidate(NoEvent) {
		t.Error("Invalidate(NoEvent) returned true")
	}

	if next, ok := q.NextAbove(1); !ok || next != 3 {
		t.Errorf("NextAbove(1) = %g, %v; want 3, true", next, ok)
	}
	if _, ok := q.NextAbove(3); ok {
		t.Error("NextAbove past the last event reported one")
	}

	if _, ok := q.PeekReady(1); ok {
		t.Error("event at the sweep line reported ready")
	}
	if ev, ok := q.PeekReady(1.5); !ok || ev.ID != a {
		t.Errorf("PeekReady(1.5) = %v, %v", ev, ok)
	}

	if !q.Invalidate(a) {
		t.Fatal("Invalidate of the first event returned false")
	}
	if ev, ok := q.Peek(); !ok || ev.ID != c {
		t.Errorf("Peek after removing the head = %v, %v", ev, ok)
	}
}

func TestEventQueueRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := NewEventQueue()

	live := make(map[EventID]float64)
	var ids []EventID
	for i := 0; i < 2000; i++ {
		p := float64(rng.Intn(500))
		id := q.Insert(&Event{Priority: p})
		live[id] = p
		ids = append(ids, id)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for _, id := range ids[:900] {
		if !q.Invalidate(id) {
			t.Fatalf("Invalidate(%d) = false", id)
		}
		delete(live, id)
	}
	if q.Len() != len(live) {
		t.Fatalf("Len = %d, want %d", q.Len(), len(live))
	}

	pending := q.Pending()
	if !sort.SliceIsSorted(pending, func(i, j int) bool { return pending[i].before(pending[j]) }) {
		t.Error("Pending is not in firing order")
	}

	var prev *Event
	for q.Len() > 0 {
		ev, _ := q.Pop()
		if _, ok := live[ev.ID]; !ok {
			t.Fatalf("popped cancelled event %d", ev.ID)
		}
		delete(live, ev.ID)
		if prev != nil && ev.before(prev) {
			t.Fatalf("event %d (%g) popped after %d (%g)", ev.ID, ev.Priority, prev.ID, prev.Priority)
		}
		prev = ev
	}
	if len(live) != 0 {
		t.Errorf("%d events never popped", len(live))
	}
}

func TestNewCircleEventKey(t *testing.T) {
	foci := [3]Site{
		{ID: 0, Point: Point{900, 600}},
		{ID: 1, Point: Point{450, 200}},
		{ID: 2, Point: Point{1100, 300}},
	}
	ev := newCircleEvent([3]ArcID{7, 8, 9}, foci, Circle{Center: Point{0, 10}, Radius: 5})
	want := ArcKey{Left: 8, Middle: 7, Right: 9}
	if ev.Key != want {
		t.Errorf("Key = %+v, want %+v", ev.Key, want)
	}
	if ev.Priority != 15 {
		t.Errorf("Priority = %g, want 15", ev.Priority)
	}
}
