package voronoi

import (
	"fmt"

	"github.com/0x0FACED/fortune-sweep/pkg/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type (
	ArcID          int
	BreakpointID   int
	IntersectionID int
)

const (
	NoArc        ArcID        = -1
	NoBreakpoint BreakpointID = -1
)

// eventTolerance lets a circle whose bottom sits on the sweep still be queued.
const eventTolerance = 1e-9

// Root selects one of the two roots of a ParabolicIntersection.
type Root int

const (
	LeftRoot Root = iota
	RightRoot
)

func (r Root) String() string {
	if r == LeftRoot {
		return "left"
	}
	return "right"
}

// ParabolicIntersection intersects the parabolas of two sites. Above indexes
// Sites and names the parabola lying on the beachline between the two roots;
// it depends only on which focus is further along the sweep, so it never
// changes.
type ParabolicIntersection struct {
	ID    IntersectionID
	Sites [2]Site
	Above int
}

func (pi ParabolicIntersection) Solve(directrix float64) (left, right Point, err error) {
	p1, err := NewParabola(pi.Sites[0].Point, directrix)
	if err != nil {
		return left, right, err
	}
	p2, err := NewParabola(pi.Sites[1].Point, directrix)
	if err != nil {
		return left, right, err
	}
	left, right, _, err = Intersect(p1, p2)
	return left, right, err
}

// roleFor picks the root traced by the breakpoint whose right-hand arc
// belongs to rightSite. Between the roots the upper parabola is on the
// beachline, so its arc starts at the left root.
func (pi ParabolicIntersection) roleFor(rightSite Site) Root {
	if pi.Sites[pi.Above].ID == rightSite.ID {
		return LeftRoot
	}
	return RightRoot
}

func solveIntersection(s1, s2 Site, directrix float64) (ParabolicIntersection, Point, Point, error) {
	pi := ParabolicIntersection{Sites: [2]Site{s1, s2}}
	p1, err := NewParabola(s1.Point, directrix)
	if err != nil {
		return pi, Point{}, Point{}, err
	}
	p2, err := NewParabola(s2.Point, directrix)
	if err != nil {
		return pi, Point{}, Point{}, err
	}
	left, right, above, err := Intersect(p1, p2)
	if err != nil {
		return pi, Point{}, Point{}, err
	}
	pi.Above = above
	return pi, left, right, nil
}

// BreakpointState is either Dynamic or Fixed.
type BreakpointState interface {
	isBreakpointState()
}

// Dynamic breakpoints are recomputed from their intersection every tick.
type Dynamic struct {
	Intersection IntersectionID
	Role         Root
}

// Fixed breakpoints were frozen where they met their neighbour.
type Fixed struct {
	At Point
}

func (Dynamic) isBreakpointState() {}
func (Fixed) isBreakpointState()   {}

func (d Dynamic) fix(at Point) Fixed {
	return Fixed{At: at}
}

// Track is a breakpoint position at the latest tick and at the one before.
type Track struct {
	Current  Point
	Previous Point
}

func (t Track) next(p Point) Track {
	return Track{Current: p, Previous: t.Current}
}

// Converging reports whether t and o got closer over the last tick.
func (t Track) Converging(o Track) bool {
	return t.Current.Dist(o.Current) < t.Previous.Dist(o.Previous)
}

type Breakpoint struct {
	ID    BreakpointID
	State BreakpointState
	Track Track
	// Sites of the arcs on the left and right of the breakpoint.
	Sites [2]Site
}

func (b Breakpoint) Fixed() bool {
	_, ok := b.State.(Fixed)
	return ok
}

type ParabolicArc struct {
	ID              ArcID
	Site            Site
	Left, Right     ArcID
	LeftBreakpoint  BreakpointID
	RightBreakpoint BreakpointID
	// Event is the pending circle event in which this arc vanishes.
	Event EventID
	alive bool
}

func (a ParabolicArc) Alive() bool { return a.alive }

// Merge describes the result of RemoveArc.
type Merge struct {
	Vanished    ArcID
	Left, Right BreakpointID
	Merged      BreakpointID
	Vertex      Point
	Sites       [2]Site
}

// Beachline is the left-to-right chain of arcs. Arcs, breakpoints and
// intersections live in arenas and refer to each other by index; removed
// arcs stay in the arena marked dead.
type Beachline struct {
	arcs          []ParabolicArc
	breakpoints   []Breakpoint
	intersections []ParabolicIntersection
	head          ArcID
	size          int

	queue    *EventQueue
	observer Observer
	log      *logger.ZapLogger
}

func NewBeachline(queue *EventQueue, log *logger.ZapLogger) *Beachline {
	if log == nil {
		log = logger.NewNop()
	}
	return &Beachline{
		head:     NoArc,
		queue:    queue,
		observer: nopObserver{},
		log:      log,
	}
}

func (b *Beachline) Len() int { return b.size }

func (b *Beachline) Head() ArcID { return b.head }

func (b *Beachline) Arc(id ArcID) ParabolicArc { return b.arcs[id] }

func (b *Beachline) Breakpoint(id BreakpointID) Breakpoint { return b.breakpoints[id] }

func (b *Beachline) Intersection(id IntersectionID) ParabolicIntersection {
	return b.intersections[id]
}

// Arcs returns the live arcs from left to right.
func (b *Beachline) Arcs() []ParabolicArc {
	out := make([]ParabolicArc, 0, b.size)
	for id := b.head; id != NoArc; id = b.arcs[id].Right {
		out = append(out, b.arcs[id])
	}
	return out
}

// Breakpoints returns every breakpoint ever created, dynamic and fixed, in
// creation order.
func (b *Beachline) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(b.breakpoints))
	copy(out, b.breakpoints)
	return out
}

// Position is the breakpoint position at the latest tick.
func (b *Beachline) Position(id BreakpointID) Point {
	return b.breakpoints[id].Track.Current
}

func (b *Beachline) positionAt(id BreakpointID, directrix float64) (Point, error) {
	switch s := b.breakpoints[id].State.(type) {
	case Fixed:
		return s.At, nil
	case Dynamic:
		left, right, err := b.intersections[s.Intersection].Solve(directrix)
		if err != nil {
			return Point{}, err
		}
		if s.Role == LeftRoot {
			return left, nil
		}
		return right, nil
	}
	panic(fmt.Sprintf("breakpoint %d has no state", id))
}

// Covers reports whether x falls under the arc at the given directrix:
// strictly right of its left breakpoint and not right of its right one.
func (b *Beachline) Covers(id ArcID, x, directrix float64) (bool, error) {
	arc := b.arcs[id]
	if arc.LeftBreakpoint != NoBreakpoint {
		p, err := b.positionAt(arc.LeftBreakpoint, directrix)
		if err != nil {
			return false, err
		}
		if !(x > p.X) {
			return false, nil
		}
	}
	if arc.RightBreakpoint != NoBreakpoint {
		p, err := b.positionAt(arc.RightBreakpoint, directrix)
		if err != nil {
			return false, err
		}
		if !(x <= p.X) {
			return false, nil
		}
	}
	return true, nil
}

// Locate scans the chain for the arc above x.
func (b *Beachline) Locate(x, directrix float64) (ArcID, error) {
	for id := b.head; id != NoArc; id = b.arcs[id].Right {
		ok, err := b.Covers(id, x, directrix)
		if err != nil {
			return NoArc, fmt.Errorf("locate %g: %w", x, err)
		}
		if ok {
			return id, nil
		}
	}
	return NoArc, &DegenerateGeometryError{Op: "locate", Reason: fmt.Sprintf("no arc covers x=%g", x)}
}

// InsertSite splits the arc above site into a left copy, an arc for site
// and a right copy. The arc is located with breakpoints at locateAt and the
// new breakpoints are computed at buildAt, which must lie past site.Y.
// The returned error may carry circle events that could not be registered;
// the beachline itself is updated whenever newArc != NoArc.
func (b *Beachline) InsertSite(site Site, locateAt, buildAt float64) (newArc, replaced ArcID, err error) {
	if b.head == NoArc {
		id := b.newArc(site)
		b.head = id
		b.log.Debug("[beach] first arc", zap.Int("site", site.ID), zap.Int("arc", int(id)))
		return id, NoArc, nil
	}

	target, err := b.Locate(site.X, locateAt)
	if err != nil {
		return NoArc, NoArc, err
	}
	old := b.arcs[target]

	inter, leftRoot, rightRoot, err := solveIntersection(old.Site, site, buildAt)
	if err != nil {
		return NoArc, NoArc, fmt.Errorf("split arc %d: %w", target, err)
	}
	pick := func(r Root) Point {
		if r == LeftRoot {
			return leftRoot
		}
		return rightRoot
	}

	b.invalidate(target)
	b.invalidate(old.Left)
	b.invalidate(old.Right)

	iid := b.addIntersection(inter)
	leftRole, rightRole := inter.roleFor(site), inter.roleFor(old.Site)
	bl := b.addBreakpoint(iid, leftRole, [2]Site{old.Site, site}, pick(leftRole))
	br := b.addBreakpoint(iid, rightRole, [2]Site{site, old.Site}, pick(rightRole))

	lc := b.newArc(old.Site)
	na := b.newArc(site)
	rc := b.newArc(old.Site)

	b.arcs[lc].Left, b.arcs[lc].Right = old.Left, na
	b.arcs[lc].LeftBreakpoint, b.arcs[lc].RightBreakpoint = old.LeftBreakpoint, bl
	b.arcs[na].Left, b.arcs[na].Right = lc, rc
	b.arcs[na].LeftBreakpoint, b.arcs[na].RightBreakpoint = bl, br
	b.arcs[rc].Left, b.arcs[rc].Right = na, old.Right
	b.arcs[rc].LeftBreakpoint, b.arcs[rc].RightBreakpoint = br, old.RightBreakpoint

	if old.Left != NoArc {
		b.arcs[old.Left].Right = lc
	} else {
		b.head = lc
	}
	if old.Right != NoArc {
		b.arcs[old.Right].Left = rc
	}
	b.arcs[target].alive = false
	b.size--

	b.log.Debug("[beach] arc split",
		zap.Int("site", site.ID),
		zap.Int("replaced", int(target)),
		zap.Int("left", int(lc)), zap.Int("new", int(na)), zap.Int("right", int(rc)),
		zap.Float64("directrix", buildAt),
	)

	for _, id := range []ArcID{old.Left, lc, na, rc, old.Right} {
		err = multierr.Append(err, b.registerCircle(id, locateAt))
	}
	return na, target, err
}

// Validate checks at fire time that ev still describes three contiguous
// live arcs.
func (b *Beachline) Validate(ev *Event) error {
	if ev.Kind != CircleEvent {
		return &InvalidEventError{Event: ev.ID, Reason: "not a circle event"}
	}
	id := ev.Arcs[1]
	if id < 0 || int(id) >= len(b.arcs) {
		return &InvalidEventError{Event: ev.ID, Reason: "unknown arc"}
	}
	arc := b.arcs[id]
	switch {
	case !arc.alive:
		return &InvalidEventError{Event: ev.ID, Reason: fmt.Sprintf("arc %d already removed", id)}
	case arc.Left != ev.Arcs[0] || arc.Right != ev.Arcs[2]:
		return &InvalidEventError{Event: ev.ID, Reason: fmt.Sprintf("arc %d neighbours changed", id)}
	case arc.Event != ev.ID:
		return &InvalidEventError{Event: ev.ID, Reason: fmt.Sprintf("arc %d waits for event %d", id, arc.Event)}
	}
	return nil
}

// RemoveArc deletes the middle arc of ev. Its two breakpoints are fixed at
// the circle centre and replaced by one breakpoint between the former
// neighbours, computed at the directrix at. Merge.Vanished is NoArc when
// nothing was changed.
func (b *Beachline) RemoveArc(ev *Event, at float64) (Merge, error) {
	if err := b.Validate(ev); err != nil {
		return Merge{Vanished: NoArc}, err
	}
	id := ev.Arcs[1]
	arc := b.arcs[id]
	l, r := b.arcs[arc.Left], b.arcs[arc.Right]

	inter, leftRoot, rightRoot, err := solveIntersection(l.Site, r.Site, at)
	if err != nil {
		return Merge{Vanished: NoArc}, fmt.Errorf("merge around arc %d: %w", id, err)
	}
	role := inter.roleFor(r.Site)
	pos := rightRoot
	if role == LeftRoot {
		pos = leftRoot
	}

	b.queue.Invalidate(arc.Event)
	b.arcs[id].Event = NoEvent
	b.invalidate(l.ID)
	b.invalidate(r.ID)

	vertex := ev.Circle.Center
	b.fix(arc.LeftBreakpoint, vertex)
	b.fix(arc.RightBreakpoint, vertex)

	iid := b.addIntersection(inter)
	merged := b.addBreakpoint(iid, role, [2]Site{l.Site, r.Site}, pos)

	b.arcs[l.ID].Right = r.ID
	b.arcs[l.ID].RightBreakpoint = merged
	b.arcs[r.ID].Left = l.ID
	b.arcs[r.ID].LeftBreakpoint = merged
	b.arcs[id].alive = false
	b.size--

	b.log.Debug("[beach] arc removed",
		zap.Int("arc", int(id)),
		zap.Int("left", int(l.ID)), zap.Int("right", int(r.ID)),
		zap.Float64("x", vertex.X), zap.Float64("y", vertex.Y),
	)

	for _, n := range []ArcID{l.ID, r.ID} {
		err = multierr.Append(err, b.registerCircle(n, at))
	}
	return Merge{
		Vanished: id,
		Left:     arc.LeftBreakpoint,
		Right:    arc.RightBreakpoint,
		Merged:   merged,
		Vertex:   vertex,
		Sites:    [2]Site{l.Site, r.Site},
	}, err
}

// Retrack moves every dynamic breakpoint to the directrix. Breakpoints whose
// parabolas are undefined there (the sweep was rewound above a focus) keep
// their last position.
func (b *Beachline) Retrack(directrix float64) error {
	var errs error
	for i := range b.breakpoints {
		bp := &b.breakpoints[i]
		if bp.Fixed() {
			continue
		}
		if bp.Sites[0].Y >= directrix || bp.Sites[1].Y >= directrix {
			continue
		}
		pos, err := b.positionAt(bp.ID, directrix)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("breakpoint %d: %w", bp.ID, err))
			continue
		}
		bp.Track = bp.Track.next(pos)
	}
	return errs
}

// Parabola of an arc at the directrix; ok is false when the focus is not
// strictly above it.
func (b *Beachline) Parabola(id ArcID, directrix float64) (Parabola, bool) {
	site := b.arcs[id].Site
	if site.Y >= directrix {
		return Parabola{}, false
	}
	p, err := NewParabola(site.Point, directrix)
	return p, err == nil
}

func (b *Beachline) registerCircle(id ArcID, now float64) error {
	if id == NoArc {
		return nil
	}
	b.invalidate(id)

	arc := b.arcs[id]
	if arc.Left == NoArc || arc.Right == NoArc {
		return nil
	}
	l, r := b.arcs[arc.Left], b.arcs[arc.Right]
	if l.Site.ID == r.Site.ID {
		return nil
	}
	if !converging(l.Site.Point, arc.Site.Point, r.Site.Point) {
		return nil
	}

	circle, err := Circumcircle(l.Site.Point, arc.Site.Point, r.Site.Point)
	if err != nil {
		return fmt.Errorf("circle event for arc %d: %w", id, err)
	}
	if circle.Bottom() < now-eventTolerance {
		b.log.Debug("[beach] circle already passed", zap.Int("arc", int(id)), zap.Float64("bottom", circle.Bottom()))
		return nil
	}

	ev := newCircleEvent([3]ArcID{arc.Left, id, arc.Right}, [3]Site{l.Site, arc.Site, r.Site}, circle)
	b.arcs[id].Event = b.queue.Insert(ev)
	b.observer.EventQueued(*ev)

	b.log.Debug("[beach] circle event queued",
		zap.Int("event", int(ev.ID)),
		zap.Int("arc", int(id)),
		zap.Float64("priority", ev.Priority),
		zap.Float64("cx", circle.Center.X), zap.Float64("cy", circle.Center.Y),
	)
	return nil
}

func (b *Beachline) invalidate(id ArcID) {
	if id == NoArc {
		return
	}
	arc := &b.arcs[id]
	if arc.Event == NoEvent {
		return
	}
	if b.queue.Invalidate(arc.Event) {
		b.log.Debug("[beach] circle event cancelled", zap.Int("event", int(arc.Event)), zap.Int("arc", int(id)))
	}
	arc.Event = NoEvent
}

func (b *Beachline) fix(id BreakpointID, at Point) {
	bp := &b.breakpoints[id]
	d, ok := bp.State.(Dynamic)
	if !ok {
		panic(fmt.Sprintf("breakpoint %d fixed twice", id))
	}
	bp.State = d.fix(at)
	bp.Track = Track{Current: at, Previous: bp.Track.Current}
}

func (b *Beachline) newArc(site Site) ArcID {
	id := ArcID(len(b.arcs))
	b.arcs = append(b.arcs, ParabolicArc{
		ID:              id,
		Site:            site,
		Left:            NoArc,
		Right:           NoArc,
		LeftBreakpoint:  NoBreakpoint,
		RightBreakpoint: NoBreakpoint,
		alive:           true,
	})
	b.size++
	return id
}

func (b *Beachline) addIntersection(pi ParabolicIntersection) IntersectionID {
	pi.ID = IntersectionID(len(b.intersections))
	b.intersections = append(b.intersections, pi)
	return pi.ID
}

func (b *Beachline) addBreakpoint(inter IntersectionID, role Root, sites [2]Site, at Point) BreakpointID {
	id := BreakpointID(len(b.breakpoints))
	b.breakpoints = append(b.breakpoints, Breakpoint{
		ID:    id,
		State: Dynamic{Intersection: inter, Role: role},
		Track: Track{Current: at, Previous: at},
		Sites: sites,
	})
	return id
}
