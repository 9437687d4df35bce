package voronoi

import (
	"fmt"
	"math"

	"github.com/0x0FACED/fortune-sweep/pkg/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultSiteOffset is how far past a site's y its arc is first built.
const DefaultSiteOffset = 1e-3

// Observer is told about every event the sweep queues, fires or drops.
type Observer interface {
	EventQueued(Event)
	EventFired(Event)
	EventDiscarded(Event, error)
}

type nopObserver struct{}

func (nopObserver) EventQueued(Event)           {}
func (nopObserver) EventFired(Event)            {}
func (nopObserver) EventDiscarded(Event, error) {}

type options struct {
	log        *logger.ZapLogger
	siteOffset float64
	observer   Observer
}

type Option func(*options)

func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSiteOffset changes the distance past a site at which its breakpoints
// are first computed. Non-positive values are ignored.
func WithSiteOffset(d float64) Option {
	return func(o *options) {
		if d > 0 && !math.IsInf(d, 0) {
			o.siteOffset = d
		}
	}
}

func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// Sweep drives the beachline and the diagram builder from the event queue.
// The sweep line starts at y = 0 and moves by Advance.
type Sweep struct {
	sites   []Site
	queue   *EventQueue
	beach   *Beachline
	diagram *DiagramBuilder
	y       float64

	opts options
	log  *logger.ZapLogger
}

// New queues a site event for every point. Points must be finite and have
// pairwise distinct y-coordinates.
func New(points []Point, opts ...Option) (*Sweep, error) {
	o := options{
		log:        logger.NewNop(),
		siteOffset: DefaultSiteOffset,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	sites, err := newSites(points)
	if err != nil {
		return nil, err
	}

	queue := NewEventQueue()
	beach := NewBeachline(queue, o.log)
	beach.observer = o.observer
	s := &Sweep{
		sites:   sites,
		queue:   queue,
		beach:   beach,
		diagram: NewDiagramBuilder(beach, o.log),
		opts:    o,
		log:     o.log,
	}
	for _, site := range sites {
		ev := &Event{Kind: SiteEvent, Priority: site.Y, Site: site}
		queue.Insert(ev)
		o.observer.EventQueued(*ev)
	}
	s.log.Info("[sweep] created", zap.Int("sites", len(sites)))
	return s, nil
}

func newSites(points []Point) ([]Site, error) {
	seen := make(map[float64]int, len(points))
	sites := make([]Site, len(points))
	for i, p := range points {
		if !finite(p) {
			return nil, fmt.Errorf("site %d: %w", i, &DegenerateInputError{Point: p, Reason: "coordinate is not finite"})
		}
		if j, dup := seen[p.Y]; dup {
			return nil, fmt.Errorf("site %d: %w", i, &DegenerateInputError{
				Point:     p,
				Directrix: p.Y,
				Reason:    fmt.Sprintf("shares its y with site %d", j),
			})
		}
		seen[p.Y] = i
		sites[i] = Site{ID: i, Point: p}
	}
	return sites, nil
}

// Advance moves the sweep by delta. Moving forward fires every queued event
// the sweep passes, in priority order; moving back only recomputes the
// dynamic breakpoints. Failed events are skipped and their errors joined.
func (s *Sweep) Advance(delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("advance by %g: delta is not finite", delta)
	}
	return s.moveTo(s.y + delta)
}

// AdvanceTo moves the sweep to y.
func (s *Sweep) AdvanceTo(y float64) error {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return fmt.Errorf("advance to %g: target is not finite", y)
	}
	return s.moveTo(y)
}

func (s *Sweep) moveTo(target float64) error {
	if target < 0 {
		return fmt.Errorf("move from %g to %g: %w", s.y, target, ErrNegativeSweep)
	}

	var errs error
	if target > s.y {
		errs = s.process(target)
	}
	s.y = target
	errs = multierr.Append(errs, s.beach.Retrack(target))
	return errs
}

func (s *Sweep) process(target float64) error {
	var errs error
	for {
		ev, ok := s.queue.PeekReady(target)
		if !ok {
			return errs
		}
		s.queue.Pop()

		var err error
		switch ev.Kind {
		case SiteEvent:
			err = s.handleSite(ev, target)
		case CircleEvent:
			err = s.handleCircle(ev)
		}
		if err != nil {
			s.log.Error("[sweep] event failed",
				zap.Int("event", int(ev.ID)),
				zap.String("kind", ev.Kind.String()),
				zap.Float64("priority", ev.Priority),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
		}
	}
}

func (s *Sweep) handleSite(ev *Event, target float64) error {
	s.opts.observer.EventFired(*ev)

	build := s.buildDirectrix(ev.Priority, target)
	arc, replaced, err := s.beach.InsertSite(ev.Site, ev.Priority, build)
	if arc == NoArc {
		return fmt.Errorf("site %d: %w", ev.Site.ID, err)
	}
	if replaced != NoArc {
		a := s.beach.Arc(arc)
		s.diagram.SiteInserted(a.LeftBreakpoint, a.RightBreakpoint, [2]Site{s.beach.Arc(replaced).Site, ev.Site})
	}
	s.log.Info("[sweep] site inserted",
		zap.Int("site", ev.Site.ID),
		zap.Float64("x", ev.Site.X), zap.Float64("y", ev.Site.Y),
		zap.Int("arcs", s.beach.Len()),
	)
	if err != nil {
		return fmt.Errorf("site %d: %w", ev.Site.ID, err)
	}
	return nil
}

func (s *Sweep) handleCircle(ev *Event) error {
	if err := s.beach.Validate(ev); err != nil {
		s.log.Debug("[sweep] stale circle event dropped", zap.Int("event", int(ev.ID)), zap.Error(err))
		s.opts.observer.EventDiscarded(*ev, err)
		return nil
	}
	s.opts.observer.EventFired(*ev)

	m, err := s.beach.RemoveArc(ev, ev.Priority)
	if m.Vanished == NoArc {
		return fmt.Errorf("circle event %d: %w", ev.ID, err)
	}
	if _, derr := s.diagram.CircleFired(m); derr != nil {
		err = multierr.Append(err, derr)
	}
	if err != nil {
		return fmt.Errorf("circle event %d: %w", ev.ID, err)
	}
	return nil
}

// buildDirectrix is where a site's breakpoints are first computed: a little
// past the site, but before the next event and the sweep target.
func (s *Sweep) buildDirectrix(p, target float64) float64 {
	bound := target
	if next, ok := s.queue.NextAbove(p); ok && next < bound {
		bound = next
	}
	return p + math.Min(s.opts.siteOffset, (bound-p)/2)
}

// Y is the current sweep coordinate.
func (s *Sweep) Y() float64 { return s.y }

// Done reports whether every event has been processed.
func (s *Sweep) Done() bool { return s.queue.Len() == 0 }

func (s *Sweep) Sites() []Site {
	out := make([]Site, len(s.sites))
	copy(out, s.sites)
	return out
}

// NextEvent is the earliest pending event.
func (s *Sweep) NextEvent() (Event, bool) {
	ev, ok := s.queue.Peek()
	if !ok {
		return Event{}, false
	}
	return *ev, true
}

func (s *Sweep) History() []Change { return s.diagram.History() }
