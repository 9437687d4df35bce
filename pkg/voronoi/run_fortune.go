package voronoi

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// finishMargin is how far past the last event Finish leaves the sweep.
const finishMargin = 1.0

// Compute builds a sweep over points and runs it past its last event.
func Compute(points []Point, opts ...Option) (*Sweep, error) {
	s, err := New(points, opts...)
	if err != nil {
		return nil, err
	}
	return s, s.Finish()
}

// Finish advances until no event is pending. Errors of individual events are
// collected; the sweep keeps going.
func (s *Sweep) Finish() error {
	s.log.Info("[sweep] running to completion", zap.Int("pending", s.queue.Len()))

	var errs error
	for {
		ev, ok := s.queue.Peek()
		if !ok {
			break
		}
		// Far from the origin a margin of 1 can round away; the target must
		// still lie strictly past the event or it never fires.
		base := math.Max(ev.Priority, s.y)
		target := base + finishMargin
		if !(target > base) {
			target = math.Nextafter(base, math.Inf(1))
		}
		if math.IsInf(target, 0) || math.IsNaN(target) {
			return multierr.Append(errs, fmt.Errorf("finish: event %d at %g cannot be reached", ev.ID, ev.Priority))
		}
		errs = multierr.Append(errs, s.AdvanceTo(target))
	}

	s.log.Info("[sweep] done",
		zap.Float64("y", s.y),
		zap.Int("vertices", s.diagram.FixedCount()),
		zap.Int("edges", len(s.diagram.edges)),
	)
	return errs
}
