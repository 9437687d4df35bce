package voronoi

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput marks a site that cannot be turned into a parabola:
	// it sits on the directrix, repeats another site's y or is not finite.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrDegenerateGeometry marks a division by zero in the kernel.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidEvent marks a circle event whose arc triple is gone.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrNegativeSweep is returned by Advance when the sweep would drop below zero.
	ErrNegativeSweep = errors.New("sweep coordinate cannot go negative")
)

type DegenerateInputError struct {
	Point     Point
	Directrix float64
	Reason    string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input (%g, %g) at directrix %g: %s", e.Point.X, e.Point.Y, e.Directrix, e.Reason)
}

func (e *DegenerateInputError) Unwrap() error { return ErrDegenerateInput }

type DegenerateGeometryError struct {
	Op     string
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry in %s: %s", e.Op, e.Reason)
}

func (e *DegenerateGeometryError) Unwrap() error { return ErrDegenerateGeometry }

// InvalidEventError is produced when a stale circle event reaches the front
// of the queue. The sweep discards such events; observers still see them.
type InvalidEventError struct {
	Event  EventID
	Reason string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid circle event %d: %s", e.Event, e.Reason)
}

func (e *InvalidEventError) Unwrap() error { return ErrInvalidEvent }
