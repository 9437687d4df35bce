package voronoi

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the plane. Y grows in the direction the sweep moves.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Dist is the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), q.vec()))
}

// Site is an input point. ID is its index in the slice given to New.
type Site struct {
	ID int `json:"id"`
	Point
}

// Parabola holds the coefficients of y = A*x*x + B*x + C: the points equidistant
// from a focus and a horizontal directrix.
type Parabola struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// NewParabola derives the parabola of focus against the directrix y = directrix.
func NewParabola(focus Point, directrix float64) (Parabola, error) {
	if focus.Y == directrix {
		return Parabola{}, &DegenerateInputError{Point: focus, Directrix: directrix, Reason: "focus lies on the directrix"}
	}
	k := 1 / (2 * (focus.Y - directrix))
	return Parabola{
		A: k,
		B: -2 * focus.X * k,
		C: (focus.X*focus.X + focus.Y*focus.Y - directrix*directrix) * k,
	}, nil
}

func (p Parabola) Eval(x float64) float64 {
	return p.A*x*x + p.B*x + p.C
}

// Intersect solves p1(x) = p2(x). The roots come back ordered by x, both
// evaluated on p1. above is the index (0 for p1, 1 for p2) of the parabola
// with the larger y between the roots, i.e. the one that forms the beachline
// there.
func Intersect(p1, p2 Parabola) (left, right Point, above int, err error) {
	a := p1.A - p2.A
	b := p1.B - p2.B
	c := p1.C - p2.C
	if a == 0 {
		return left, right, 0, &DegenerateGeometryError{Op: "intersect", Reason: "equal leading coefficients"}
	}
	disc := b*b - 4*a*c
	if disc < 0 || math.IsNaN(disc) {
		return left, right, 0, &DegenerateGeometryError{Op: "intersect", Reason: "negative discriminant"}
	}

	// q form avoids cancellation when b*b dominates 4ac.
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	var x1, x2 float64
	if q == 0 {
		x1, x2 = 0, 0
	} else {
		x1, x2 = q/a, c/q
	}
	if x2 < x1 {
		x1, x2 = x2, x1
	}

	left = Point{x1, p1.Eval(x1)}
	right = Point{x2, p1.Eval(x2)}

	mid := (x1 + x2) / 2
	if p1.Eval(mid) < p2.Eval(mid) {
		above = 1
	}
	return left, right, above, nil
}

// Circle is a circumcircle of three sites. A circle event fires when the
// sweep reaches Bottom.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

func (c Circle) Bottom() float64 {
	return c.Center.Y + c.Radius
}

// Contains reports whether p lies strictly inside c, with tol of slack.
func (c Circle) Contains(p Point, tol float64) bool {
	return c.Center.Dist(p) < c.Radius-tol
}

// collinearTolerance bounds the sine of the angle at which three foci are
// treated as lying on one line.
const collinearTolerance = 1e-9

// cross is (b-a) x (c-a) together with the product of the two lengths it was
// built from, so callers can compare it relative to the input scale.
func cross(a, b, c Point) (value, scale float64) {
	u, v := r2.Sub(b.vec(), a.vec()), r2.Sub(c.vec(), a.vec())
	return r2.Cross(u, v), r2.Norm(u) * r2.Norm(v)
}

func nearlyCollinear(a, b, c Point) bool {
	value, scale := cross(a, b, c)
	return math.Abs(value) <= collinearTolerance*scale
}

// Circumcircle intersects the perpendicular bisectors of f1f2 and f1f3.
func Circumcircle(f1, f2, f3 Point) (Circle, error) {
	if f1.Y == f2.Y || f1.Y == f3.Y {
		return Circle{}, &DegenerateGeometryError{Op: "circumcircle", Reason: "foci share a y-coordinate"}
	}
	if nearlyCollinear(f1, f2, f3) {
		return Circle{}, &DegenerateGeometryError{Op: "circumcircle", Reason: "collinear foci"}
	}

	a1 := (f2.X - f1.X) / (f1.Y - f2.Y)
	b1 := (f1.X*f1.X + f1.Y*f1.Y - (f2.X*f2.X + f2.Y*f2.Y)) / (2 * (f1.Y - f2.Y))
	a2 := (f3.X - f1.X) / (f1.Y - f3.Y)
	b2 := (f1.X*f1.X + f1.Y*f1.Y - (f3.X*f3.X + f3.Y*f3.Y)) / (2 * (f1.Y - f3.Y))
	if a1 == a2 {
		return Circle{}, &DegenerateGeometryError{Op: "circumcircle", Reason: "collinear foci"}
	}

	cx := (b2 - b1) / (a1 - a2)
	cy := a1*cx + b1
	center := Point{cx, cy}
	return Circle{Center: center, Radius: center.Dist(f1)}, nil
}

// converging reports whether the arc of m between arcs of l and r shrinks as
// the sweep advances, i.e. whether its two breakpoints run into each other.
// Triples within collinearTolerance of a line never converge.
func converging(l, m, r Point) bool {
	value, scale := cross(m, l, r)
	return value < -collinearTolerance*scale
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
