package deck

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultAccuracy is a default value for functions that take an accuracy
// argument. It bounds the error of arc length computations.
const DefaultAccuracy = 1e-6

// DefaultTolerance is the default geometric tolerance, in model units, for
// intersections, joins and planarity checks.
const DefaultTolerance = 1e-3

// Interval is a closed parameter range [T0, T1].
type Interval struct {
	T0, T1 float64
}

// Length returns T1 − T0.
func (iv Interval) Length() float64 { return iv.T1 - iv.T0 }

// Contains reports whether t lies within the interval, end points included.
func (iv Interval) Contains(t float64) bool { return t >= iv.T0 && t <= iv.T1 }

// Lerp maps the fraction f ∈ [0, 1] to a parameter in the interval.
func (iv Interval) Lerp(f float64) float64 { return iv.T0 + f*(iv.T1-iv.T0) }

// Curve is a parametric curve in 3D.
type Curve interface {
	// Domain returns the parameter range of the curve.
	Domain() Interval
	// Eval evaluates the curve at parameter t.
	Eval(t float64) Point
	// Deriv evaluates the first derivative with respect to t.
	Deriv(t float64) Vec3
	// Transform returns a transformed copy of the curve. The copy shares no
	// memory with the receiver.
	Transform(aff Affine) Curve
}

// Arclener can be implemented by curves that compute their length better than
// numerical integration does.
type Arclener interface {
	Arclen(accuracy float64) float64
}

// ArclenSolver can be implemented by types that have a better way of computing
// the solution than the one used by [SolveForArclen].
type ArclenSolver interface {
	SolveForArclen(arclen float64, accuracy float64) float64
}

// Spanner is implemented by piecewise curves. Spans returns the parameters at
// which the pieces meet, in increasing order and including both ends of the
// domain. The curve is smooth between consecutive spans.
type Spanner interface {
	Spans() []float64
}

// Bounder is implemented by curves that compute a bounding box without
// sampling. The box may be loose but must enclose the curve.
type Bounder interface {
	BoundingBox() Box
}

// Linear is implemented by curves made of straight segments.
type Linear interface {
	Vertices() []Point
}

// Start returns the first point of c.
func Start(c Curve) Point { return c.Eval(c.Domain().T0) }

// End returns the last point of c.
func End(c Curve) Point { return c.Eval(c.Domain().T1) }

// IsClosed reports whether the ends of c are within tol of each other.
func IsClosed(c Curve, tol float64) bool {
	return Start(c).Distance(End(c)) <= tol
}

// Tangent returns the unit tangent of c at t. It is NaN where the derivative
// vanishes.
func Tangent(c Curve, t float64) Vec3 {
	return c.Deriv(t).Normalize()
}

// Spans returns the smooth pieces of c. See [Spanner].
func Spans(c Curve) []float64 {
	if s, ok := c.(Spanner); ok {
		return s.Spans()
	}
	dom := c.Domain()
	return []float64{dom.T0, dom.T1}
}

// Arclen returns the length of c.
func Arclen(c Curve, accuracy float64) float64 {
	if a, ok := c.(Arclener); ok {
		return a.Arclen(accuracy)
	}
	dom := c.Domain()
	return ArclenRange(c, dom.T0, dom.T1, accuracy)
}

// ArclenRange returns the length of c between the parameters t0 and t1. The
// range is integrated span by span with Gauss-Legendre quadrature, bisecting
// until successive estimates agree within accuracy.
func ArclenRange(c Curve, t0, t1, accuracy float64) float64 {
	if t1 <= t0 {
		return 0
	}
	var sum float64
	a := t0
	for _, s := range Spans(c) {
		if s <= a {
			continue
		}
		if s >= t1 {
			break
		}
		sum += arclenQuad(c, a, s, accuracy, 0)
		a = s
	}
	return sum + arclenQuad(c, a, t1, accuracy, 0)
}

func arclenQuad(c Curve, a, b, accuracy float64, depth int) float64 {
	speed := func(t float64) float64 { return c.Deriv(t).Hypot() }
	coarse := quad.Fixed(speed, a, b, 8, quad.Legendre{}, 1)
	fine := quad.Fixed(speed, a, b, 16, quad.Legendre{}, 1)
	if math.Abs(fine-coarse) <= accuracy || depth >= 16 {
		return fine
	}
	m := 0.5 * (a + b)
	return arclenQuad(c, a, m, 0.5*accuracy, depth+1) +
		arclenQuad(c, m, b, 0.5*accuracy, depth+1)
}

// SolveForArclen solves for the parameter that has the given arc length from
// the start of the curve.
//
// This implementation uses the [ITP method], as provided by [SolveITP]. This is
// as robust as bisection but typically converges faster. In addition, the
// method takes care to compute arc lengths of increasingly smaller segments of
// the curve, as that is likely faster than repeatedly computing the arc length
// of the segment starting at the domain's start.
//
// Types can optionally implement [ArclenSolver], in which case this function
// will defer to it.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func SolveForArclen(c Curve, arclen float64, accuracy float64) float64 {
	if s, ok := c.(ArclenSolver); ok {
		return s.SolveForArclen(arclen, accuracy)
	}

	dom := c.Domain()
	if arclen <= 0.0 {
		return dom.T0
	}
	totalArclen := Arclen(c, accuracy)
	if arclen >= totalArclen {
		return dom.T1
	}
	tLast := dom.T0
	arclenLast := 0.0
	epsilon := accuracy / totalArclen * dom.Length()
	n := 1.0 - min(math.Ceil(math.Log2(accuracy/totalArclen)), 0.0)
	innerAccuracy := accuracy / n
	f := func(t float64) float64 {
		if t > tLast {
			arclenLast += ArclenRange(c, tLast, t, innerAccuracy)
		} else {
			arclenLast -= ArclenRange(c, t, tLast, innerAccuracy)
		}
		tLast = t
		return arclenLast - arclen
	}
	return SolveITP(f, dom.T0, dom.T1, epsilon, 1, 0.2/dom.Length(), -arclen, totalArclen-arclen)
}

// DivideByCount returns count parameters that split c into count−1 pieces of
// equal arc length. The first and last parameters are the ends of the domain.
func DivideByCount(c Curve, count int, accuracy float64) ([]float64, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: division count %d, need at least 2", ErrInvalidParameter, count)
	}
	total := Arclen(c, accuracy)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: curve length is %g", ErrGeometricFailure, total)
	}
	targets := floats.Span(make([]float64, count), 0, total)
	dom := c.Domain()
	params := make([]float64, count)
	params[0] = dom.T0
	params[count-1] = dom.T1
	for i := 1; i < count-1; i++ {
		params[i] = SolveForArclen(c, targets[i], accuracy)
	}
	for i := 1; i < count; i++ {
		if !(params[i] > params[i-1]) {
			return nil, fmt.Errorf("%w: division parameters do not increase at %d", ErrGeometricFailure, i)
		}
	}
	return params, nil
}

// CurveBounds returns a box enclosing c.
func CurveBounds(c Curve) Box {
	if b, ok := c.(Bounder); ok {
		return b.BoundingBox()
	}
	// Sampled boxes can miss bulges between samples.
	b := NewBoxFromPoints(Flatten(c, 32)...)
	return b.Inflate(0.01 * b.Diagonal())
}

// ProjectToPlane returns the orthogonal projection of c onto plane.
func ProjectToPlane(c Curve, plane Frame) Curve {
	return c.Transform(Project(plane))
}

// Flatten approximates c by points. Straight pieces contribute their
// vertices; every other span is split into perSpan equal parameter steps. The
// number of points depends only on the structure of c, so transformed copies
// of one curve flatten to the same count.
func Flatten(c Curve, perSpan int) []Point {
	switch c := c.(type) {
	case Linear:
		return c.Vertices()
	case *PolyCurve:
		var pts []Point
		for i, seg := range c.Segments {
			sp := Flatten(seg, perSpan)
			if i > 0 {
				sp = sp[1:]
			}
			pts = append(pts, sp...)
		}
		return pts
	}
	perSpan = max(perSpan, 1)
	spans := Spans(c)
	pts := make([]Point, 0, (len(spans)-1)*perSpan+1)
	pts = append(pts, c.Eval(spans[0]))
	for i := 1; i < len(spans); i++ {
		a, b := spans[i-1], spans[i]
		for k := 1; k <= perSpan; k++ {
			pts = append(pts, c.Eval(a+(b-a)*float64(k)/float64(perSpan)))
		}
	}
	return pts
}
