package deck

import (
	"fmt"
	"math"
)

// Ellipse is a closed planar curve C(t) = Center + cos(t)·U + sin(t)·V over
// [0, 2π]. A circle has perpendicular U and V of equal length; any affine
// image of a circle is an Ellipse.
type Ellipse struct {
	Center Point
	U, V   Vec3
}

var _ Curve = Ellipse{}
var _ Arclener = Ellipse{}
var _ Bounder = Ellipse{}

// NewCircle returns the circle of the given radius in the XY plane of frame,
// centered on its origin and starting on its X axis.
func NewCircle(frame Frame, radius float64) (Ellipse, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Ellipse{}, fmt.Errorf("%w: circle radius %g", ErrInvalidParameter, radius)
	}
	return Ellipse{
		Center: frame.Origin,
		U:      frame.X.Mul(radius),
		V:      frame.Y.Mul(radius),
	}, nil
}

func (e Ellipse) Domain() Interval { return Interval{0, 2 * math.Pi} }

func (e Ellipse) Eval(t float64) Point {
	s, c := math.Sincos(t)
	return e.Center.Translate(e.U.Mul(c)).Translate(e.V.Mul(s))
}

func (e Ellipse) Deriv(t float64) Vec3 {
	s, c := math.Sincos(t)
	return e.V.Mul(c).Sub(e.U.Mul(s))
}

func (e Ellipse) Transform(aff Affine) Curve {
	return Ellipse{
		Center: e.Center.Transform(aff),
		U:      e.U.Transform(aff),
		V:      e.V.Transform(aff),
	}
}

// Radii returns the lengths of U and V.
func (e Ellipse) Radii() (float64, float64) {
	return e.U.Hypot(), e.V.Hypot()
}

// IsCircle reports whether the ellipse is a circle within tol.
func (e Ellipse) IsCircle(tol float64) bool {
	ru, rv := e.Radii()
	return math.Abs(ru-rv) <= tol && math.Abs(e.U.Dot(e.V)) <= tol*max(ru, rv)
}

// Normal returns the unit normal of the ellipse's plane, following the
// direction of travel by the right-hand rule.
func (e Ellipse) Normal() Vec3 {
	return e.U.Cross(e.V).Normalize()
}

// Area returns the enclosed area.
func (e Ellipse) Area() float64 {
	return math.Pi * e.U.Cross(e.V).Hypot()
}

func (e Ellipse) Arclen(accuracy float64) float64 {
	if e.IsCircle(1e-12 * max(e.U.Hypot(), 1)) {
		return 2 * math.Pi * e.U.Hypot()
	}
	return arclenQuad(e, 0, 2*math.Pi, accuracy, 0)
}

// BoundingBox returns the tight axis-aligned box of the ellipse.
func (e Ellipse) BoundingBox() Box {
	ext := Vec(
		math.Hypot(e.U.X, e.V.X),
		math.Hypot(e.U.Y, e.V.Y),
		math.Hypot(e.U.Z, e.V.Z),
	)
	return Box{
		Min: e.Center.Translate(ext.Negate()),
		Max: e.Center.Translate(ext),
	}
}
