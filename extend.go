package deck

import (
	"fmt"
	"math"
)

// extended continues a curve past both ends along its end tangents. The tails
// keep the end speed of the base curve, so the extension is C¹ in the
// parameter.
type extended struct {
	base   Curve
	d0, d1 float64
}

var _ Curve = extended{}
var _ Spanner = extended{}
var _ Arclener = extended{}
var _ Bounder = extended{}

// Extend returns c lengthened at each end by a straight run of the given arc
// length, continuing the end tangent.
func Extend(c Curve, length float64) (Curve, error) {
	if !(length >= 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: extension length %g", ErrInvalidParameter, length)
	}
	if length == 0 {
		return c, nil
	}
	dom := c.Domain()
	s0 := c.Deriv(dom.T0).Hypot()
	s1 := c.Deriv(dom.T1).Hypot()
	if !(s0 > 0) || !(s1 > 0) {
		return nil, fmt.Errorf("%w: curve has no tangent at an end point", ErrGeometricFailure)
	}
	return extended{base: c, d0: length / s0, d1: length / s1}, nil
}

// ExtendRelative extends c at each end by frac times its own length.
func ExtendRelative(c Curve, frac float64, accuracy float64) (Curve, error) {
	return Extend(c, frac*Arclen(c, accuracy))
}

func (e extended) Domain() Interval {
	dom := e.base.Domain()
	return Interval{dom.T0 - e.d0, dom.T1 + e.d1}
}

func (e extended) Eval(t float64) Point {
	dom := e.base.Domain()
	switch {
	case t < dom.T0:
		return e.base.Eval(dom.T0).Translate(e.base.Deriv(dom.T0).Mul(t - dom.T0))
	case t > dom.T1:
		return e.base.Eval(dom.T1).Translate(e.base.Deriv(dom.T1).Mul(t - dom.T1))
	}
	return e.base.Eval(t)
}

func (e extended) Deriv(t float64) Vec3 {
	dom := e.base.Domain()
	return e.base.Deriv(max(dom.T0, min(t, dom.T1)))
}

func (e extended) Transform(aff Affine) Curve {
	return extended{base: e.base.Transform(aff), d0: e.d0, d1: e.d1}
}

func (e extended) Spans() []float64 {
	dom := e.Domain()
	spans := Spans(e.base)
	out := make([]float64, 0, len(spans)+2)
	out = append(out, dom.T0)
	out = append(out, spans...)
	return append(out, dom.T1)
}

func (e extended) Arclen(accuracy float64) float64 {
	dom := e.base.Domain()
	return Arclen(e.base, accuracy) +
		e.base.Deriv(dom.T0).Hypot()*e.d0 +
		e.base.Deriv(dom.T1).Hypot()*e.d1
}

func (e extended) BoundingBox() Box {
	dom := e.Domain()
	return CurveBounds(e.base).UnionPoint(e.Eval(dom.T0)).UnionPoint(e.Eval(dom.T1))
}
