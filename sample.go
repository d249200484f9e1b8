package deck

import (
	"fmt"
)

// FramePolicy selects how station frames are oriented along a curve.
type FramePolicy int

const (
	// PerpendicularFrames propagates a rotation-minimizing frame along the
	// curve with the double reflection method. The frame normal is the
	// reversed tangent and the frame does not twist about the curve.
	PerpendicularFrames FramePolicy = iota
	// TangentCrossUp orients every frame independently: X = tangent × up,
	// Y = up and Z = X × Y, which is antiparallel to the tangent's component
	// orthogonal to up. It fails where the tangent is parallel to up.
	TangentCrossUp
)

func (p FramePolicy) String() string {
	switch p {
	case PerpendicularFrames:
		return "perpendicular"
	case TangentCrossUp:
		return "tangent-up"
	default:
		return fmt.Sprintf("FramePolicy(%d)", int(p))
	}
}

// ParseFramePolicy parses the names returned by [FramePolicy.String].
func ParseFramePolicy(s string) (FramePolicy, error) {
	switch s {
	case "", "perpendicular":
		return PerpendicularFrames, nil
	case "tangent-up":
		return TangentCrossUp, nil
	}
	return 0, fmt.Errorf("%w: unknown frame policy %q", ErrInvalidParameter, s)
}

// SampleOptions configures [Sample]. The zero value is ready to use.
type SampleOptions struct {
	Policy FramePolicy
	// Up is the global up direction. The zero vector means +Z.
	Up Vec3
	// Accuracy bounds the arc length error. Zero means DefaultAccuracy.
	Accuracy float64
	// Substeps is the number of propagation steps between consecutive
	// stations for PerpendicularFrames. Zero means 8.
	Substeps int
}

func (o *SampleOptions) withDefaults() SampleOptions {
	var out SampleOptions
	if o != nil {
		out = *o
	}
	if out.Up == (Vec3{}) {
		out.Up = Vec(0, 0, 1)
	}
	if out.Accuracy <= 0 {
		out.Accuracy = DefaultAccuracy
	}
	if out.Substeps <= 0 {
		out.Substeps = 8
	}
	return out
}

// Station is an oriented frame placed on a curve.
type Station struct {
	// Index is the station's position in the sampled sequence. It is kept
	// when stations are relocated or dropped.
	Index int
	// Param is the parameter of the station on the sampled curve.
	Param float64
	Frame Frame
}

// Sample places count stations along c, spaced at equal arc length with both
// ends of c included, and orients them according to opts.Policy.
func Sample(c Curve, count int, opts *SampleOptions) ([]Station, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: curve to sample", ErrInputMissing)
	}
	o := opts.withDefaults()
	params, err := DivideByCount(c, count, o.Accuracy)
	if err != nil {
		return nil, err
	}
	return StationsAt(c, params, &o)
}

// StationsAt places stations at the given increasing parameters of c.
func StationsAt(c Curve, params []float64, opts *SampleOptions) ([]Station, error) {
	o := opts.withDefaults()
	switch o.Policy {
	case TangentCrossUp:
		out := make([]Station, len(params))
		for i, t := range params {
			f, err := FrameAt(c, t, o.Up)
			if err != nil {
				return nil, &StationError{Station: i, Err: err}
			}
			out[i] = Station{Index: i, Param: t, Frame: f}
		}
		return out, nil
	case PerpendicularFrames:
		return perpendicularFrames(c, params, o)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, o.Policy)
	}
}

// FrameAt returns the frame at parameter t of c with X = tangent × up and
// Y = up.
func FrameAt(c Curve, t float64, up Vec3) (Frame, error) {
	tan := Tangent(c, t)
	x := tan.Cross(up)
	if tan.IsNaN() || x.Hypot2() < 1e-18*up.Hypot2() {
		return Frame{}, fmt.Errorf("%w: tangent %v at t=%g is degenerate or parallel to up", ErrGeometricFailure, tan, t)
	}
	return NewFrame(c.Eval(t), x, up)
}

func perpendicularFrames(c Curve, params []float64, o SampleOptions) ([]Station, error) {
	if len(params) == 0 {
		return nil, nil
	}
	tangent := func(i int, t float64) (Vec3, error) {
		tan := Tangent(c, t)
		if tan.IsNaN() || tan.IsInf() {
			return Vec3{}, &StationError{Station: i, Err: fmt.Errorf("%w: no tangent at t=%g", ErrGeometricFailure, t)}
		}
		return tan, nil
	}

	t0 := params[0]
	tan, err := tangent(0, t0)
	if err != nil {
		return nil, err
	}
	x := tan.Cross(o.Up)
	if x.Hypot2() < 1e-18*o.Up.Hypot2() {
		x = tan.Perpendicular()
	}
	x = x.Normalize()
	p := c.Eval(t0)

	out := make([]Station, len(params))
	out[0] = Station{Index: 0, Param: t0, Frame: frameFromTangent(p, x, tan)}
	for i := 1; i < len(params); i++ {
		a, b := params[i-1], params[i]
		for k := 1; k <= o.Substeps; k++ {
			t := a + (b-a)*float64(k)/float64(o.Substeps)
			pn := c.Eval(t)
			tn, err := tangent(i, t)
			if err != nil {
				return nil, err
			}
			x = doubleReflect(p, tan, x, pn, tn)
			p, tan = pn, tn
		}
		out[i] = Station{Index: i, Param: b, Frame: frameFromTangent(p, x, tan)}
	}
	return out, nil
}

// doubleReflect carries the reference vector r0 from (p0, t0) to (p1, t1) by
// reflecting in the bisector plane of the chord and then in the plane that
// maps the reflected tangent onto t1.
func doubleReflect(p0 Point, t0, r0 Vec3, p1 Point, t1 Vec3) Vec3 {
	rL, tL := r0, t0
	v1 := p1.Sub(p0)
	if c1 := v1.Dot(v1); c1 > 0 {
		rL = r0.Sub(v1.Mul(2 / c1 * v1.Dot(r0)))
		tL = t0.Sub(v1.Mul(2 / c1 * v1.Dot(t0)))
	}
	v2 := t1.Sub(tL)
	c2 := v2.Dot(v2)
	if c2 == 0 {
		return rL
	}
	return rL.Sub(v2.Mul(2 / c2 * v2.Dot(rL)))
}

// frameFromTangent builds the frame at p with Z = −tan and X as close to x as
// orthogonality allows.
func frameFromTangent(p Point, x, tan Vec3) Frame {
	z := tan.Negate()
	x = x.Sub(z.Mul(x.Dot(z))).Normalize()
	return Frame{
		Origin: p,
		X:      x,
		Y:      z.Cross(x),
		Z:      z,
	}
}
