package deck

// CubicBez is a cubic Bézier segment, parametrized over [0, 1].
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

var _ Curve = CubicBez{}
var _ Bounder = CubicBez{}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) Domain() Interval { return Interval{0, 1} }

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec3(c.P0).Mul(mt * mt * mt)
	b := Vec3(c.P1).Mul(mt * mt * 3.0)
	cc := Vec3(c.P2).Mul(mt * 3.0)
	d := Vec3(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Deriv(t float64) Vec3 {
	mt := 1.0 - t
	d0 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d1 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d0.Add(d1).Add(d2)
}

func (c CubicBez) Transform(aff Affine) Curve {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec3(c.P0).Add(Vec3(c.P1).Mul(2.0)).Add(Vec3(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec3(c.P1).Add(Vec3(c.P2).Mul(2.0)).Add(Vec3(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// BoundingBox returns the box around the control polygon, which encloses the
// curve.
func (c CubicBez) BoundingBox() Box {
	return NewBoxFromPoints(c.P0, c.P1, c.P2, c.P3)
}
