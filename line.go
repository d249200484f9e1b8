package deck

// Line represents a line segment, parametrized over [0, 1].
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ Curve = Line{}
var _ ArclenSolver = Line{}
var _ Linear = Line{}

func (l Line) Domain() Interval { return Interval{0, 1} }

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Deriv(t float64) Vec3 {
	return l.P1.Sub(l.P0)
}

func (l Line) Transform(aff Affine) Curve {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Distance(l.P0)
}

// Arclen returns the length of the line.
func (l Line) Arclen(accuracy float64) float64 {
	return l.Length()
}

func (l Line) SolveForArclen(arclen float64, accuracy float64) float64 {
	return arclen / l.Length()
}

func (l Line) Vertices() []Point {
	return []Point{l.P0, l.P1}
}

func (l Line) BoundingBox() Box {
	return NewBoxFromPoints(l.P0, l.P1)
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

// Nearest returns the squared distance from pt to the segment and the
// parameter of the closest point.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}
