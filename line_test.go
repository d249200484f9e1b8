package deck

import (
	"math"
	"testing"
)

func TestLineArclen(t *testing.T) {
	l := Line{Pt(0.0, 0.0, 0.0), Pt(1.0, 1.0, 1.0)}
	want := math.Sqrt(3.0)
	epsilon := 1e-9
	if d := l.Arclen(epsilon) - want; d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}

	ts := l.SolveForArclen(want/3.0, epsilon)
	if d := math.Abs(ts - 1.0/3.0); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
}

func TestLineIsInf(t *testing.T) {
	if (Line{Pt(0.0, 0.0, 0.0), Pt(1.0, 1.0, 1.0)}).IsInf() {
		t.Error("line is infinite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0, 0.0), Pt(math.Inf(1), 1.0, 1.0)}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0, 0.0), Pt(0.0, 0.0, math.Inf(-1))}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}
}

func TestLineNearest(t *testing.T) {
	l := Line{Pt(0, 0, 0), Pt(10, 0, 0)}
	tests := []struct {
		pt     Point
		distSq float64
		t      float64
	}{
		{Pt(5, 3, 4), 25, 0.5},
		{Pt(-2, 0, 0), 4, 0},
		{Pt(12, 0, 1), 5, 1},
	}
	for _, tt := range tests {
		distSq, ts := l.Nearest(tt.pt)
		if distSq != tt.distSq || ts != tt.t {
			t.Errorf("%v: got (%v, %v), want (%v, %v)", tt.pt, distSq, ts, tt.distSq, tt.t)
		}
	}
}

func TestPolylineEval(t *testing.T) {
	pl := mustPolyline(t, Pt(0, 0, 0), Pt(2, 0, 0), Pt(2, 2, 0))
	diff(t, Interval{0, 2}, pl.Domain())
	assertNear(t, pl.Eval(0.5), Pt(1, 0, 0), 1e-12)
	assertNear(t, pl.Eval(1.5), Pt(2, 1, 0), 1e-12)
	diff(t, Vec(0, 2, 0), pl.Deriv(1.5))
	// Parameters outside the domain extend the end segments.
	assertNear(t, pl.Eval(-0.5), Pt(-1, 0, 0), 1e-12)
	assertNear(t, pl.Eval(2.5), Pt(2, 3, 0), 1e-12)

	var n int
	for l := range pl.Segments() {
		assertClose(t, l.Length(), 2, 0)
		n++
	}
	diff(t, 2, n)

	if _, err := NewPolyline(Pt(0, 0, 0)); err == nil {
		t.Error("polyline with a single point was accepted")
	}
}
