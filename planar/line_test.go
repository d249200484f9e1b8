package planar

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLineIsInf(t *testing.T) {
	if (Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}).IsInf() {
		t.Error("line is infinite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0), Pt(math.Inf(1), 1.0)}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}
}

func TestIntersectLine(t *testing.T) {
	hLine := Line{Pt(0.0, 0.0), Pt(100.0, 0.0)}
	vLine := Line{Pt(10.0, -10.0), Pt(10.0, 10.0)}
	x, ok := hLine.IntersectLine(vLine)
	if !ok {
		t.Fatal("expected an intersection")
	}
	diff(t, LineIntersection{0.5, 0.1}, x, cmpopts.EquateApprox(0, 1e-7))

	vLine = Line{Pt(-10.0, -10.0), Pt(-10.0, 10.0)}
	if x, ok := hLine.IntersectLine(vLine); ok {
		t.Errorf("expected no intersections, got %v", x)
	}

	vLine = Line{Pt(10.0, 10.0), Pt(10.0, 20.0)}
	if x, ok := hLine.IntersectLine(vLine); ok {
		t.Errorf("expected no intersections, got %v", x)
	}
}

func TestLineNearest(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	d, tt := l.Nearest(Pt(5, 3))
	if d != 9 || tt != 0.5 {
		t.Errorf("got (%v, %v), want (9, 0.5)", d, tt)
	}
	d, tt = l.Nearest(Pt(-2, 0))
	if d != 4 || tt != 0 {
		t.Errorf("got (%v, %v), want (4, 0)", d, tt)
	}
}
