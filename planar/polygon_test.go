package planar

import (
	"errors"
	"math"
	"testing"
)

func unitSquare() Polygon {
	return Polygon{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}
}

func TestPolygonSignedArea(t *testing.T) {
	sq := unitSquare()
	if a := sq.SignedArea(); a != 1 {
		t.Errorf("got area %v, want 1", a)
	}
	rev := Polygon{sq[3], sq[2], sq[1], sq[0]}
	if a := rev.SignedArea(); a != -1 {
		t.Errorf("got area %v, want -1", a)
	}
}

func TestPolygonClean(t *testing.T) {
	p := Polygon{Pt(0, 0), Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1), Pt(0, 1e-9)}
	got, idx := p.Clean(1e-6)
	diff(t, unitSquare(), got)
	diff(t, []int{0, 2, 3, 4}, idx)
}

func TestPolygonSelfIntersects(t *testing.T) {
	if unitSquare().SelfIntersects() {
		t.Error("square reported as self-intersecting")
	}
	bowtie := Polygon{Pt(0, 0), Pt(1, 1), Pt(1, 0), Pt(0, 1)}
	if !bowtie.SelfIntersects() {
		t.Error("bowtie not reported as self-intersecting")
	}
	touching := Polygon{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(2, 0.0), Pt(0, 4)}
	if !touching.SelfIntersects() {
		t.Error("vertex touching an edge not reported")
	}
}

func triangleArea(p Polygon, tri [3]int) float64 {
	return 0.5 * p[tri[1]].Sub(p[tri[0]]).Cross(p[tri[2]].Sub(p[tri[0]]))
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		area float64
	}{
		{"square", unitSquare(), 1},
		{"clockwise square", Polygon{Pt(0, 1), Pt(1, 1), Pt(1, 0), Pt(0, 0)}, 1},
		{"L shape", Polygon{Pt(0, 0), Pt(2, 0), Pt(2, 1), Pt(1, 1), Pt(1, 2), Pt(0, 2)}, 3},
		{"collinear vertex", Polygon{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(2, 1), Pt(0, 1)}, 2},
		{"deck section", Polygon{
			Pt(-6, 0), Pt(-6, 0.3), Pt(-2, 0.5), Pt(2, 0.5), Pt(6, 0.3), Pt(6, 0),
			Pt(3, -1.5), Pt(-3, -1.5),
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris, err := tt.poly.Triangulate()
			if err != nil {
				t.Fatal(err)
			}
			if len(tris) != len(tt.poly)-2 {
				t.Fatalf("got %d triangles, want %d", len(tris), len(tt.poly)-2)
			}
			want := math.Abs(tt.poly.SignedArea())
			if tt.area != 0 && math.Abs(want-tt.area) > 1e-12 {
				t.Fatalf("polygon area %v, expected %v", want, tt.area)
			}
			var sum float64
			for _, tri := range tris {
				a := triangleArea(tt.poly, tri)
				if a < -1e-12 {
					t.Errorf("triangle %v is clockwise", tri)
				}
				sum += a
			}
			if math.Abs(sum-want) > 1e-9 {
				t.Errorf("triangles cover %v, want %v", sum, want)
			}
		})
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	if _, err := (Polygon{Pt(0, 0), Pt(1, 0)}).Triangulate(); !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want %v", err, ErrDegenerate)
	}
	line := Polygon{Pt(0, 0), Pt(1, 0), Pt(2, 0)}
	if _, err := line.Triangulate(); !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want %v", err, ErrDegenerate)
	}
}
