package deck

import (
	"fmt"
	"iter"
	"slices"
)

// Polyline is a chain of straight segments through Points. Its domain is
// [0, len(Points)−1] and the parameter i falls on Points[i].
type Polyline struct {
	Points []Point
}

var _ Curve = Polyline{}
var _ ArclenSolver = Polyline{}
var _ Linear = Polyline{}

// NewPolyline returns the polyline through pts. It needs at least two points.
func NewPolyline(pts ...Point) (Polyline, error) {
	if len(pts) < 2 {
		return Polyline{}, fmt.Errorf("%w: polyline needs 2 points, got %d", ErrInvalidParameter, len(pts))
	}
	return Polyline{Points: slices.Clone(pts)}, nil
}

func (pl Polyline) Domain() Interval {
	return Interval{0, float64(len(pl.Points) - 1)}
}

// segment returns the segment containing t and the parameter within it.
// Parameters outside the domain extrapolate the first or last segment.
func (pl Polyline) segment(t float64) (int, float64) {
	n := len(pl.Points) - 1
	switch {
	case t <= 0:
		return 0, t
	case t >= float64(n):
		return n - 1, t - float64(n-1)
	}
	i := int(t)
	return i, t - float64(i)
}

func (pl Polyline) Eval(t float64) Point {
	i, u := pl.segment(t)
	return pl.Points[i].Lerp(pl.Points[i+1], u)
}

func (pl Polyline) Deriv(t float64) Vec3 {
	i, _ := pl.segment(t)
	return pl.Points[i+1].Sub(pl.Points[i])
}

func (pl Polyline) Transform(aff Affine) Curve {
	return Polyline{Points: slices.Collect(Transform(slices.Values(pl.Points), aff))}
}

func (pl Polyline) Spans() []float64 {
	out := make([]float64, len(pl.Points))
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func (pl Polyline) Vertices() []Point {
	return slices.Clone(pl.Points)
}

// Segments yields the polyline's straight pieces.
func (pl Polyline) Segments() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := 1; i < len(pl.Points); i++ {
			if !yield(Line{pl.Points[i-1], pl.Points[i]}) {
				return
			}
		}
	}
}

func (pl Polyline) Arclen(accuracy float64) float64 {
	var sum float64
	for l := range pl.Segments() {
		sum += l.Length()
	}
	return sum
}

func (pl Polyline) SolveForArclen(arclen float64, accuracy float64) float64 {
	if arclen <= 0 {
		return 0
	}
	var i int
	for l := range pl.Segments() {
		n := l.Length()
		if arclen <= n && n > 0 {
			return float64(i) + arclen/n
		}
		arclen -= n
		i++
	}
	return float64(i)
}

func (pl Polyline) BoundingBox() Box {
	return NewBoxFromPoints(pl.Points...)
}
