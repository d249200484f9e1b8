package deck

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// NURBS is a non-uniform rational B-spline curve.
type NURBS struct {
	Degree int
	Points []Point
	// Weights holds one positive weight per point. Nil means all ones.
	Weights []float64
	// Knots holds len(Points)+Degree+1 non-decreasing values.
	Knots []float64
}

var _ Curve = NURBS{}
var _ Spanner = NURBS{}
var _ Bounder = NURBS{}

// NewNURBS validates and returns a NURBS curve. A nil knot vector is replaced
// by a clamped uniform one over [0, 1]; nil weights make the curve
// non-rational.
func NewNURBS(degree int, points []Point, weights, knots []float64) (NURBS, error) {
	if degree < 1 {
		return NURBS{}, fmt.Errorf("%w: NURBS degree %d", ErrInvalidParameter, degree)
	}
	if len(points) < degree+1 {
		return NURBS{}, fmt.Errorf("%w: degree %d NURBS needs %d points, got %d", ErrInvalidParameter, degree, degree+1, len(points))
	}
	if knots == nil {
		knots = clampedKnots(degree, len(points))
	}
	if len(knots) != len(points)+degree+1 {
		return NURBS{}, fmt.Errorf("%w: %d knots, want %d", ErrInvalidParameter, len(knots), len(points)+degree+1)
	}
	if !sort.Float64sAreSorted(knots) || knots[degree] >= knots[len(points)] {
		return NURBS{}, fmt.Errorf("%w: knot vector must be non-decreasing with a non-empty domain", ErrInvalidParameter)
	}
	if weights != nil {
		if len(weights) != len(points) {
			return NURBS{}, fmt.Errorf("%w: %d weights for %d points", ErrInvalidParameter, len(weights), len(points))
		}
		for i, w := range weights {
			if !(w > 0) {
				return NURBS{}, fmt.Errorf("%w: weight %d is %g", ErrInvalidParameter, i, w)
			}
		}
	}
	return NURBS{
		Degree:  degree,
		Points:  slices.Clone(points),
		Weights: slices.Clone(weights),
		Knots:   slices.Clone(knots),
	}, nil
}

func clampedKnots(degree, n int) []float64 {
	knots := make([]float64, n+degree+1)
	inner := n - degree
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= n:
			knots[i] = 1
		default:
			knots[i] = float64(i-degree) / float64(inner)
		}
	}
	return knots
}

func (c NURBS) Domain() Interval {
	return Interval{c.Knots[c.Degree], c.Knots[len(c.Points)]}
}

func (c NURBS) weight(i int) float64 {
	if c.Weights == nil {
		return 1
	}
	return c.Weights[i]
}

// span returns the knot span index k with Knots[k] <= t < Knots[k+1],
// clamped to the spans of the domain.
func (c NURBS) span(t float64) int {
	k := sort.Search(len(c.Knots), func(i int) bool { return c.Knots[i] > t }) - 1
	k = max(k, c.Degree)
	k = min(k, len(c.Points)-1)
	// Skip empty spans at the end of the domain.
	for k > c.Degree && c.Knots[k] == c.Knots[k+1] {
		k--
	}
	return k
}

// homogeneous is a point in homogeneous coordinates (wx, wy, wz, w).
type homogeneous [4]float64

func deBoor(k, p int, t float64, knots []float64, ctrl []homogeneous) homogeneous {
	d := make([]homogeneous, p+1)
	for j := range d {
		d[j] = ctrl[j+k-p]
	}
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			den := knots[j+1+k-r] - knots[j+k-p]
			alpha := 0.0
			if den != 0 {
				alpha = (t - knots[j+k-p]) / den
			}
			for i := range 4 {
				d[j][i] = (1-alpha)*d[j-1][i] + alpha*d[j][i]
			}
		}
	}
	return d[p]
}

func (c NURBS) control() []homogeneous {
	ctrl := make([]homogeneous, len(c.Points))
	for i, p := range c.Points {
		w := c.weight(i)
		ctrl[i] = homogeneous{p.X * w, p.Y * w, p.Z * w, w}
	}
	return ctrl
}

func (c NURBS) Eval(t float64) Point {
	h := deBoor(c.span(t), c.Degree, t, c.Knots, c.control())
	return Pt(h[0]/h[3], h[1]/h[3], h[2]/h[3])
}

// Deriv differentiates the homogeneous curve A(t) = (wC, w) and applies the
// quotient rule C' = (A' − w'C) / w.
func (c NURBS) Deriv(t float64) Vec3 {
	p := c.Degree
	ctrl := c.control()
	k := c.span(t)
	h := deBoor(k, p, t, c.Knots, ctrl)

	dctrl := make([]homogeneous, len(ctrl)-1)
	for i := range dctrl {
		den := c.Knots[i+p+1] - c.Knots[i+1]
		if den == 0 {
			continue
		}
		f := float64(p) / den
		for j := range 4 {
			dctrl[i][j] = f * (ctrl[i+1][j] - ctrl[i][j])
		}
	}
	dh := deBoor(k-1, p-1, t, c.Knots[1:len(c.Knots)-1], dctrl)

	w, dw := h[3], dh[3]
	pt := Vec(h[0]/w, h[1]/w, h[2]/w)
	return Vec(dh[0], dh[1], dh[2]).Sub(pt.Mul(dw)).Div(w)
}

func (c NURBS) Transform(aff Affine) Curve {
	return NURBS{
		Degree:  c.Degree,
		Points:  slices.Collect(Transform(slices.Values(c.Points), aff)),
		Weights: slices.Clone(c.Weights),
		Knots:   slices.Clone(c.Knots),
	}
}

// Spans returns the distinct knots within the domain.
func (c NURBS) Spans() []float64 {
	dom := c.Domain()
	var out []float64
	for _, k := range c.Knots {
		if k < dom.T0 || k > dom.T1 {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == k {
			continue
		}
		out = append(out, k)
	}
	return out
}

// BoundingBox returns the box around the control points, which encloses the
// curve.
func (c NURBS) BoundingBox() Box {
	return NewBoxFromPoints(c.Points...)
}

func (c NURBS) IsNaN() bool {
	return slices.ContainsFunc(c.Points, Point.IsNaN) || slices.ContainsFunc(c.Knots, math.IsNaN)
}
