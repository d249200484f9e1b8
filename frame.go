package deck

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Frame is an oriented coordinate system: an origin and three orthonormal
// axes. Z is the normal of the frame's XY plane, which makes a Frame usable
// as a plane wherever one is needed.
type Frame struct {
	Origin  Point
	X, Y, Z Vec3
}

// WorldXY is the world coordinate system.
var WorldXY = Frame{
	X: Vec(1, 0, 0),
	Y: Vec(0, 1, 0),
	Z: Vec(0, 0, 1),
}

var identity3 = mat.NewDiagDense(3, []float64{1, 1, 1})

// NewFrame returns the right-handed frame at origin whose X axis points along
// x and whose Y axis lies in the plane spanned by x and y.
func NewFrame(origin Point, x, y Vec3) (Frame, error) {
	xn := x.Normalize()
	yo := y.Sub(xn.Mul(y.Dot(xn)))
	if xn.IsNaN() || yo.Hypot2() < 1e-24 || yo.IsNaN() {
		return Frame{}, fmt.Errorf("%w: axes %v and %v do not span a plane", ErrGeometricFailure, x, y)
	}
	yn := yo.Normalize()
	return Frame{
		Origin: origin,
		X:      xn,
		Y:      yn,
		Z:      xn.Cross(yn),
	}, nil
}

// FrameFromNormal returns a right-handed frame at origin with the given
// normal. The in-plane axes are chosen arbitrarily.
func FrameFromNormal(origin Point, normal Vec3) (Frame, error) {
	z := normal.Normalize()
	if z.IsNaN() || z.IsInf() {
		return Frame{}, fmt.Errorf("%w: zero normal", ErrGeometricFailure)
	}
	x := z.Perpendicular()
	return Frame{
		Origin: origin,
		X:      x,
		Y:      z.Cross(x),
		Z:      z,
	}, nil
}

func (f Frame) String() string {
	return fmt.Sprintf("Frame{%v, X: %v, Y: %v, Z: %v}", f.Origin, f.X, f.Y, f.Z)
}

// At returns the world point with local coordinates (u, v, w).
func (f Frame) At(u, v, w float64) Point {
	return f.Origin.
		Translate(f.X.Mul(u)).
		Translate(f.Y.Mul(v)).
		Translate(f.Z.Mul(w))
}

// Local returns the local coordinates of the world point p. It assumes an
// orthonormal frame.
func (f Frame) Local(p Point) Vec3 {
	d := p.Sub(f.Origin)
	return Vec(d.Dot(f.X), d.Dot(f.Y), d.Dot(f.Z))
}

// ToWorld returns the transform that maps local coordinates to world
// coordinates.
func (f Frame) ToWorld() Affine {
	return Affine{
		f.X.X, f.X.Y, f.X.Z,
		f.Y.X, f.Y.Y, f.Y.Z,
		f.Z.X, f.Z.Y, f.Z.Z,
		f.Origin.X, f.Origin.Y, f.Origin.Z,
	}
}

// ToLocal returns the transform that maps world coordinates to local
// coordinates.
func (f Frame) ToLocal() Affine {
	return f.ToWorld().Invert()
}

// WithOrigin returns a copy of f moved to origin.
func (f Frame) WithOrigin(origin Point) Frame {
	f.Origin = origin
	return f
}

// Basis returns the 3×3 matrix whose columns are the frame's axes.
func (f Frame) Basis() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		f.X.X, f.Y.X, f.Z.X,
		f.X.Y, f.Y.Y, f.Z.Y,
		f.X.Z, f.Y.Z, f.Z.Z,
	})
}

// Handedness returns the determinant of the frame's basis: +1 for a
// right-handed orthonormal frame and −1 for a mirrored one.
func (f Frame) Handedness() float64 {
	return mat.Det(f.Basis())
}

// IsOrthonormal reports whether the axes are unit length and mutually
// orthogonal within tol.
func (f Frame) IsOrthonormal(tol float64) bool {
	if f.IsNaN() {
		return false
	}
	b := f.Basis()
	var g mat.Dense
	g.Mul(b.T(), b)
	return mat.EqualApprox(&g, identity3, tol)
}

// SignedDistance returns the distance of p from the frame's XY plane,
// positive on the side Z points to.
func (f Frame) SignedDistance(p Point) float64 {
	return p.Sub(f.Origin).Dot(f.Z)
}

// ClosestPoint returns the projection of p onto the frame's XY plane.
func (f Frame) ClosestPoint(p Point) Point {
	return p.Translate(f.Z.Mul(-f.SignedDistance(p)))
}

// Raycast intersects the ray from origin along dir with the frame's XY plane.
func (f Frame) Raycast(origin Point, dir Vec3) (Point, bool) {
	den := dir.Dot(f.Z)
	if math.Abs(den) < 1e-12 {
		return Point{}, false
	}
	t := f.Origin.Sub(origin).Dot(f.Z) / den
	if t < 0 {
		return Point{}, false
	}
	return origin.Translate(dir.Mul(t)), true
}

func (f Frame) IsNaN() bool {
	return f.Origin.IsNaN() || f.X.IsNaN() || f.Y.IsNaN() || f.Z.IsNaN()
}
