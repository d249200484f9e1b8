package deck

import (
	"iter"
	"math"
)

// Affine describes a 3D affine transform via coefficients.
//
// If the coefficients are (N0, ..., N11), then the resulting transformation
// represents this augmented matrix:
//
//	| N0 N3 N6 N9  |
//	| N1 N4 N7 N10 |
//	| N2 N5 N8 N11 |
//	| 0  0  0  1   |
//
// The columns N0–N2, N3–N5 and N6–N8 are the images of the x, y and z unit
// vectors, N9–N11 is the translation. (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5, N6, N7, N8, N9, N10, N11 float64
}

// Identity is the identity transform.
var Identity = Affine{N0: 1, N4: 1, N8: 1}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x, y and z.
func Scale(x, y, z float64) Affine {
	return Affine{N0: x, N4: y, N8: z}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec3) Affine {
	return Affine{N0: 1, N4: 1, N8: 1, N9: v.X, N10: v.Y, N11: v.Z}
}

// Rotate creates an affine transform representing a rotation of th radians
// about axis through the origin. Positive angles rotate counter-clockwise when
// looking against the axis.
func Rotate(axis Vec3, th float64) Affine {
	k := axis.Normalize()
	s, c := math.Sincos(th)
	C := 1 - c
	x, y, z := k.Splat()
	return Affine{
		N0: c + x*x*C, N1: y*x*C + z*s, N2: z*x*C - y*s,
		N3: x*y*C - z*s, N4: c + y*y*C, N5: z*y*C + x*s,
		N6: x*z*C + y*s, N7: y*z*C - x*s, N8: c + z*z*C,
	}
}

// RotateAbout creates an affine transform representing a rotation of th
// radians about the axis through center.
func RotateAbout(axis Vec3, th float64, center Point) Affine {
	c := Vec3(center)
	return Translate(c.Negate()).ThenRotate(axis, th).ThenTranslate(c)
}

// Reflect creates an affine transform that mirrors space in the plane through
// pt with the given normal.
func Reflect(pt Point, normal Vec3) Affine {
	n := normal.Normalize()
	// Householder matrix I − 2nnᵀ, plus the translation that keeps pt fixed.
	d := 2 * n.Dot(Vec3(pt))
	return Affine{
		N0: 1 - 2*n.X*n.X, N1: -2 * n.Y * n.X, N2: -2 * n.Z * n.X,
		N3: -2 * n.X * n.Y, N4: 1 - 2*n.Y*n.Y, N5: -2 * n.Z * n.Y,
		N6: -2 * n.X * n.Z, N7: -2 * n.Y * n.Z, N8: 1 - 2*n.Z*n.Z,
		N9: d * n.X, N10: d * n.Y, N11: d * n.Z,
	}
}

// Project creates the orthogonal projection onto plane. It is singular.
func Project(plane Frame) Affine {
	n := plane.Z.Normalize()
	d := n.Dot(Vec3(plane.Origin))
	return Affine{
		N0: 1 - n.X*n.X, N1: -n.Y * n.X, N2: -n.Z * n.X,
		N3: -n.X * n.Y, N4: 1 - n.Y*n.Y, N5: -n.Z * n.Y,
		N6: -n.X * n.Z, N7: -n.Y * n.Z, N8: 1 - n.Z*n.Z,
		N9: d * n.X, N10: d * n.Y, N11: d * n.Z,
	}
}

// Coefficients returns the the coefficients of the transform.
func (aff Affine) Coefficients() [12]float64 {
	return [12]float64{
		aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5,
		aff.N6, aff.N7, aff.N8, aff.N9, aff.N10, aff.N11,
	}
}

// NewAffine creates a new affine transformation from an array of coefficients.
// Alternatively, you can initialize the fields of [Affine] manually.
func NewAffine(n [12]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7], n[8], n[9], n[10], n[11]}
}

func (aff Affine) Mul(o Affine) Affine {
	c0 := Vec(o.N0, o.N1, o.N2).Transform(aff)
	c1 := Vec(o.N3, o.N4, o.N5).Transform(aff)
	c2 := Vec(o.N6, o.N7, o.N8).Transform(aff)
	t := Point{o.N9, o.N10, o.N11}.Transform(aff)
	return Affine{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
		t.X, t.Y, t.Z,
	}
}

// ThenRotate creates aff followed by a rotation of th about axis.
//
// Equivalent to "Rotate(axis, th) * aff"
func (aff Affine) ThenRotate(axis Vec3, th float64) Affine {
	return Rotate(axis, th).Mul(aff)
}

// PreTranslate creates a translation of v followed by aff.
//
// Equivalent to "aff * Translate(v)"
func (aff Affine) PreTranslate(v Vec3) Affine {
	return aff.Mul(Translate(v))
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec3) Affine {
	aff.N9 += v.X
	aff.N10 += v.Y
	aff.N11 += v.Z
	return aff
}

// Translation returns the translation portion of the transform.
func (aff Affine) Translation() Vec3 {
	return Vec(aff.N9, aff.N10, aff.N11)
}

// Determinant computes the determinant of the linear part. It is negative for
// transforms that mirror space.
func (aff Affine) Determinant() float64 {
	return aff.N0*(aff.N4*aff.N8-aff.N7*aff.N5) -
		aff.N3*(aff.N1*aff.N8-aff.N7*aff.N2) +
		aff.N6*(aff.N1*aff.N5-aff.N4*aff.N2)
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	a, b, c := aff.N0, aff.N3, aff.N6
	d, e, f := aff.N1, aff.N4, aff.N7
	g, h, i := aff.N2, aff.N5, aff.N8
	invDet := 1 / aff.Determinant()
	inv := Affine{
		N0: invDet * (e*i - f*h),
		N1: invDet * (f*g - d*i),
		N2: invDet * (d*h - e*g),
		N3: invDet * (c*h - b*i),
		N4: invDet * (a*i - c*g),
		N5: invDet * (b*g - a*h),
		N6: invDet * (b*f - c*e),
		N7: invDet * (c*d - a*f),
		N8: invDet * (a*e - b*d),
	}
	t := aff.Translation().Transform(inv).Negate()
	inv.N9, inv.N10, inv.N11 = t.X, t.Y, t.Z
	return inv
}

func (aff Affine) IsInf() bool {
	for _, n := range aff.Coefficients() {
		if math.IsInf(n, 0) {
			return true
		}
	}
	return false
}

func (aff Affine) IsNaN() bool {
	for _, n := range aff.Coefficients() {
		if math.IsNaN(n) {
			return true
		}
	}
	return false
}

func Transform[T interface{ Transform(Affine) T }](seq iter.Seq[T], aff Affine) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if !yield(v.Transform(aff)) {
				break
			}
		}
	}
}
