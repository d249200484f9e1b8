package deck

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point
}

// EmptyBox returns a box that contains nothing. Its union with any point is
// the point itself.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Pt(inf, inf, inf),
		Max: Pt(-inf, -inf, -inf),
	}
}

// NewBoxFromPoints returns the smallest box enclosing pts.
func NewBoxFromPoints(pts ...Point) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.UnionPoint(p)
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// UnionPoint computes the union with one point.
func (b Box) UnionPoint(p Point) Box {
	return Box{
		Min: Pt(min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)),
		Max: Pt(max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)),
	}
}

// Union returns the smallest box enclosing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Pt(min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)),
		Max: Pt(max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)),
	}
}

// Inflate grows the box by d in every direction.
func (b Box) Inflate(d float64) Box {
	v := Vec(d, d, d)
	return Box{
		Min: b.Min.Translate(v.Negate()),
		Max: b.Max.Translate(v),
	}
}

func (b Box) Center() Point {
	return b.Min.Midpoint(b.Max)
}

// Diagonal returns the length of the box's space diagonal.
func (b Box) Diagonal() float64 {
	return b.Max.Distance(b.Min)
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]Point {
	var out [8]Point
	for i := range out {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		out[i] = p
	}
	return out
}
