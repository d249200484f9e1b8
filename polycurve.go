package deck

import (
	"math"
	"slices"
)

// PolyCurve joins curves end to end. Segment i occupies the parameter range
// [i, i+1], mapped linearly onto the segment's own domain.
type PolyCurve struct {
	Segments []Curve
}

var _ Curve = (*PolyCurve)(nil)
var _ Spanner = (*PolyCurve)(nil)
var _ Arclener = (*PolyCurve)(nil)
var _ Bounder = (*PolyCurve)(nil)

// NewPolyCurve returns the curve made of segs in order. It does not check
// that consecutive segments meet.
func NewPolyCurve(segs ...Curve) *PolyCurve {
	return &PolyCurve{Segments: slices.Clone(segs)}
}

func (pc *PolyCurve) Domain() Interval {
	return Interval{0, float64(len(pc.Segments))}
}

// locate returns the segment holding t and t mapped into its domain.
func (pc *PolyCurve) locate(t float64) (int, float64) {
	n := len(pc.Segments)
	i := int(math.Floor(t))
	i = max(min(i, n-1), 0)
	dom := pc.Segments[i].Domain()
	return i, dom.Lerp(t - float64(i))
}

func (pc *PolyCurve) Eval(t float64) Point {
	i, u := pc.locate(t)
	return pc.Segments[i].Eval(u)
}

func (pc *PolyCurve) Deriv(t float64) Vec3 {
	i, u := pc.locate(t)
	seg := pc.Segments[i]
	return seg.Deriv(u).Mul(seg.Domain().Length())
}

func (pc *PolyCurve) Transform(aff Affine) Curve {
	out := &PolyCurve{Segments: make([]Curve, len(pc.Segments))}
	for i, seg := range pc.Segments {
		out.Segments[i] = seg.Transform(aff)
	}
	return out
}

func (pc *PolyCurve) Spans() []float64 {
	out := []float64{0}
	for i, seg := range pc.Segments {
		dom := seg.Domain()
		for _, s := range Spans(seg)[1:] {
			out = append(out, float64(i)+(s-dom.T0)/dom.Length())
		}
	}
	return out
}

func (pc *PolyCurve) Arclen(accuracy float64) float64 {
	var sum float64
	for _, seg := range pc.Segments {
		sum += Arclen(seg, accuracy)
	}
	return sum
}

func (pc *PolyCurve) BoundingBox() Box {
	b := EmptyBox()
	for _, seg := range pc.Segments {
		b = b.Union(CurveBounds(seg))
	}
	return b
}
