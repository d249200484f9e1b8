package deck

import (
	"fmt"
)

// Templates holds the four edge curves of a cross-section, drawn in the
// coordinate system Frame. Transporting them from Frame onto a station frame
// places the section at that station.
//
// The edges are joined in [Edge] order, so they should run head to tail
// around the section: the left edge upwards, the top edge from left to right,
// the right edge downwards and the bottom edge from right to left.
type Templates struct {
	Frame  Frame
	Curves [NumEdges]Curve
}

// Validate reports a missing template curve.
func (t Templates) Validate() error {
	for e, c := range t.Curves {
		if c == nil {
			return fmt.Errorf("%w: %v template", ErrInputMissing, Edge(e))
		}
	}
	if !t.Frame.IsOrthonormal(frameTolerance) {
		return fmt.Errorf("%w: template frame is not orthonormal", ErrInvalidParameter)
	}
	return nil
}

// TemplatesFromOffsets builds polyline templates from offset vectors given in
// the local coordinates of base. A top edge with a single offset is widened to
// a degenerate segment at that point.
func TemplatesFromOffsets(base Frame, offsets [NumEdges][]Vec3) (Templates, error) {
	out := Templates{Frame: base}
	for e, vs := range offsets {
		if len(vs) == 0 {
			return Templates{}, fmt.Errorf("%w: no offsets for the %v template", ErrInputMissing, Edge(e))
		}
		if len(vs) == 1 && Edge(e) == EdgeTop {
			vs = []Vec3{vs[0], vs[0]}
		}
		pts := make([]Point, len(vs))
		for i, v := range vs {
			pts[i] = base.At(v.X, v.Y, v.Z)
		}
		pl, err := NewPolyline(pts...)
		if err != nil {
			return Templates{}, fmt.Errorf("%v template: %w", Edge(e), err)
		}
		out.Curves[e] = pl
	}
	return out, nil
}
