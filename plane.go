package deck

import (
	"fmt"
	"math"

	"github.com/paramcamp/deck/planar"
)

// newellNormal returns the normal of the closed loop pts by Newell's method.
// Its length is twice the area enclosed by the loop's projection onto the
// normal's plane; it follows the loop's direction by the right-hand rule.
func newellNormal(pts []Point) Vec3 {
	var n Vec3
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// fitPlane returns a frame whose XY plane best fits the closed loop pts, with
// Z along the loop's Newell normal, and the largest distance of a point from
// that plane.
func fitPlane(pts []Point) (Frame, float64, error) {
	if len(pts) < 3 {
		return Frame{}, 0, fmt.Errorf("%w: %d points do not span a plane", ErrGeometricFailure, len(pts))
	}
	f, err := FrameFromNormal(centroid(pts), newellNormal(pts))
	if err != nil {
		return Frame{}, 0, fmt.Errorf("loop encloses no area: %w", err)
	}
	var dev float64
	for _, p := range pts {
		dev = max(dev, math.Abs(f.SignedDistance(p)))
	}
	return f, dev, nil
}

// toPlanar maps pts into the XY coordinates of f.
func toPlanar(f Frame, pts []Point) planar.Polygon {
	out := make(planar.Polygon, len(pts))
	for i, p := range pts {
		l := f.Local(p)
		out[i] = planar.Pt(l.X, l.Y)
	}
	return out
}
