package planar

import (
	"errors"
	"math"
	"slices"
)

var (
	ErrDegenerate = errors.New("planar: degenerate polygon")
	ErrNotSimple  = errors.New("planar: polygon is not simple")
)

// Polygon is a closed loop of vertices. The last vertex connects back to the
// first; it is not repeated.
type Polygon []Point

// SignedArea returns the area enclosed by the polygon. It is positive for
// counter-clockwise vertex order in a y-up space.
func (p Polygon) SignedArea() float64 {
	var a float64
	for i, pt := range p {
		q := p[(i+1)%len(p)]
		a += Vec2(pt).Cross(Vec2(q))
	}
	return 0.5 * a
}

func (p Polygon) BoundingBox() Rect {
	r := EmptyRect()
	for _, pt := range p {
		r = r.UnionPoint(pt)
	}
	return r
}

// Edge returns the i-th edge, which runs from vertex i to vertex i+1.
func (p Polygon) Edge(i int) Line {
	return Line{p[i], p[(i+1)%len(p)]}
}

// Clean drops every vertex that lies within tol of the previously kept one,
// including a last vertex that repeats the first. It returns the remaining
// polygon and, for each of its vertices, the vertex's index in p.
func (p Polygon) Clean(tol float64) (Polygon, []int) {
	out := make(Polygon, 0, len(p))
	idx := make([]int, 0, len(p))
	tol2 := tol * tol
	for i, pt := range p {
		if n := len(out); n > 0 && out[n-1].DistanceSquared(pt) <= tol2 {
			continue
		}
		out = append(out, pt)
		idx = append(idx, i)
	}
	for len(out) > 1 && out[len(out)-1].DistanceSquared(out[0]) <= tol2 {
		out = out[:len(out)-1]
		idx = idx[:len(idx)-1]
	}
	return out, idx
}

// SelfIntersects reports whether two edges that do not share a vertex touch
// or cross. Collinear overlaps are not detected.
func (p Polygon) SelfIntersects() bool {
	n := len(p)
	if n < 4 {
		return false
	}
	boxes := make([]Rect, n)
	for i := range n {
		boxes[i] = p.Edge(i).BoundingBox()
	}
	for i := range n {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}
			if _, ok := p.Edge(i).IntersectLine(p.Edge(j)); ok {
				return true
			}
		}
	}
	return false
}

// Triangulate splits a simple polygon into triangles by ear clipping. The
// triangles index into p and are wound counter-clockwise regardless of the
// polygon's own orientation.
func (p Polygon) Triangulate() ([][3]int, error) {
	n := len(p)
	if n < 3 {
		return nil, ErrDegenerate
	}
	bbox := p.BoundingBox()
	scale := max(bbox.Width(), bbox.Height())
	eps := 1e-12 * scale * scale
	area := p.SignedArea()
	if math.Abs(area) <= eps || math.IsNaN(area) {
		return nil, ErrDegenerate
	}

	idx := make([]int, n)
	for i := range idx {
		if area > 0 {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}
	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		m := len(idx)
		clipped := false
		for i := range m {
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			turn := p[b].Sub(p[a]).Cross(p[c].Sub(p[b]))
			if turn < -eps {
				// reflex
				continue
			}
			if turn > eps && p.blocksEar(idx, a, b, c, eps) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = slices.Delete(idx, i, i+1)
			clipped = true
			break
		}
		if !clipped {
			return nil, ErrNotSimple
		}
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return tris, nil
}

// blocksEar reports whether a remaining vertex lies inside the triangle abc or
// on its diagonal ac.
func (p Polygon) blocksEar(idx []int, a, b, c int, eps float64) bool {
	pa, pb, pc := p[a], p[b], p[c]
	for _, i := range idx {
		if i == a || i == b || i == c {
			continue
		}
		q := p[i]
		if q == pa || q == pb || q == pc {
			continue
		}
		c1 := pb.Sub(pa).Cross(q.Sub(pa))
		c2 := pc.Sub(pb).Cross(q.Sub(pb))
		c3 := pa.Sub(pc).Cross(q.Sub(pc))
		if c1 > eps && c2 > eps && c3 >= -eps {
			return true
		}
	}
	return false
}
