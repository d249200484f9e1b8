package deck

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LoftType selects how a loft passes between consecutive sections.
type LoftType int

const (
	// LoftStraight joins consecutive sections with ruled faces.
	LoftStraight LoftType = iota
	// LoftNormal passes a Catmull-Rom spline through corresponding section
	// points and inserts intermediate sections along it.
	LoftNormal
)

func (t LoftType) String() string {
	switch t {
	case LoftStraight:
		return "straight"
	case LoftNormal:
		return "normal"
	default:
		return fmt.Sprintf("LoftType(%d)", int(t))
	}
}

// ParseLoftType parses the names returned by [LoftType.String].
func ParseLoftType(s string) (LoftType, error) {
	switch s {
	case "", "normal":
		return LoftNormal, nil
	case "straight":
		return LoftStraight, nil
	}
	return 0, fmt.Errorf("%w: unknown loft type %q", ErrInvalidParameter, s)
}

// LoftOptions configures [Loft]. The zero value lofts straight.
type LoftOptions struct {
	Type LoftType
	// Segments is the number of points per curved span of a section. Zero
	// means 16.
	Segments int
	// Subdivisions is the number of steps LoftNormal takes between two
	// sections. Zero means 4.
	Subdivisions int
	// Tolerance is the largest gap between the ends of a closed section.
	// Zero means DefaultTolerance.
	Tolerance float64
	// CapTolerance is the largest distance of an opening's points from their
	// plane for the opening to be capped. Zero means DefaultTolerance.
	CapTolerance float64
	Log          logrus.FieldLogger
}

func (o *LoftOptions) withDefaults() LoftOptions {
	var out LoftOptions
	if o != nil {
		out = *o
	}
	if out.Segments <= 0 {
		out.Segments = 16
	}
	if out.Subdivisions <= 0 {
		out.Subdivisions = 4
	}
	if out.Tolerance <= 0 {
		out.Tolerance = DefaultTolerance
	}
	if out.CapTolerance <= 0 {
		out.CapTolerance = DefaultTolerance
	}
	out.Log = loggerOr(out.Log)
	return out
}

// Loft builds a solid through the closed sections in order and caps both
// openings where they are planar. An opening that cannot be capped leaves the
// solid open and adds an [ErrCapFailure] warning to it.
func Loft(sections []Curve, opts *LoftOptions) (*Solid, error) {
	if len(sections) < 2 {
		return nil, fmt.Errorf("%w: got %d sections, need 2", ErrInsufficientInput, len(sections))
	}
	o := opts.withDefaults()

	rings := make([][]Point, len(sections))
	for i, c := range sections {
		if c == nil {
			return nil, fmt.Errorf("%w: section %d is missing", ErrInputMissing, i)
		}
		pts := Flatten(c, o.Segments)
		if len(pts) < 2 || !(pts[0].Distance(pts[len(pts)-1]) <= o.Tolerance) {
			return nil, fmt.Errorf("%w: section %d is not closed", ErrLoftGeometry, i)
		}
		pts = pts[:len(pts)-1]
		if len(pts) < 3 {
			return nil, fmt.Errorf("%w: section %d has %d points", ErrLoftGeometry, i, len(pts))
		}
		if i > 0 && len(pts) != len(rings[0]) {
			return nil, fmt.Errorf("%w: section %d has %d points, section 0 has %d", ErrLoftGeometry, i, len(pts), len(rings[0]))
		}
		for _, p := range pts {
			if p.IsNaN() || p.IsInf() {
				return nil, fmt.Errorf("%w: section %d has non-finite points", ErrLoftGeometry, i)
			}
		}
		rings[i] = pts
	}
	rings = dropCoincident(rings, o.Tolerance)

	normals := make([]Vec3, len(rings))
	for i, r := range rings {
		normals[i] = newellNormal(r)
		if normals[i].Hypot2() == 0 {
			return nil, fmt.Errorf("%w: section %d encloses no area", ErrLoftGeometry, i)
		}
		if i > 0 && normals[i].Dot(normals[i-1]) <= 0 {
			return nil, fmt.Errorf("%w: section %d is wound opposite to section %d", ErrLoftGeometry, i, i-1)
		}
		frame, _, err := fitPlane(r)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d: %v", ErrLoftGeometry, i, err)
		}
		if poly, _ := toPlanar(frame, r).Clean(o.Tolerance); poly.SelfIntersects() {
			return nil, fmt.Errorf("%w: section %d crosses itself", ErrLoftGeometry, i)
		}
	}
	dir := centroid(rings[1]).Sub(centroid(rings[0]))
	facing := normals[0].Dot(dir)
	if facing == 0 {
		return nil, fmt.Errorf("%w: sections 0 and 1 do not advance", ErrLoftGeometry)
	}
	forward := facing > 0

	if o.Type == LoftNormal && len(rings) > 2 {
		rings = interpolateRings(rings, o.Subdivisions)
	}

	nv := len(rings[0])
	solid := &Solid{}
	m := &solid.Mesh
	for _, r := range rings {
		m.Vertices = append(m.Vertices, r...)
	}
	for i := 0; i+1 < len(rings); i++ {
		for j := range nv {
			a := i*nv + j
			b := i*nv + (j+1)%nv
			c := (i+1)*nv + (j+1)%nv
			d := (i+1)*nv + j
			if forward {
				m.Faces = append(m.Faces, [3]int{a, b, c}, [3]int{a, c, d})
			} else {
				m.Faces = append(m.Faces, [3]int{a, c, b}, [3]int{a, d, c})
			}
		}
	}

	ends := [2]struct {
		name    string
		ring    []Point
		offset  int
		outward bool
	}{
		{"start", rings[0], 0, !forward},
		{"end", rings[len(rings)-1], (len(rings) - 1) * nv, forward},
	}
	for k, end := range ends {
		tris, err := capRing(end.ring, o.CapTolerance)
		if err != nil {
			warn := fmt.Errorf("%w: %s opening: %v", ErrCapFailure, end.name, err)
			solid.Warnings = append(solid.Warnings, warn)
			o.Log.WithField("opening", end.name).Warn(warn)
			continue
		}
		for _, t := range tris {
			t = [3]int{t[0] + end.offset, t[1] + end.offset, t[2] + end.offset}
			if !end.outward {
				t[1], t[2] = t[2], t[1]
			}
			m.Faces = append(m.Faces, t)
		}
		solid.Capped[k] = true
	}
	if solid.Closed() && m.Volume() < 0 {
		m.Flip()
	}
	return solid, nil
}

// capRing triangulates a planar loop. The triangles index into ring and are
// wound counter-clockwise about the loop's Newell normal.
func capRing(ring []Point, tol float64) ([][3]int, error) {
	frame, dev, err := fitPlane(ring)
	if err != nil {
		return nil, err
	}
	if dev > tol {
		return nil, fmt.Errorf("points deviate %g from their plane", dev)
	}
	poly, idx := toPlanar(frame, ring).Clean(tol * 1e-3)
	tris, err := poly.Triangulate()
	if err != nil {
		return nil, err
	}
	for i, t := range tris {
		tris[i] = [3]int{idx[t[0]], idx[t[1]], idx[t[2]]}
	}
	return tris, nil
}

// dropCoincident removes ring positions whose point coincides with the next
// one in every ring, such as the ends of zero-length connectors.
func dropCoincident(rings [][]Point, tol float64) [][]Point {
	nv := len(rings[0])
	keep := make([]bool, nv)
	kept := 0
	for j := range nv {
		for _, r := range rings {
			if r[j].Distance(r[(j+1)%nv]) > tol {
				keep[j] = true
				kept++
				break
			}
		}
	}
	if kept == nv || kept < 3 {
		return rings
	}
	out := make([][]Point, len(rings))
	for i, r := range rings {
		out[i] = make([]Point, 0, kept)
		for j, p := range r {
			if keep[j] {
				out[i] = append(out[i], p)
			}
		}
	}
	return out
}

// interpolateRings inserts sub−1 rings between consecutive rings along
// uniform Catmull-Rom splines. The end tangents are taken from reflected
// phantom rings.
func interpolateRings(rings [][]Point, sub int) [][]Point {
	n := len(rings)
	nv := len(rings[0])
	at := func(i, j int) Vec3 {
		switch {
		case i < 0:
			return Vec3(rings[0][j]).Mul(2).Sub(Vec3(rings[1][j]))
		case i >= n:
			return Vec3(rings[n-1][j]).Mul(2).Sub(Vec3(rings[n-2][j]))
		}
		return Vec3(rings[i][j])
	}
	out := make([][]Point, 0, (n-1)*sub+1)
	for i := 0; i+1 < n; i++ {
		out = append(out, rings[i])
		for k := 1; k < sub; k++ {
			u := float64(k) / float64(sub)
			r := make([]Point, nv)
			for j := range nv {
				r[j] = catmullRom(at(i-1, j), at(i, j), at(i+1, j), at(i+2, j), u)
			}
			out = append(out, r)
		}
	}
	return append(out, rings[n-1])
}

func catmullRom(p0, p1, p2, p3 Vec3, u float64) Point {
	u2 := u * u
	u3 := u2 * u
	a := p1.Mul(2)
	b := p2.Sub(p0).Mul(u)
	c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(u2)
	d := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(u3)
	return Point(a.Add(b).Add(c).Add(d).Mul(0.5))
}
