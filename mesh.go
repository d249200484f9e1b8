package deck

import "math"

// Surface is anything a ray can be cast against.
type Surface interface {
	// Raycast returns the first point where the ray from origin along dir
	// meets the surface.
	Raycast(origin Point, dir Vec3) (Point, bool)
}

var _ Surface = Frame{}
var _ Surface = (*Mesh)(nil)

// Mesh is a triangle mesh. Faces index into Vertices and are wound
// counter-clockwise when seen from the side their normal points to.
type Mesh struct {
	Vertices []Point
	Faces    [][3]int
}

// Triangle returns the corners of face i.
func (m *Mesh) Triangle(i int) (Point, Point, Point) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// FaceNormal returns the unit normal of face i. Degenerate faces yield NaN.
func (m *Mesh) FaceNormal(i int) Vec3 {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Volume returns the signed volume enclosed by the mesh, positive when the
// faces point outwards. It is meaningful only for closed meshes.
func (m *Mesh) Volume() float64 {
	var v float64
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		v += Vec3(a).Dot(Vec3(b).Cross(Vec3(c)))
	}
	return v / 6
}

// Area returns the total area of the faces.
func (m *Mesh) Area() float64 {
	var s float64
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		s += b.Sub(a).Cross(c.Sub(a)).Hypot()
	}
	return s / 2
}

func (m *Mesh) BoundingBox() Box {
	return NewBoxFromPoints(m.Vertices...)
}

// Flip reverses the winding of every face.
func (m *Mesh) Flip() {
	for i, f := range m.Faces {
		m.Faces[i] = [3]int{f[0], f[2], f[1]}
	}
}

// Transform returns a transformed copy of the mesh. Mirroring transforms also
// reverse the winding so that normals keep pointing outwards.
func (m *Mesh) Transform(aff Affine) *Mesh {
	out := &Mesh{
		Vertices: make([]Point, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Transform(aff)
	}
	copy(out.Faces, m.Faces)
	if aff.Determinant() < 0 {
		out.Flip()
	}
	return out
}

// Append adds the vertices and faces of o to m.
func (m *Mesh) Append(o *Mesh) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, f := range o.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
	}
}

// IsClosed reports whether every edge is shared by exactly two faces that
// traverse it in opposite directions.
func (m *Mesh) IsClosed() bool {
	if len(m.Faces) == 0 {
		return false
	}
	edges := make(map[[2]int]int, 3*len(m.Faces))
	for _, f := range m.Faces {
		for k := range 3 {
			edges[[2]int{f[k], f[(k+1)%3]}]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[[2]int{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

// Skin returns the faces whose normal makes an angle of at most acos(minCos)
// with dir. The returned mesh shares no memory with m.
func (m *Mesh) Skin(dir Vec3, minCos float64) *Mesh {
	d := dir.Normalize()
	remap := make(map[int]int)
	out := &Mesh{}
	for i, f := range m.Faces {
		if !(m.FaceNormal(i).Dot(d) >= minCos) {
			continue
		}
		var nf [3]int
		for k, v := range f {
			j, ok := remap[v]
			if !ok {
				j = len(out.Vertices)
				remap[v] = j
				out.Vertices = append(out.Vertices, m.Vertices[v])
			}
			nf[k] = j
		}
		out.Faces = append(out.Faces, nf)
	}
	return out
}

// Raycast returns the nearest intersection of the ray with a face, using the
// Möller–Trumbore test. Points on the ray's origin count.
func (m *Mesh) Raycast(origin Point, dir Vec3) (Point, bool) {
	const eps = 1e-9
	best := math.Inf(1)
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		e1 := b.Sub(a)
		e2 := c.Sub(a)
		pv := dir.Cross(e2)
		det := e1.Dot(pv)
		if math.Abs(det) < 1e-15 {
			continue
		}
		inv := 1 / det
		tv := origin.Sub(a)
		u := tv.Dot(pv) * inv
		if u < -eps || u > 1+eps {
			continue
		}
		qv := tv.Cross(e1)
		v := dir.Dot(qv) * inv
		if v < -eps || u+v > 1+eps {
			continue
		}
		t := e2.Dot(qv) * inv
		if t >= 0 && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return Point{}, false
	}
	return origin.Translate(dir.Mul(best)), true
}

// Solid is the result of a loft: a triangle mesh together with the state of
// its end caps and any tolerance warnings raised while building it.
type Solid struct {
	Mesh
	// Capped reports for the start and end opening whether it was closed.
	Capped [2]bool
	// Warnings holds non-fatal problems, such as [ErrCapFailure].
	Warnings []error
}

// Closed reports whether both openings were capped.
func (s *Solid) Closed() bool {
	return s.Capped[0] && s.Capped[1]
}
