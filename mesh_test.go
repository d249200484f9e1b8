package deck

import (
	"testing"
)

func unitCube(t *testing.T) *Solid {
	t.Helper()
	bottom := mustPolyline(t, Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 1, 0), Pt(0, 1, 0), Pt(0, 0, 0))
	top := bottom.Transform(Translate(Vec(0, 0, 1)))
	s, err := Loft([]Curve{bottom, top}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMeshMeasures(t *testing.T) {
	s := unitCube(t)
	if !s.IsClosed() {
		t.Fatal("cube is open")
	}
	assertClose(t, s.Volume(), 1, 1e-12)
	assertClose(t, s.Area(), 6, 1e-12)
	diff(t, Box{Min: Pt(0, 0, 0), Max: Pt(1, 1, 1)}, s.BoundingBox())
	for i := range s.Faces {
		n := s.FaceNormal(i)
		c := centroid([]Point{s.Vertices[s.Faces[i][0]], s.Vertices[s.Faces[i][1]], s.Vertices[s.Faces[i][2]]})
		if n.Dot(c.Sub(Pt(0.5, 0.5, 0.5))) <= 0 {
			t.Errorf("face %d points inwards", i)
		}
	}
}

func TestMeshTransform(t *testing.T) {
	s := unitCube(t)
	mirrored := s.Transform(Reflect(Pt(0, 0, 0), Vec(1, 0, 0)))
	assertClose(t, mirrored.Volume(), 1, 1e-12)
	moved := s.Transform(Translate(Vec(5, 0, 0)).Mul(Scale(2, 2, 2)))
	assertClose(t, moved.Volume(), 8, 1e-9)

	var both Mesh
	both.Append(&s.Mesh)
	both.Append(moved)
	assertClose(t, both.Volume(), 9, 1e-9)
	if !both.IsClosed() {
		t.Error("union of two closed meshes is open")
	}

	s.Flip()
	assertClose(t, s.Volume(), -1, 1e-12)
}

func TestMeshRaycast(t *testing.T) {
	s := unitCube(t)
	hit, ok := s.Raycast(Pt(0.25, 0.5, -1), Vec(0, 0, 1))
	if !ok {
		t.Fatal("ray missed the cube")
	}
	assertNear(t, hit, Pt(0.25, 0.5, 0), 1e-12)

	hit, ok = s.Raycast(Pt(0.25, 0.5, 0.5), Vec(0, 0, 1))
	if !ok {
		t.Fatal("ray from inside missed the cube")
	}
	assertNear(t, hit, Pt(0.25, 0.5, 1), 1e-12)

	if _, ok := s.Raycast(Pt(2, 2, -1), Vec(0, 0, 1)); ok {
		t.Error("ray beside the cube hit it")
	}
	if _, ok := s.Raycast(Pt(0.5, 0.5, 2), Vec(0, 0, 1)); ok {
		t.Error("ray pointing away from the cube hit it")
	}
}

func TestMeshSkin(t *testing.T) {
	s := unitCube(t)
	top := s.Skin(Vec(0, 0, 1), 0.5)
	if n := len(top.Faces); n != 2 {
		t.Fatalf("got %d faces, want 2", n)
	}
	assertClose(t, top.Area(), 1, 1e-12)
	diff(t, Box{Min: Pt(0, 0, 1), Max: Pt(1, 1, 1)}, top.BoundingBox())

	// The skin does not share memory with the solid.
	top.Vertices[0] = Pt(9, 9, 9)
	diff(t, Box{Min: Pt(0, 0, 0), Max: Pt(1, 1, 1)}, s.BoundingBox())

	hit, ok := top.Raycast(Pt(0.5, 0.5, 0.5), Vec(0, 0, 1))
	if !ok {
		t.Fatal("ray missed the top skin")
	}
	assertNear(t, hit, Pt(0.5, 0.5, 1), 1e-12)
}
