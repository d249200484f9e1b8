// Package export writes built bridges to files: solids as binary STL, the
// sampled station frames as YAML and a PNG plan view.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/paramcamp/deck"
	"github.com/unixpickle/model3d/model3d"
)

// Triangles converts the faces of the solids, in order. Nil solids and
// degenerate faces are left out.
func Triangles(solids ...*deck.Solid) []*model3d.Triangle {
	var out []*model3d.Triangle
	for _, s := range solids {
		if s == nil {
			continue
		}
		for i := range s.Faces {
			if s.FaceNormal(i).IsNaN() {
				continue
			}
			a, b, c := s.Triangle(i)
			out = append(out, &model3d.Triangle{coord(a), coord(b), coord(c)})
		}
	}
	return out
}

// Mesh collects the solids into one mesh.
func Mesh(solids ...*deck.Solid) *model3d.Mesh {
	return model3d.NewMeshTriangles(Triangles(solids...))
}

func coord(p deck.Point) model3d.Coord3D {
	return model3d.XYZ(p.X, p.Y, p.Z)
}

// WriteSTL writes the solids as binary STL, face by face.
func WriteSTL(w io.Writer, solids ...*deck.Solid) error {
	return model3d.WriteSTL(w, Triangles(solids...))
}

// WriteSTLFile writes the solids to the STL file at path, grouping the faces
// so that the file compresses well.
func WriteSTLFile(path string, solids ...*deck.Solid) error {
	if err := Mesh(solids...).SaveGroupedSTL(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
