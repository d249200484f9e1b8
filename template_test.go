package deck

import (
	"errors"
	"testing"
)

// boxOffsets describes a w×h box section. The left and right edges are drawn
// about their own station origin, the top and bottom about the center.
func boxOffsets(w, h float64) [NumEdges][]Vec3 {
	return [NumEdges][]Vec3{
		EdgeLeft:   {Vec(0, -h, 0), Vec(0, 0, 0)},
		EdgeTop:    {Vec(-w/2, 0, 0), Vec(w/2, 0, 0)},
		EdgeRight:  {Vec(0, 0, 0), Vec(0, -h, 0)},
		EdgeBottom: {Vec(w/2, -h, 0), Vec(-w/2, -h, 0)},
	}
}

func TestTemplatesFromOffsets(t *testing.T) {
	base := WorldXY.WithOrigin(Pt(1, 1, 1))
	tmpl, err := TemplatesFromOffsets(base, boxOffsets(6, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Validate(); err != nil {
		t.Fatal(err)
	}
	diff(t, base, tmpl.Frame)
	diff(t, Polyline{Points: []Point{Pt(-2, 1, 1), Pt(4, 1, 1)}}, tmpl.Curves[EdgeTop])
	diff(t, Polyline{Points: []Point{Pt(1, 0, 1), Pt(1, 1, 1)}}, tmpl.Curves[EdgeLeft])
}

func TestTemplatesSingleTopOffset(t *testing.T) {
	offsets := boxOffsets(6, 1)
	offsets[EdgeTop] = []Vec3{Vec(0, 0.5, 0)}
	tmpl, err := TemplatesFromOffsets(WorldXY, offsets)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Polyline{Points: []Point{Pt(0, 0.5, 0), Pt(0, 0.5, 0)}}, tmpl.Curves[EdgeTop])
}

func TestTemplatesErrors(t *testing.T) {
	offsets := boxOffsets(6, 1)
	offsets[EdgeBottom] = nil
	if _, err := TemplatesFromOffsets(WorldXY, offsets); !errors.Is(err, ErrInputMissing) {
		t.Errorf("got error %v, want %v", err, ErrInputMissing)
	}
	offsets = boxOffsets(6, 1)
	offsets[EdgeLeft] = offsets[EdgeLeft][:1]
	if _, err := TemplatesFromOffsets(WorldXY, offsets); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got error %v, want %v", err, ErrInvalidParameter)
	}

	tmpl, err := TemplatesFromOffsets(WorldXY, boxOffsets(6, 1))
	if err != nil {
		t.Fatal(err)
	}
	tmpl.Curves[EdgeRight] = nil
	if err := tmpl.Validate(); !errors.Is(err, ErrInputMissing) {
		t.Errorf("got error %v, want %v", err, ErrInputMissing)
	}
	tmpl.Curves[EdgeRight] = tmpl.Curves[EdgeLeft]
	tmpl.Frame.X = Vec(2, 0, 0)
	if err := tmpl.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got error %v, want %v", err, ErrInvalidParameter)
	}
}
