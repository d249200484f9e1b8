package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// rectEdges returns the four edges of the rectangle [0, w]×[0, h] at height
// z, running head to tail.
func rectEdges(w, h, z float64) [NumEdges]Curve {
	return [NumEdges]Curve{
		EdgeLeft:   Line{Pt(0, 0, z), Pt(0, h, z)},
		EdgeTop:    Line{Pt(0, h, z), Pt(w, h, z)},
		EdgeRight:  Line{Pt(w, h, z), Pt(w, 0, z)},
		EdgeBottom: Line{Pt(w, 0, z), Pt(0, 0, z)},
	}
}

func edgeSequences(n int) [NumEdges][]Curve {
	var out [NumEdges][]Curve
	for i := range n {
		for e, c := range rectEdges(4, 1, float64(i)) {
			out[e] = append(out[e], c)
		}
	}
	return out
}

func TestAssemble(t *testing.T) {
	profiles, err := Assemble(edgeSequences(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	for i, p := range profiles {
		if p.Station != i {
			t.Errorf("got station %d, want %d", p.Station, i)
		}
		if n := len(p.Curve.Segments); n != 2*NumEdges {
			t.Errorf("got %d pieces, want %d", n, 2*NumEdges)
		}
		if !IsClosed(p.Curve, 1e-12) {
			t.Errorf("profile %d is open", i)
		}
		assertNear(t, Start(p.Curve), Pt(0, 0, float64(i)), 1e-12)
		assertNear(t, p.Curve.Eval(2), Pt(0, 1, float64(i)), 1e-12)
	}
}

func TestAssembleConnectsGaps(t *testing.T) {
	edges := rectEdges(4, 1, 0)
	// Leave a gap between every pair of edges.
	edges[EdgeTop] = Line{Pt(0.5, 1.2, 0), Pt(3.5, 1.2, 0)}
	var seqs [NumEdges][]Curve
	for e, c := range edges {
		seqs[e] = []Curve{c}
	}
	profiles, err := Assemble(seqs, nil)
	if err != nil {
		t.Fatal(err)
	}
	pc := profiles[0].Curve
	// The connector after the left edge runs to the start of the top edge.
	diff(t, Line{Pt(0, 1, 0), Pt(0.5, 1.2, 0)}, pc.Segments[1])
	for i, seg := range pc.Segments {
		next := pc.Segments[(i+1)%len(pc.Segments)]
		if d := End(seg).Distance(Start(next)); d > 1e-12 {
			t.Errorf("piece %d ends at %v, piece %d starts at %v", i, End(seg), (i+1)%len(pc.Segments), Start(next))
		}
	}
	assertClose(t, Arclen(pc, DefaultAccuracy), 1+3+1+4+2*Pt(0, 1, 0).Distance(Pt(0.5, 1.2, 0)), 1e-12)
}

func TestAssembleEdgeCountMismatch(t *testing.T) {
	seqs := edgeSequences(3)
	seqs[EdgeBottom] = append(seqs[EdgeBottom], Line{Pt(4, 0, 3), Pt(0, 0, 3)})
	_, err := Assemble(seqs, nil)
	var ece *EdgeCountError
	if !errors.As(err, &ece) {
		t.Fatalf("got error %v, want an EdgeCountError", err)
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got error %v, want %v", err, ErrInvalidParameter)
	}
	diff(t, []Edge{EdgeBottom}, ece.Mismatched)
	diff(t, 3, ece.Expected)
	diff(t, [NumEdges]int{3, 3, 3, 4}, ece.Counts)
	if !strings.Contains(err.Error(), "bottom has 4") {
		t.Errorf("error %q does not name the bottom edge", err)
	}
}

func TestEdgeCountErrorTies(t *testing.T) {
	err := newEdgeCountError([NumEdges]int{2, 2, 5, 5})
	diff(t, 2, err.Expected)
	diff(t, []Edge{EdgeRight, EdgeBottom}, err.Mismatched)
	diff(t, "deck: edge station counts disagree: right has 5, bottom has 5, expected 2", err.Error())
}

func bowtie(z float64) [NumEdges]Curve {
	return [NumEdges]Curve{
		Line{Pt(0, 0, z), Pt(0, 1, z)},
		Line{Pt(0, 1, z), Pt(4, 0, z)},
		Line{Pt(4, 0, z), Pt(4, 3, z)},
		Line{Pt(4, 3, z), Pt(0, 0, z)},
	}
}

func TestAssembleSelfIntersecting(t *testing.T) {
	seqs := edgeSequences(3)
	for e, c := range bowtie(1) {
		seqs[e][1] = c
	}

	_, err := Assemble(seqs, nil)
	var se *StationError
	if !errors.As(err, &se) || se.Station != 1 {
		t.Fatalf("got error %v, want a StationError for station 1", err)
	}
	if !errors.Is(err, ErrGeometricFailure) {
		t.Errorf("got error %v, want %v", err, ErrGeometricFailure)
	}

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	profiles, err := Assemble(seqs, &AssembleOptions{PartialResults: true, Log: log})
	if err != nil {
		t.Fatal(err)
	}
	var stations []int
	for _, p := range profiles {
		stations = append(stations, p.Station)
	}
	diff(t, []int{0, 2}, stations)
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel || e.Data["station"] != 1 {
		t.Errorf("got log entry %v, want a warning for station 1", e)
	}
}

func TestAssembleMissingEdge(t *testing.T) {
	seqs := edgeSequences(2)
	seqs[EdgeTop][0] = nil
	if _, err := Assemble(seqs, nil); !errors.Is(err, ErrInputMissing) {
		t.Errorf("got error %v, want %v", err, ErrInputMissing)
	}
	if _, err := Assemble([NumEdges][]Curve{}, nil); !errors.Is(err, ErrInputMissing) {
		t.Errorf("got error %v, want %v", err, ErrInputMissing)
	}
}

func TestSectionArena(t *testing.T) {
	a := NewSectionArena([]int{4, 7})
	diff(t, 2, a.Len())
	diff(t, 7, a.Station(1))
	edges := rectEdges(1, 1, 0)
	for e, c := range edges {
		a.Set(1, Edge(e), c)
	}
	diff(t, edges, a.Row(1))
	diff(t, [NumEdges]Curve{}, a.Row(0))
	diff(t, edges[EdgeRight], a.At(1, EdgeRight))
}
