package deck

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AssembleOptions configures profile assembly. The zero value is ready to use.
type AssembleOptions struct {
	// Tolerance is the distance below which profile points are merged before
	// the self-intersection check. Zero means DefaultTolerance.
	Tolerance float64
	// PartialResults drops stations that fail to join instead of failing the
	// whole assembly.
	PartialResults bool
	// Segments is the number of points per curved span used to check a
	// profile for self-intersection. Zero means 16.
	Segments int
	Log      logrus.FieldLogger
}

func (o *AssembleOptions) withDefaults() AssembleOptions {
	var out AssembleOptions
	if o != nil {
		out = *o
	}
	if out.Tolerance <= 0 {
		out.Tolerance = DefaultTolerance
	}
	if out.Segments <= 0 {
		out.Segments = 16
	}
	out.Log = loggerOr(out.Log)
	return out
}

// Profile is the closed cross-section of one station.
type Profile struct {
	Station int
	// Curve runs left, connector, top, connector, right, connector, bottom,
	// connector.
	Curve *PolyCurve
}

// ProfileCurves returns the curves of profiles, ready for [Loft].
func ProfileCurves(profiles []Profile) []Curve {
	out := make([]Curve, len(profiles))
	for i, p := range profiles {
		out[i] = p.Curve
	}
	return out
}

// Assemble joins the i-th curve of each edge sequence into the closed profile
// of station i. All four sequences must have the same length.
func Assemble(edges [NumEdges][]Curve, opts *AssembleOptions) ([]Profile, error) {
	var counts [NumEdges]int
	for e, seq := range edges {
		counts[e] = len(seq)
	}
	for _, n := range counts[1:] {
		if n != counts[0] {
			return nil, newEdgeCountError(counts)
		}
	}
	if counts[0] == 0 {
		return nil, fmt.Errorf("%w: no sections to assemble", ErrInputMissing)
	}

	rows := make([]int, counts[0])
	for i := range rows {
		rows[i] = i
	}
	arena := NewSectionArena(rows)
	for e, seq := range edges {
		for i, c := range seq {
			arena.Set(i, Edge(e), c)
		}
	}
	return arena.Assemble(opts)
}

// Assemble joins every row of the arena into a profile.
func (a *SectionArena) Assemble(opts *AssembleOptions) ([]Profile, error) {
	o := opts.withDefaults()
	out := make([]Profile, 0, a.Len())
	for row := range a.Len() {
		pc, err := joinSection(a.Row(row), o)
		if err != nil {
			err = &StationError{Station: a.Station(row), Err: err}
			if !o.PartialResults {
				return nil, err
			}
			o.Log.WithField("station", a.Station(row)).WithError(err).Warn("dropping station: profile did not join")
			continue
		}
		out = append(out, Profile{Station: a.Station(row), Curve: pc})
	}
	return out, nil
}

// joinSection links the four edges with straight connectors from the end of
// each edge to the start of the next, so consecutive pieces always meet,
// and checks that the loop is usable.
func joinSection(row [NumEdges]Curve, o AssembleOptions) (*PolyCurve, error) {
	for e, c := range row {
		if c == nil {
			return nil, fmt.Errorf("%w: %v edge", ErrInputMissing, Edge(e))
		}
		s, t := Start(c), End(c)
		if s.IsNaN() || s.IsInf() || t.IsNaN() || t.IsInf() {
			return nil, fmt.Errorf("%w: %v edge has non-finite end points", ErrGeometricFailure, Edge(e))
		}
	}
	segs := make([]Curve, 0, 2*NumEdges)
	for e, c := range row {
		next := row[(e+1)%NumEdges]
		segs = append(segs, c, Line{End(c), Start(next)})
	}
	pc := NewPolyCurve(segs...)

	pts := Flatten(pc, o.Segments)
	pts = pts[:len(pts)-1]
	frame, _, err := fitPlane(pts)
	if err != nil {
		return nil, err
	}
	poly, _ := toPlanar(frame, pts).Clean(o.Tolerance)
	if poly.SelfIntersects() {
		return nil, fmt.Errorf("%w: profile crosses itself", ErrGeometricFailure)
	}
	return pc, nil
}
