package deck

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DeckInput holds the guide curves and templates of a deck.
type DeckInput struct {
	// Center is the axis along which stations are sampled. The top and
	// bottom templates are placed on it.
	Center Curve
	// Left and Right are the deck edges. They are intersected with the
	// station planes to place the left and right templates.
	Left, Right Curve
	// Count is the number of stations, at least 2.
	Count     int
	Templates Templates
}

// Options configures [BuildDeck] and [BuildBridge]. The zero value is ready
// to use.
type Options struct {
	Sample SampleOptions
	// Extension is the fraction by which the edge curves are extended before
	// intersection. Zero means DefaultExtension.
	Extension float64
	// Tolerance is the geometric tolerance. Zero means DefaultTolerance.
	Tolerance float64
	// PartialResults keeps the stations every edge reached and drops
	// profiles that fail to join. Otherwise either condition is an error.
	PartialResults bool
	Loft           LoftOptions
	// Workers is the number of goroutines used to transport templates.
	// Values below 2 transport sequentially.
	Workers int
	Log     logrus.FieldLogger
}

// Deck is a built deck with the intermediate values of its construction.
type Deck struct {
	// Stations are the frames sampled on the center curve.
	Stations []Station
	// Left and Right are the stations moved onto the edge curves. Stations
	// an edge did not reach are missing.
	Left, Right []Station
	Profiles    []Profile
	Solid       *Solid
}

// BuildDeck samples the center curve, places the edge stations, transports
// the templates, joins them into profiles and lofts the profiles into a solid.
func BuildDeck(in DeckInput, opts *Options) (*Deck, error) {
	for _, g := range []struct {
		name string
		c    Curve
	}{{"center", in.Center}, {"left", in.Left}, {"right", in.Right}} {
		if g.c == nil {
			return nil, fmt.Errorf("%w: %s guide curve", ErrInputMissing, g.name)
		}
	}
	if err := in.Templates.Validate(); err != nil {
		return nil, err
	}
	var o Options
	if opts != nil {
		o = *opts
	}
	log := loggerOr(o.Log)

	stations, err := Sample(in.Center, in.Count, &o.Sample)
	if err != nil {
		return nil, err
	}
	iopts := IntersectOptions{
		Extension: o.Extension,
		Tolerance: o.Tolerance,
		Accuracy:  o.Sample.Accuracy,
	}
	iopts.Log = log.WithField("edge", EdgeLeft.String())
	left, _, err := IntersectStations(in.Left, stations, &iopts)
	if err != nil {
		return nil, err
	}
	iopts.Log = log.WithField("edge", EdgeRight.String())
	right, _, err := IntersectStations(in.Right, stations, &iopts)
	if err != nil {
		return nil, err
	}

	n := len(stations)
	if !o.PartialResults && (len(left) != n || len(right) != n) {
		return nil, newEdgeCountError([NumEdges]int{len(left), n, len(right), n})
	}
	rows := commonStations(left, right)
	arena := NewSectionArena(rows)
	frames := make([][NumEdges]Frame, len(rows))
	li, ri := 0, 0
	for row, idx := range rows {
		for left[li].Index != idx {
			li++
		}
		for right[ri].Index != idx {
			ri++
		}
		center := stations[idx].Frame
		frames[row] = [NumEdges]Frame{left[li].Frame, center, right[ri].Frame, center}
	}
	if err := transportAll(arena, in.Templates, frames, o.Workers); err != nil {
		return nil, err
	}

	profiles, err := arena.Assemble(&AssembleOptions{
		Tolerance:      o.Tolerance,
		PartialResults: o.PartialResults,
		Log:            log,
	})
	if err != nil {
		return nil, err
	}
	lo := o.Loft
	if lo.Log == nil {
		lo.Log = log
	}
	solid, err := Loft(ProfileCurves(profiles), &lo)
	if err != nil {
		return nil, err
	}
	return &Deck{
		Stations: stations,
		Left:     left,
		Right:    right,
		Profiles: profiles,
		Solid:    solid,
	}, nil
}

// commonStations returns the station indices present in both sequences, in
// increasing order.
func commonStations(a, b []Station) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			out = append(out, a[i].Index)
			i++
			j++
		}
	}
	return out
}

// transportAll fills every cell of arena with the template of its edge moved
// onto the frame of its row. Each cell is written by exactly one goroutine.
func transportAll(arena *SectionArena, t Templates, frames [][NumEdges]Frame, workers int) error {
	cell := func(row int, e Edge) error {
		c, err := Transport(t.Curves[e], t.Frame, frames[row][e])
		if err != nil {
			return &StationError{Station: arena.Station(row), Err: fmt.Errorf("%v edge: %w", e, err)}
		}
		arena.Set(row, e, c)
		return nil
	}
	if workers < 2 {
		for row := range arena.Len() {
			for e := range Edge(NumEdges) {
				if err := cell(row, e); err != nil {
					return err
				}
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for row := range arena.Len() {
		for e := range Edge(NumEdges) {
			g.Go(func() error { return cell(row, e) })
		}
	}
	return g.Wait()
}

// BridgeInput describes a bridge: a deck, optional reinforcement and optional
// piers.
type BridgeInput struct {
	Name string
	Deck DeckInput
	// Rebar places reinforcement channels along the deck's center curve when
	// not nil.
	Rebar *RebarRequest
	// RebarTarget is the surface the channels are projected onto. Nil means
	// the upward-facing skin of the deck.
	RebarTarget Surface
	// Ground is the surface the piers stand on. Nil means no piers.
	Ground       Surface
	ColumnRadius float64
}

// Bridge is a built bridge.
type Bridge struct {
	ID      uuid.UUID
	Name    string
	Axis    Curve
	Deck    *Deck
	Rebar   []Channel
	Columns []Column
}

// skinMinCos is the smallest cosine between a face normal and up for the face
// to belong to the deck's top skin.
const skinMinCos = 0.5

// BuildBridge builds the deck of in and then its reinforcement and piers.
func BuildBridge(in BridgeInput, opts *Options) (*Bridge, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	id := uuid.New()
	log := loggerOr(o.Log).WithField("run", id.String())
	o.Log = log

	d, err := BuildDeck(in.Deck, &o)
	if err != nil {
		return nil, err
	}
	b := &Bridge{
		ID:   id,
		Name: in.Name,
		Axis: in.Deck.Center,
		Deck: d,
	}
	up := o.Sample.Up
	if up == (Vec3{}) {
		up = Vec(0, 0, 1)
	}

	if in.Rebar != nil {
		target := in.RebarTarget
		if target == nil {
			target = d.Solid.Skin(up, skinMinCos)
		}
		b.Rebar, err = PlaceRebar(in.Deck.Center, *in.Rebar, target, &RebarOptions{
			Up:   up,
			Loft: o.Loft,
			Log:  log,
		})
		if err != nil {
			return nil, fmt.Errorf("rebar: %w", err)
		}
	}
	if in.Ground != nil {
		b.Columns, err = PlaceColumns(in.Deck.Center, in.Ground, &ColumnOptions{
			Radius: in.ColumnRadius,
			Up:     up,
			Log:    log,
		})
		if err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
	}

	warnings, channels := len(d.Solid.Warnings), 0
	for _, ch := range b.Rebar {
		if ch.Built() {
			warnings += len(ch.Solid.Warnings)
			channels++
		}
	}
	log.WithFields(logrus.Fields{
		"bridge":   in.Name,
		"stations": len(d.Stations),
		"profiles": len(d.Profiles),
		"channels": channels,
		"columns":  len(b.Columns),
		"warnings": warnings,
	}).Info("built bridge")
	return b, nil
}

// Solids returns every solid of the bridge, deck first. Dropped channels have
// none.
func (b *Bridge) Solids() []*Solid {
	out := []*Solid{b.Deck.Solid}
	for _, ch := range b.Rebar {
		if ch.Built() {
			out = append(out, ch.Solid)
		}
	}
	for _, c := range b.Columns {
		out = append(out, c.Solid)
	}
	return slices.Clip(out)
}
