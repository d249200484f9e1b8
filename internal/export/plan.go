package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/paramcamp/deck"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlanSize is the width and height of a plan view image.
var PlanSize = [2]vg.Length{10 * vg.Inch, 6 * vg.Inch}

var (
	axisColor    = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	edgeColor    = color.RGBA{R: 30, G: 110, B: 200, A: 255}
	stationColor = color.RGBA{R: 220, G: 90, B: 30, A: 255}
	rebarColor   = color.RGBA{R: 40, G: 160, B: 60, A: 255}
	columnColor  = color.RGBA{R: 130, G: 60, B: 160, A: 255}
)

// curveSegments is the number of points per span used to draw curves.
const curveSegments = 32

// PlanView draws b seen from above: the axis and deck edges, the station
// origins, the rebar section centers and the piers.
func PlanView(b *deck.Bridge) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (plan)", b.Name)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	add := func(label string, pts []deck.Point, c color.Color, line bool) error {
		if len(pts) == 0 {
			return nil
		}
		xys := xy(pts)
		if line {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
			l.Color = c
			l.Width = vg.Points(1)
			p.Add(l)
			p.Legend.Add(label, l)
			return nil
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		s.GlyphStyle.Color = c
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add(label, s)
		return nil
	}

	if err := add("axis", deck.Flatten(b.Axis, curveSegments), axisColor, true); err != nil {
		return nil, err
	}
	d := b.Deck
	for _, edge := range []struct {
		label    string
		stations []deck.Station
	}{{"left edge", d.Left}, {"right edge", d.Right}} {
		if err := add(edge.label, origins(edge.stations), edgeColor, true); err != nil {
			return nil, err
		}
	}
	if err := add("stations", origins(d.Stations), stationColor, false); err != nil {
		return nil, err
	}
	var centers []deck.Point
	for _, ch := range b.Rebar {
		centers = append(centers, ch.Centers...)
	}
	if err := add("rebar", centers, rebarColor, false); err != nil {
		return nil, err
	}
	var feet []deck.Point
	for _, c := range b.Columns {
		feet = append(feet, c.Axis.P0)
	}
	if err := add("columns", feet, columnColor, false); err != nil {
		return nil, err
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WritePlan writes the plan view of b as a PNG image.
func WritePlan(w io.Writer, b *deck.Bridge) error {
	p, err := PlanView(b)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlanSize[0], PlanSize[1], "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// WritePlanFile writes the plan view of b to the PNG file at path.
func WritePlanFile(path string, b *deck.Bridge) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePlan(w, b)
	})
}

func origins(stations []deck.Station) []deck.Point {
	out := make([]deck.Point, len(stations))
	for i, st := range stations {
		out[i] = st.Frame.Origin
	}
	return out
}

func xy(pts []deck.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}
