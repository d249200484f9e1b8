package deck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultRebarRadius is the channel radius used when a request leaves it
// unset.
const DefaultRebarRadius = 0.5

// RebarPosition places one section of a reinforcement channel.
type RebarPosition struct {
	// Param is the parameter on the axis curve.
	Param float64
	// Offset is added along the up direction after projection onto the
	// target surface.
	Offset float64
}

// ParseRebarPosition parses a position written as "t,dy".
func ParseRebarPosition(s string) (RebarPosition, error) {
	ts, dys, ok := strings.Cut(s, ",")
	if !ok {
		return RebarPosition{}, fmt.Errorf("%w: rebar position %q is not of the form t,dy", ErrInvalidParameter, s)
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
	if err != nil {
		return RebarPosition{}, fmt.Errorf("%w: rebar parameter: %v", ErrInvalidParameter, err)
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(dys), 64)
	if err != nil {
		return RebarPosition{}, fmt.Errorf("%w: rebar offset: %v", ErrInvalidParameter, err)
	}
	return RebarPosition{Param: t, Offset: dy}, nil
}

// RebarRequest describes a set of parallel reinforcement channels.
type RebarRequest struct {
	Positions []RebarPosition
	Radius    float64
	// Offsets holds one horizontal offset per channel, measured along the
	// local X axis of the axis frames. Empty means a single channel at 0.
	Offsets []float64
}

// RebarOptions configures [PlaceRebar]. The zero value is ready to use.
type RebarOptions struct {
	// Up is the global up direction. The zero vector means +Z.
	Up Vec3
	// Probe is the direction of the first ray cast toward the target. The
	// zero vector means Up.
	Probe Vec3
	Loft  LoftOptions
	Log   logrus.FieldLogger
}

// Channel is one tubular reinforcement channel.
type Channel struct {
	Offset float64
	// Centers holds the projected section centers that were kept.
	Centers []Point
	// Solid is nil when the channel was dropped because none of its
	// positions reached the target.
	Solid *Solid
	// Dropped lists the positions that found no target surface.
	Dropped []int
}

// Built reports whether the channel has a solid.
func (ch Channel) Built() bool { return ch.Solid != nil }

// PlaceRebar builds one channel per horizontal offset. For each position the
// axis frame is shifted sideways by the offset, projected onto target along
// the probe direction (retrying once in the opposite direction), lifted by
// the position's vertical offset and used as the center of a circular
// section. The sections of a channel are lofted and capped.
//
// A channel none of whose positions reaches the target is returned without a
// solid. PlaceRebar fails with [ErrInsufficientInput] only when every channel
// is dropped.
func PlaceRebar(axis Curve, req RebarRequest, target Surface, opts *RebarOptions) ([]Channel, error) {
	if axis == nil {
		return nil, fmt.Errorf("%w: rebar axis", ErrInputMissing)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: rebar target surface", ErrInputMissing)
	}
	if !(req.Radius > 0) {
		return nil, fmt.Errorf("%w: rebar radius %g", ErrInvalidParameter, req.Radius)
	}
	if len(req.Positions) == 0 {
		return nil, fmt.Errorf("%w: no rebar positions", ErrInvalidParameter)
	}
	dom := axis.Domain()
	for i, pos := range req.Positions {
		if !dom.Contains(pos.Param) {
			return nil, fmt.Errorf("%w: rebar position %d: parameter %g outside [%g, %g]", ErrInvalidParameter, i, pos.Param, dom.T0, dom.T1)
		}
	}

	var o RebarOptions
	if opts != nil {
		o = *opts
	}
	if o.Up == (Vec3{}) {
		o.Up = Vec(0, 0, 1)
	}
	up := o.Up.Normalize()
	if o.Probe == (Vec3{}) {
		o.Probe = up
	}
	log := loggerOr(o.Log)
	if o.Loft.Log == nil {
		o.Loft.Log = log
	}
	offsets := req.Offsets
	if len(offsets) == 0 {
		offsets = []float64{0}
	}

	flat := ProjectToPlane(axis, Frame{Origin: Point{}, Z: up})
	frames := make([]Frame, len(req.Positions))
	valid := make([]bool, len(req.Positions))
	for i, pos := range req.Positions {
		f, err := FrameAt(flat, pos.Param, up)
		if err != nil {
			log.WithField("position", i).WithError(err).Debug("dropping rebar position: no frame")
			continue
		}
		frames[i], valid[i] = f, true
	}

	channels := make([]Channel, 0, len(offsets))
	built := 0
	for _, dx := range offsets {
		ch := Channel{Offset: dx}
		var circles []Ellipse
		for i, pos := range req.Positions {
			if !valid[i] {
				ch.Dropped = append(ch.Dropped, i)
				continue
			}
			f := frames[i]
			origin := f.Origin.Translate(f.X.Mul(dx))
			hit, ok := target.Raycast(origin, o.Probe)
			if !ok {
				hit, ok = target.Raycast(origin, o.Probe.Negate())
			}
			if !ok {
				log.WithFields(logrus.Fields{
					"position": i,
					"offset":   dx,
				}).Debug("dropping rebar position: no target surface")
				ch.Dropped = append(ch.Dropped, i)
				continue
			}
			center := hit.Translate(up.Mul(pos.Offset))
			circle, err := NewCircle(f.WithOrigin(center), req.Radius)
			if err != nil {
				return nil, err
			}
			ch.Centers = append(ch.Centers, center)
			circles = append(circles, circle)
		}
		var sections []Curve
		switch len(circles) {
		case 0:
			log.WithFields(logrus.Fields{
				"offset":    dx,
				"positions": len(req.Positions),
			}).Warn("dropping rebar channel: no position reached the target surface")
			channels = append(channels, ch)
			continue
		case 1:
			// A lone section is extruded by one diameter, centered on its
			// plane.
			h := circles[0].Normal().Mul(req.Radius)
			sections = []Curve{
				circles[0].Transform(Translate(h.Negate())),
				circles[0].Transform(Translate(h)),
			}
		default:
			for _, c := range circles {
				sections = append(sections, c)
			}
		}
		solid, err := Loft(sections, &o.Loft)
		if err != nil {
			return nil, fmt.Errorf("rebar channel at offset %g: %w", dx, err)
		}
		ch.Solid = solid
		channels = append(channels, ch)
		built++
	}
	if built == 0 {
		return nil, fmt.Errorf("%w: no rebar channel found the target surface", ErrInsufficientInput)
	}
	return channels, nil
}
