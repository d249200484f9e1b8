package deck

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// DefaultExtension is the fraction of its own length by which a guide curve
// is extended at each end before it is intersected with station planes.
const DefaultExtension = 0.05

// planeSamples is the number of sign checks per smooth span of a curve.
const planeSamples = 16

// Hit is a point where a curve meets a plane.
type Hit struct {
	T     float64
	Point Point
}

// CurvePlane returns the points where c crosses the XY plane of plane, in
// increasing parameter order. Hits closer than tolerance to the previous hit
// are merged.
func CurvePlane(c Curve, plane Frame, tolerance float64) []Hit {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if !planeMeetsBox(plane, CurveBounds(c), tolerance) {
		return nil
	}

	f := func(t float64) float64 { return plane.SignedDistance(c.Eval(t)) }
	var hits []Hit
	add := func(t float64) {
		p := c.Eval(t)
		if n := len(hits); n > 0 && hits[n-1].Point.Distance(p) <= tolerance {
			return
		}
		hits = append(hits, Hit{T: t, Point: p})
	}

	per := planeSamples
	if _, ok := c.(Linear); ok {
		per = 1
	}
	spans := Spans(c)
	a := spans[0]
	fa := f(a)
	for i := 1; i < len(spans); i++ {
		s0, s1 := spans[i-1], spans[i]
		for k := 1; k <= per; k++ {
			b := s0 + (s1-s0)*float64(k)/float64(per)
			fb := f(b)
			if math.Abs(fa) <= tolerance {
				add(a)
			}
			if fa*fb < 0 && math.Abs(fa) > tolerance && math.Abs(fb) > tolerance {
				add(findRoot(f, a, b, fa, fb))
			}
			a, fa = b, fb
		}
	}
	if math.Abs(fa) <= tolerance {
		add(a)
	}
	return hits
}

// planeMeetsBox reports whether the plane passes within tolerance of b.
func planeMeetsBox(plane Frame, b Box, tolerance float64) bool {
	if b.IsEmpty() {
		return false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range b.Corners() {
		d := plane.SignedDistance(p)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo <= tolerance && hi >= -tolerance
}

// Intersect returns the point where c crosses plane, provided there is exactly
// one.
func Intersect(c Curve, plane Frame, tolerance float64) (Point, bool) {
	hits := CurvePlane(c, plane, tolerance)
	if len(hits) != 1 {
		return Point{}, false
	}
	return hits[0].Point, true
}

// IntersectOptions configures [IntersectStations]. The zero value is ready to
// use.
type IntersectOptions struct {
	// Extension is the fraction of the curve's length added at each end.
	// Zero means DefaultExtension; negative values disable extension.
	Extension float64
	// Tolerance is the intersection tolerance. Zero means DefaultTolerance.
	Tolerance float64
	// Accuracy bounds the arc length error. Zero means DefaultAccuracy.
	Accuracy float64
	Log      logrus.FieldLogger
}

// IntersectStations extends c and moves each station onto the point where c
// crosses the station's plane. The frame's axes are kept. Stations whose plane
// c crosses zero or several times are dropped; their indices are returned.
func IntersectStations(c Curve, stations []Station, opts *IntersectOptions) (kept []Station, dropped []int, err error) {
	if c == nil {
		return nil, nil, fmt.Errorf("%w: guide curve to intersect", ErrInputMissing)
	}
	var o IntersectOptions
	if opts != nil {
		o = *opts
	}
	if o.Extension == 0 {
		o.Extension = DefaultExtension
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Accuracy <= 0 {
		o.Accuracy = DefaultAccuracy
	}
	log := loggerOr(o.Log)

	guide := c
	if o.Extension > 0 {
		guide, err = ExtendRelative(c, o.Extension, o.Accuracy)
		if err != nil {
			return nil, nil, err
		}
	}
	for _, st := range stations {
		hits := CurvePlane(guide, st.Frame, o.Tolerance)
		if len(hits) != 1 {
			log.WithFields(logrus.Fields{
				"station": st.Index,
				"hits":    len(hits),
			}).Debug("dropping station: guide curve does not cross its plane exactly once")
			dropped = append(dropped, st.Index)
			continue
		}
		kept = append(kept, Station{
			Index: st.Index,
			Param: st.Param,
			Frame: st.Frame.WithOrigin(hits[0].Point),
		})
	}
	return kept, dropped, nil
}
