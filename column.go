package deck

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultColumnRadius is the pier radius used when none is given.
const DefaultColumnRadius = 1.4

// Column is a cylindrical pier standing on the ground below an end of the
// axis.
type Column struct {
	Name string
	// Axis runs from the ground up to the axis end.
	Axis   Line
	Radius float64
	Solid  *Solid
}

// ColumnOptions configures [PlaceColumns]. The zero value is ready to use.
type ColumnOptions struct {
	// Radius is the pier radius. Zero means DefaultColumnRadius.
	Radius float64
	// Up is the global up direction. The zero vector means +Z.
	Up Vec3
	// Segments is the number of sides of the pier's section. Zero means 32.
	Segments int
	Log      logrus.FieldLogger
}

// PlaceColumns drops a pier from the start and the end of axis straight down
// onto ground.
func PlaceColumns(axis Curve, ground Surface, opts *ColumnOptions) ([]Column, error) {
	if axis == nil {
		return nil, fmt.Errorf("%w: column axis", ErrInputMissing)
	}
	if ground == nil {
		return nil, fmt.Errorf("%w: ground surface", ErrInputMissing)
	}
	var o ColumnOptions
	if opts != nil {
		o = *opts
	}
	if o.Radius == 0 {
		o.Radius = DefaultColumnRadius
	}
	if !(o.Radius > 0) {
		return nil, fmt.Errorf("%w: column radius %g", ErrInvalidParameter, o.Radius)
	}
	if o.Up == (Vec3{}) {
		o.Up = Vec(0, 0, 1)
	}
	if o.Segments <= 0 {
		o.Segments = 32
	}
	up := o.Up.Normalize()
	log := loggerOr(o.Log)

	ends := []struct {
		name string
		top  Point
	}{
		{"start", Start(axis)},
		{"end", End(axis)},
	}
	out := make([]Column, 0, len(ends))
	for _, end := range ends {
		foot, ok := ground.Raycast(end.top, up.Negate())
		if !ok {
			return nil, fmt.Errorf("%w: no ground below the %s of the axis at %v", ErrGeometricFailure, end.name, end.top)
		}
		var sections []Curve
		for _, p := range []Point{foot, end.top} {
			f, err := FrameFromNormal(p, up)
			if err != nil {
				return nil, err
			}
			c, err := NewCircle(f, o.Radius)
			if err != nil {
				return nil, err
			}
			sections = append(sections, c)
		}
		solid, err := Loft(sections, &LoftOptions{Segments: o.Segments, Log: log})
		if err != nil {
			return nil, fmt.Errorf("%s column: %w", end.name, err)
		}
		log.WithFields(logrus.Fields{
			"column": end.name,
			"height": foot.Distance(end.top),
		}).Debug("placed column")
		out = append(out, Column{
			Name:   end.name,
			Axis:   Line{foot, end.top},
			Radius: o.Radius,
			Solid:  solid,
		})
	}
	return out, nil
}
