// Package planar provides 2D points, vectors, segments and simple polygons.
//
// It is used to reason about cross-sections once they have been mapped into
// the coordinate system of their own plane: computing enclosed area and
// orientation, detecting self-intersecting outlines and triangulating planar
// openings by ear clipping.
package planar
