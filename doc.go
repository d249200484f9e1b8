// Package deck builds the solid geometry of a bridge deck from a few guide
// curves and cross-section templates.
//
// # Curves
//
// Guide curves and templates implement [Curve]: a parametric 3D curve over a
// closed [Interval] with a first derivative and an affine image. The package
// provides [Line], [Polyline], [CubicBez], [NURBS], [Ellipse] and
// [PolyCurve]. Optional interfaces such as [Arclener], [Spanner] and [Linear]
// let a curve answer queries exactly where the generic numerical code in
// [Arclen], [DivideByCount] or [Flatten] would only approximate.
//
// # Pipeline
//
// A deck is built in stages, each of which is usable on its own:
//
//   - [Sample] places stations along the center curve, at equal arc length
//     with both ends included. The spacing of count stations on a curve of
//     length L is L/(count-1).
//   - [IntersectStations] moves stations onto the edge curves. Stations whose
//     plane an edge misses are dropped.
//   - [Transport] moves a template from its reference frame onto a station
//     frame with a rigid motion.
//   - [Assemble] joins the four edges of each station into a closed profile.
//   - [Loft] builds a capped [Solid] through the profiles.
//   - [PlaceRebar] projects points of the axis onto a [Surface] and lofts
//     circular sections around them. A channel that misses the surface
//     entirely is kept without a solid.
//   - [PlaceColumns] drops piers from the axis ends onto a ground [Surface],
//     such as a plane or a [HeightField].
//
// [BuildDeck] and [BuildBridge] run the stages in order.
//
// # Errors
//
// Failures wrap one of [ErrInputMissing], [ErrInvalidParameter] or
// [ErrGeometricFailure] and are matched with [errors.Is]. Problems that do not
// prevent a result, such as an end opening that could not be capped, are
// recorded in [Solid.Warnings] as [ErrToleranceWarning] values instead.
//
// # Logging
//
// Options structs accept a [logrus.FieldLogger]. Dropped stations are logged
// at debug level and partial results at warning level. A nil logger discards
// everything.
package deck
