// Package geom provides the 2D vector primitives used by the mechanism model.
//
// [Point] is an immutable value: every operation returns a new point. The
// only degenerate inputs are zero-length vectors, and they are handled
// without failing:
//
//   - [Point.Normalize] of the zero vector is (1, 0)
//   - [Point.Div] by zero and [Point.Project] onto the zero vector give (0, 0)
//
// Angles are exposed in both radians and degrees because the relaxation
// rules reason about rod orientation in degrees.
package geom
