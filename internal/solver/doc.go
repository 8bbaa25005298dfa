// Package solver relaxes a planar linkage toward a configuration that
// satisfies its joints.
//
// A solve starts from one perturbed element, usually the one the user is
// dragging. [Collect] finds the connected component around it, [Actions]
// orders it into alternating joint and rod corrections, and the [Solver]
// sweeps that sequence forward then backward until [TotalError] drops below
// the configured tolerance or the sweep budget runs out.
//
// Each correction ([Apply]) is local: a joint pulls its rods halfway toward
// itself and a rod pulls its joints halfway toward their attachment points.
// Rods always move rigidly, and grounded rods or joints are never moved.
//
// Running out of sweeps is not an error. The geometry is left at its best
// effort and [Result.Converged] reports the outcome.
//
// A Solver mutates the mechanism in place and is not safe for concurrent
// use. Run independent mechanisms on independent solvers.
package solver
