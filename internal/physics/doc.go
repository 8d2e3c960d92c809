// Package physics provides the force models and grid kernels stepped by the
// simulators:
//
//   - [Gravity]: pairwise Newtonian acceleration for an N-body system
//   - [Collisions]: overlap detection between bodies with radii
//   - [PendulumSolver]: a simple pendulum expressed as a [dynamo.Solver]
//   - [HeatStep]: one explicit finite-difference step of 2-D heat diffusion
//
// Every function here is pure. Inputs are never modified and every result is
// freshly allocated, so the same inputs always produce bit-identical output.
//
// # Coincident bodies
//
// [Gravity] divides by the cube of each pair separation. Two bodies at exactly
// the same position give Inf or NaN accelerations, which propagate into the
// next state. Callers detect this with [dynamo.State.IsValid] or stop the run
// earlier with [Collisions].
package physics
