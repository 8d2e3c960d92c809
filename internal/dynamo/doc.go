// Package dynamo provides the numeric vocabulary shared by the integrators,
// the physical models and the run loops.
//
// The package defines:
//
//   - [State]: positions and velocities of every body at one instant
//   - [Solver]: strategy computing accelerations for a second-order system
//   - [Integrator]: fixed-step stepper advancing a [State] with a [Solver]
//   - [Observer] and [Metric]: hooks called by run loops after every step
//
// # Example
//
//	solve := physics.NBodySolver(0)
//	integ := integrators.NewRK4[[]float64]()
//	next := integ.Step(t, dt, state, solve, masses)
//
// # Thread Safety
//
// States are plain values and every Solver in this module is a pure function,
// so independent trajectories may be stepped concurrently. Steps within one
// trajectory are strictly ordered.
package dynamo
