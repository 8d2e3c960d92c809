package integrators

import "github.com/san-kum/physlab/internal/dynamo"

// Euler is the explicit first-order method. It exists for comparison runs.
type Euler[P any] struct{}

func NewEuler[P any]() *Euler[P] {
	return &Euler[P]{}
}

func (e *Euler[P]) Step(t, dt float64, s dynamo.State, solve dynamo.Solver[P], params P) dynamo.State {
	acc := solve.Solve(s.Pos, s.Vel, t, params)
	return dynamo.State{
		Pos: axpy(s.Pos, dt, s.Vel),
		Vel: axpy(s.Vel, dt, acc),
	}
}
