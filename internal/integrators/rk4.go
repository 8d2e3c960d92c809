package integrators

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// RK4 is the classic four-stage Runge-Kutta method applied to the coupled
// first-order form x' = v, v' = a(x, v, t).
type RK4[P any] struct{}

func NewRK4[P any]() *RK4[P] {
	return &RK4[P]{}
}

func (r *RK4[P]) Step(t, dt float64, s dynamo.State, solve dynamo.Solver[P], params P) dynamo.State {
	x, v := s.Pos, s.Vel

	k1 := scale(dt, v)
	l1 := scale(dt, solve.Solve(x, v, t, params))

	v2 := axpy(v, 0.5, l1)
	k2 := scale(dt, v2)
	l2 := scale(dt, solve.Solve(axpy(x, 0.5, k1), v2, t+dt/2, params))

	v3 := axpy(v, 0.5, l2)
	k3 := scale(dt, v3)
	l3 := scale(dt, solve.Solve(axpy(x, 0.5, k2), v3, t+dt/2, params))

	v4 := axpy(v, 1, l3)
	k4 := scale(dt, v4)
	l4 := scale(dt, solve.Solve(axpy(x, 1, k3), v4, t+dt, params))

	next := dynamo.NewState(len(x))
	for i := range x {
		dx := r3.Add(r3.Add(k1[i], r3.Scale(2, k2[i])), r3.Add(r3.Scale(2, k3[i]), k4[i]))
		dv := r3.Add(r3.Add(l1[i], r3.Scale(2, l2[i])), r3.Add(r3.Scale(2, l3[i]), l4[i]))
		next.Pos[i] = r3.Add(x[i], r3.Scale(1.0/6.0, dx))
		next.Vel[i] = r3.Add(v[i], r3.Scale(1.0/6.0, dv))
	}
	return next
}
