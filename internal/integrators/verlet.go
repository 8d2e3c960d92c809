package integrators

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Verlet is velocity Verlet. The solver is evaluated with the start-of-step
// velocity in both stages, so it suits velocity-independent forces.
type Verlet[P any] struct{}

func NewVerlet[P any]() *Verlet[P] {
	return &Verlet[P]{}
}

func (v *Verlet[P]) Step(t, dt float64, s dynamo.State, solve dynamo.Solver[P], params P) dynamo.State {
	n := s.Len()
	acc := solve.Solve(s.Pos, s.Vel, t, params)

	next := dynamo.NewState(n)
	dt2 := 0.5 * dt * dt
	for i := 0; i < n; i++ {
		next.Pos[i] = r3.Add(r3.Add(s.Pos[i], r3.Scale(dt, s.Vel[i])), r3.Scale(dt2, acc[i]))
	}

	accNew := solve.Solve(next.Pos, s.Vel, t+dt, params)

	halfDt := 0.5 * dt
	for i := 0; i < n; i++ {
		next.Vel[i] = r3.Add(s.Vel[i], r3.Scale(halfDt, r3.Add(acc[i], accNew[i])))
	}
	return next
}

// Leapfrog is the kick-drift-kick form.
type Leapfrog[P any] struct{}

func NewLeapfrog[P any]() *Leapfrog[P] {
	return &Leapfrog[P]{}
}

func (l *Leapfrog[P]) Step(t, dt float64, s dynamo.State, solve dynamo.Solver[P], params P) dynamo.State {
	halfDt := dt * 0.5

	acc := solve.Solve(s.Pos, s.Vel, t, params)
	vHalf := axpy(s.Vel, halfDt, acc)
	pos := axpy(s.Pos, dt, vHalf)

	accNew := solve.Solve(pos, vHalf, t+dt, params)
	return dynamo.State{
		Pos: pos,
		Vel: axpy(vHalf, halfDt, accNew),
	}
}
