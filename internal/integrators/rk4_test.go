package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

func constantAccel(a r3.Vec) dynamo.SolverFunc[struct{}] {
	return func(pos, vel []r3.Vec, t float64, _ struct{}) []r3.Vec {
		acc := make([]r3.Vec, len(pos))
		for i := range acc {
			acc[i] = a
		}
		return acc
	}
}

// harmonic gives x'' = -x on every component.
var harmonic = dynamo.SolverFunc[struct{}](func(pos, vel []r3.Vec, t float64, _ struct{}) []r3.Vec {
	acc := make([]r3.Vec, len(pos))
	for i := range pos {
		acc[i] = r3.Scale(-1, pos[i])
	}
	return acc
})

func closeTo(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}

func TestRK4ConstantAccelerationIsExact(t *testing.T) {
	a := r3.Vec{X: 1.5, Y: -9.81, Z: 0.25}
	x0 := r3.Vec{X: 10, Y: 20, Z: -5}
	v0 := r3.Vec{X: -3, Y: 4, Z: 2}
	s := dynamo.State{Pos: []r3.Vec{x0}, Vel: []r3.Vec{v0}}

	for _, dt := range []float64{0.001, 0.1, 1, 10} {
		next := NewRK4[struct{}]().Step(0, dt, s, constantAccel(a), struct{}{})

		wantX := r3.Add(r3.Add(x0, r3.Scale(dt, v0)), r3.Scale(0.5*dt*dt, a))
		wantV := r3.Add(v0, r3.Scale(dt, a))

		got := [6]float64{next.Pos[0].X, next.Pos[0].Y, next.Pos[0].Z, next.Vel[0].X, next.Vel[0].Y, next.Vel[0].Z}
		want := [6]float64{wantX.X, wantX.Y, wantX.Z, wantV.X, wantV.Y, wantV.Z}
		for i := range got {
			if !closeTo(got[i], want[i], 1e-13) {
				t.Errorf("dt=%v component %d: got %.17g, want %.17g", dt, i, got[i], want[i])
			}
		}
	}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4[struct{}]()
	s := dynamo.State{Pos: []r3.Vec{{X: 1}}, Vel: []r3.Vec{{}}}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		s = integ.Step(float64(i)*dt, dt, s, harmonic, struct{}{})
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(s.Pos[0].X-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", s.Pos[0].X, expectedX)
	}
	if math.Abs(s.Vel[0].X-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", s.Vel[0].X, expectedV)
	}
}

func TestRK4StageTimesAndParams(t *testing.T) {
	var times []float64
	solve := dynamo.SolverFunc[string](func(pos, vel []r3.Vec, tm float64, p string) []r3.Vec {
		if p != "masses" {
			t.Errorf("params not forwarded: %q", p)
		}
		times = append(times, tm)
		return make([]r3.Vec, len(pos))
	})

	s := dynamo.NewState(2)
	NewRK4[string]().Step(3, 0.5, s, solve, "masses")

	want := []float64{3, 3.25, 3.25, 3.5}
	if len(times) != len(want) {
		t.Fatalf("expected %d solver calls, got %d", len(want), len(times))
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("stage %d evaluated at t=%v, want %v", i+1, times[i], want[i])
		}
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	s := dynamo.State{
		Pos: []r3.Vec{{X: 1, Y: 2}, {X: -1}},
		Vel: []r3.Vec{{Z: 3}, {Y: -2}},
	}
	before := s.Clone()

	NewRK4[struct{}]().Step(0, 0.1, s, harmonic, struct{}{})

	for i := range s.Pos {
		if s.Pos[i] != before.Pos[i] || s.Vel[i] != before.Vel[i] {
			t.Fatalf("input state modified at body %d", i)
		}
	}
}
