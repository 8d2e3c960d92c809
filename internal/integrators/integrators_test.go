package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

func oscillatorEnergy(s dynamo.State) float64 {
	x, v := s.Pos[0].X, s.Vel[0].X
	return 0.5 * (x*x + v*v)
}

func TestIntegratorsEnergyDrift(t *testing.T) {
	tests := []struct {
		name     string
		maxDrift float64
	}{
		{"rk4", 1e-6},
		{"verlet", 1e-3},
		{"leapfrog", 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := ByName[struct{}](tt.name)
			if err != nil {
				t.Fatalf("ByName(%q): %v", tt.name, err)
			}

			s := dynamo.State{Pos: []r3.Vec{{X: 1}}, Vel: []r3.Vec{{}}}
			e0 := oscillatorEnergy(s)
			dt := 0.01
			for i := 0; i < 1000; i++ {
				s = integ.Step(float64(i)*dt, dt, s, harmonic, struct{}{})
			}

			drift := math.Abs(oscillatorEnergy(s)-e0) / e0
			if drift > tt.maxDrift {
				t.Errorf("%s energy drift too high: %e", tt.name, drift)
			}
		})
	}
}

func TestEulerGainsEnergy(t *testing.T) {
	integ := NewEuler[struct{}]()
	s := dynamo.State{Pos: []r3.Vec{{X: 1}}, Vel: []r3.Vec{{}}}
	e0 := oscillatorEnergy(s)

	for i := 0; i < 100; i++ {
		s = integ.Step(float64(i)*0.01, 0.01, s, harmonic, struct{}{})
	}

	if oscillatorEnergy(s) <= e0 {
		t.Error("explicit Euler should not conserve oscillator energy")
	}
}

func TestLeapfrogConstantAcceleration(t *testing.T) {
	a := r3.Vec{Y: -2}
	s := dynamo.State{Pos: []r3.Vec{{}}, Vel: []r3.Vec{{X: 1}}}
	next := NewLeapfrog[struct{}]().Step(0, 0.5, s, constantAccel(a), struct{}{})

	if next.Pos[0].X != 0.5 || next.Pos[0].Y != -0.25 {
		t.Errorf("unexpected position %+v", next.Pos[0])
	}
	if next.Vel[0].Y != -1 {
		t.Errorf("unexpected velocity %+v", next.Vel[0])
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName[struct{}]("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if got := Names(); len(got) != 4 || got[0] != "euler" {
		t.Errorf("Names() = %v", got)
	}
}
