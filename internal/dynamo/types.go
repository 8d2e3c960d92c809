package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// State is the position and velocity of every body at one instant.
// Pos and Vel share one body ordering and always have equal length.
type State struct {
	Pos []r3.Vec
	Vel []r3.Vec
}

// NewState returns a zeroed state for n bodies.
func NewState(n int) State {
	return State{
		Pos: make([]r3.Vec, n),
		Vel: make([]r3.Vec, n),
	}
}

func (s State) Len() int { return len(s.Pos) }

func (s State) Clone() State {
	c := State{
		Pos: make([]r3.Vec, len(s.Pos)),
		Vel: make([]r3.Vec, len(s.Vel)),
	}
	copy(c.Pos, s.Pos)
	copy(c.Vel, s.Vel)
	return c
}

func (s State) IsValid() bool {
	for i := range s.Pos {
		if !finite(s.Pos[i]) || !finite(s.Vel[i]) {
			return false
		}
	}
	return true
}

// Flatten packs the state as x, y, z, vx, vy, vz per body.
func (s State) Flatten() []float64 {
	out := make([]float64, 0, 6*len(s.Pos))
	for i := range s.Pos {
		p, v := s.Pos[i], s.Vel[i]
		out = append(out, p.X, p.Y, p.Z, v.X, v.Y, v.Z)
	}
	return out
}

// Unflatten is the inverse of [State.Flatten].
func Unflatten(row []float64) (State, error) {
	if len(row)%6 != 0 {
		return State{}, fmt.Errorf("unflatten %d values: %w", len(row), ErrDimensionMismatch)
	}
	s := NewState(len(row) / 6)
	for i := range s.Pos {
		b := row[i*6 : i*6+6]
		s.Pos[i] = r3.Vec{X: b[0], Y: b[1], Z: b[2]}
		s.Vel[i] = r3.Vec{X: b[3], Y: b[4], Z: b[5]}
	}
	return s, nil
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Solver returns the acceleration of every body for the given positions and
// velocities at time t. The params value is opaque to the caller and is
// forwarded unchanged by integrators. Implementations must not modify pos or vel.
type Solver[P any] interface {
	Solve(pos, vel []r3.Vec, t float64, params P) []r3.Vec
}

// SolverFunc adapts an ordinary function to the [Solver] interface.
type SolverFunc[P any] func(pos, vel []r3.Vec, t float64, params P) []r3.Vec

func (f SolverFunc[P]) Solve(pos, vel []r3.Vec, t float64, params P) []r3.Vec {
	return f(pos, vel, t, params)
}

// Integrator advances a state by one fixed step. Implementations keep no
// state between calls and never modify s.
type Integrator[P any] interface {
	Step(t, dt float64, s State, solve Solver[P], params P) State
}

type Observer interface {
	OnStep(step int, t float64, s State)
}

type Metric interface {
	Name() string
	Observe(step int, t float64, s State)
	Value() float64
	Reset()
}

type Config struct {
	Dt            float64
	Iterations    int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Iterations:    1000,
		ValidateState: true,
	}
}
