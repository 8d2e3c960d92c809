package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// StandardGravity is the conventional surface gravity in m/s².
const StandardGravity = 9.80665

// PendulumSolver models undamped pendulums of length L, passed as params. The
// angle of each body is the X component of its position, Y and Z stay zero.
func PendulumSolver() dynamo.SolverFunc[float64] {
	return func(pos, _ []r3.Vec, _ float64, length float64) []r3.Vec {
		acc := make([]r3.Vec, len(pos))
		for i, p := range pos {
			acc[i] = r3.Vec{X: -StandardGravity / length * math.Sin(p.X)}
		}
		return acc
	}
}

// PendulumEnergy is the energy per unit mass of every pendulum in s, with
// the lowest point as zero.
func PendulumEnergy(s dynamo.State, length float64) float64 {
	var e float64
	for i := range s.Pos {
		v := length * s.Vel[i].X
		e += 0.5*v*v + StandardGravity*length*(1-math.Cos(s.Pos[i].X))
	}
	return e
}
