package physics

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

func KineticEnergy(s dynamo.State, masses []float64) float64 {
	var ke float64
	for i, v := range s.Vel {
		ke += 0.5 * masses[i] * r3.Norm2(v)
	}
	return ke
}

// PotentialEnergy sums -G m_i m_j / r over every pair.
func PotentialEnergy(s dynamo.State, masses []float64) float64 {
	var pe float64
	for i := 0; i < len(s.Pos); i++ {
		for j := i + 1; j < len(s.Pos); j++ {
			r := r3.Norm(r3.Sub(s.Pos[i], s.Pos[j]))
			pe -= G * masses[i] * masses[j] / r
		}
	}
	return pe
}

func TotalEnergy(s dynamo.State, masses []float64) float64 {
	return KineticEnergy(s, masses) + PotentialEnergy(s, masses)
}

// Momentum is the total linear momentum of the system.
func Momentum(s dynamo.State, masses []float64) r3.Vec {
	var p r3.Vec
	for i, v := range s.Vel {
		p = r3.Add(p, r3.Scale(masses[i], v))
	}
	return p
}

// MinSeparation is the smallest distance between any two bodies.
func MinSeparation(pos []r3.Vec) float64 {
	best := -1.0
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			d := r3.Norm(r3.Sub(pos[i], pos[j]))
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}
