package physics

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// G is the Newtonian constant of gravitation in m³/(kg·s²), CODATA 2018.
const G = 6.67430e-11

// Gravity returns the acceleration of every body under the mutual attraction
// of all the others. Each unordered pair is evaluated once and its force is
// applied with opposite signs to both bodies.
func Gravity(pos []r3.Vec, masses []float64) []r3.Vec {
	f := pairForces(len(pos))
	for i := range pos {
		pairRow(f, pos, masses, i)
	}
	return reduce(f, masses)
}

// GravityParallel computes the same result as [Gravity], bit for bit, with the
// pair rows spread across workers.
func GravityParallel(pos []r3.Vec, masses []float64, workers int) []r3.Vec {
	n := len(pos)
	f := pairForces(n)
	// Row i writes f[i][j] and f[j][i] for j > i only, so rows never overlap.
	_ = dynamo.ParallelFor(n, workers, func(start, end int) error {
		for i := start; i < end; i++ {
			pairRow(f, pos, masses, i)
		}
		return nil
	})
	return reduce(f, masses)
}

// PairForces returns the full force tensor: entry [i][j] is the force that
// body j exerts on body i. The diagonal is zero.
func PairForces(pos []r3.Vec, masses []float64) [][]r3.Vec {
	f := pairForces(len(pos))
	for i := range pos {
		pairRow(f, pos, masses, i)
	}
	return f
}

// NBodySolver adapts [Gravity] to the integrator contract. The params value
// is the mass vector. A worker count above one selects [GravityParallel].
func NBodySolver(workers int) dynamo.SolverFunc[[]float64] {
	if workers > 1 {
		return func(pos, _ []r3.Vec, _ float64, masses []float64) []r3.Vec {
			return GravityParallel(pos, masses, workers)
		}
	}
	return func(pos, _ []r3.Vec, _ float64, masses []float64) []r3.Vec {
		return Gravity(pos, masses)
	}
}

func pairForces(n int) [][]r3.Vec {
	f := make([][]r3.Vec, n)
	for i := range f {
		f[i] = make([]r3.Vec, n)
	}
	return f
}

func pairRow(f [][]r3.Vec, pos []r3.Vec, masses []float64, i int) {
	for j := i + 1; j < len(pos); j++ {
		delta := r3.Sub(pos[i], pos[j])
		r := r3.Norm(delta)
		fij := r3.Scale(-G*masses[i]*masses[j]/(r*r*r), delta)
		f[i][j] = fij
		f[j][i] = r3.Scale(-1, fij)
	}
}

func reduce(f [][]r3.Vec, masses []float64) []r3.Vec {
	acc := make([]r3.Vec, len(f))
	for i, row := range f {
		var sum r3.Vec
		for _, fij := range row {
			sum = r3.Add(sum, fij)
		}
		acc[i] = r3.Vec{X: sum.X / masses[i], Y: sum.Y / masses[i], Z: sum.Z / masses[i]}
	}
	return acc
}
