package sim

import (
	"context"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// RunPendulum integrates a single pendulum of the given length released at
// theta with angular velocity omega.
func RunPendulum(ctx context.Context, length, theta, omega float64, integrator string, cfg dynamo.Config, opts ...Option) (*Result, error) {
	if integrator == "" {
		integrator = "rk4"
	}
	integ, err := integrators.ByName[float64](integrator)
	if err != nil {
		return nil, err
	}

	s := New[float64](physics.PendulumSolver(), integ, length, opts...)
	energy := func(x dynamo.State) float64 { return physics.PendulumEnergy(x, length) }
	s.AddMetric(metrics.NewEnergy(energy))
	s.AddMetric(metrics.NewEnergyDrift(energy))

	x0 := dynamo.State{Pos: []r3.Vec{{X: theta}}, Vel: []r3.Vec{{X: omega}}}
	return s.Run(ctx, x0, cfg)
}
