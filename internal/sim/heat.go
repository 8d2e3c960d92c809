package sim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"gonum.org/v1/gonum/mat"
)

type HeatConfig struct {
	Plate physics.Plate
	Alpha float64
	// Dt of zero uses Plate.DefaultDt.
	Dt         float64
	Iterations int
	Initial    float64
	Boundary   physics.Boundary
	// Source is optional.
	Source *physics.HeatSource
	// CheckStability rejects a Dt above physics.MaxStableDt.
	CheckStability bool
	Workers        int
}

// HeatTrajectory holds Iterations+1 temperature frames. Index 0 is the
// initial plate.
type HeatTrajectory struct {
	Frames []*mat.Dense
	Times  []float64
	Dt     float64
}

func (h *HeatTrajectory) Final() *mat.Dense {
	return h.Frames[len(h.Frames)-1]
}

type HeatRunner struct {
	log zerolog.Logger
}

func NewHeatRunner(opts ...Option) *HeatRunner {
	return &HeatRunner{log: buildOptions(opts).log}
}

// Run steps the plate. Each step diffuses the interior, then reapplies the
// boundary, then the source.
func (r *HeatRunner) Run(ctx context.Context, cfg HeatConfig) (*HeatTrajectory, error) {
	if cfg.Plate.Nodes < 3 {
		return nil, fmt.Errorf("plate needs at least 3 nodes per axis, got %d: %w", cfg.Plate.Nodes, dynamo.ErrParameterBounds)
	}
	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1, got %d: %w", cfg.Iterations, dynamo.ErrParameterBounds)
	}

	dt := cfg.Dt
	if dt == 0 {
		dt = cfg.Plate.DefaultDt()
	}
	if dt < 0 {
		return nil, fmt.Errorf("dt must be positive, got %g: %w", dt, dynamo.ErrParameterBounds)
	}

	hx, hy := cfg.Plate.Spacing()
	if cfg.CheckStability {
		if limit := physics.MaxStableDt(cfg.Alpha, hx, hy); dt > limit {
			return nil, fmt.Errorf("dt %g above limit %g: %w", dt, limit, dynamo.ErrUnstable)
		}
	}

	xs, ys := cfg.Plate.Axes()
	overlay := func(T *mat.Dense) {
		if cfg.Boundary != nil {
			cfg.Boundary.Apply(T, xs, ys)
		}
		if cfg.Source != nil {
			cfg.Source.Apply(T, xs, ys)
		}
	}

	T := cfg.Plate.Uniform(cfg.Initial)
	overlay(T)

	traj := &HeatTrajectory{
		Frames: make([]*mat.Dense, 0, cfg.Iterations+1),
		Times:  make([]float64, 0, cfg.Iterations+1),
		Dt:     dt,
	}
	traj.Frames = append(traj.Frames, T)
	traj.Times = append(traj.Times, 0)

	r.log.Info().Int("nodes", cfg.Plate.Nodes).Float64("dt", dt).Int("iterations", cfg.Iterations).Msg("heat run")

	for i := 1; i <= cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		var next *mat.Dense
		if cfg.Workers > 1 {
			next = physics.HeatStepParallel(T, dt, cfg.Alpha, hx, hy, cfg.Workers)
		} else {
			next = physics.HeatStep(T, dt, cfg.Alpha, hx, hy)
		}
		overlay(next)

		T = next
		traj.Frames = append(traj.Frames, T)
		traj.Times = append(traj.Times, float64(i)*dt)
	}

	r.log.Debug().Float64("max", mat.Max(T)).Float64("min", mat.Min(T)).Msg("heat run finished")
	return traj, nil
}
