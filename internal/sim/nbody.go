package sim

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
)

// CollisionGuard halts a run as soon as any two bodies touch and keeps the
// pairs that did.
type CollisionGuard struct {
	Radii []float64
	Pairs []physics.Pair
}

func (g *CollisionGuard) Halt(step int, t float64, s dynamo.State) (string, bool) {
	pairs, ok := physics.Collisions(g.Radii, s.Pos)
	if !ok {
		return "", false
	}
	g.Pairs = pairs
	names := make([]string, len(pairs))
	for i, p := range pairs {
		names[i] = p.String()
	}
	return "collision " + strings.Join(names, ", "), true
}

type NBodyConfig struct {
	dynamo.Config
	Integrator string
	// Workers above one computes forces in parallel.
	Workers int
	// AllowCollisions keeps integrating through overlapping bodies.
	AllowCollisions bool
	// EscapeRadius above zero adds a "stability" metric: the fraction of
	// states with every body within this distance of the origin.
	EscapeRadius float64
}

func DefaultNBodyConfig() NBodyConfig {
	return NBodyConfig{
		Config:     dynamo.DefaultConfig(),
		Integrator: "rk4",
		Workers:    1,
	}
}

type NBodyResult struct {
	*Result
	Collisions    []physics.Pair
	StoppedEarly  bool
	EnergyDrift   float64
	MinSeparation float64
}

// NBodyRunner integrates a set of bodies under mutual gravity.
type NBodyRunner struct {
	opts      []Option
	log       zerolog.Logger
	observers []dynamo.Observer
}

func NewNBodyRunner(opts ...Option) *NBodyRunner {
	return &NBodyRunner{opts: opts, log: buildOptions(opts).log}
}

func (r *NBodyRunner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

func (r *NBodyRunner) Run(ctx context.Context, bodies []physics.Body, x0 dynamo.State, cfg NBodyConfig) (*NBodyResult, error) {
	if len(bodies) < 2 {
		return nil, fmt.Errorf("got %d bodies: %w", len(bodies), dynamo.ErrTooFewBodies)
	}
	if x0.Len() != len(bodies) || len(x0.Vel) != len(bodies) {
		return nil, fmt.Errorf("%d bodies, state for %d: %w", len(bodies), x0.Len(), dynamo.ErrDimensionMismatch)
	}

	name := cfg.Integrator
	if name == "" {
		name = "rk4"
	}
	integ, err := integrators.ByName[[]float64](name)
	if err != nil {
		return nil, err
	}

	masses := physics.Masses(bodies)
	s := New[[]float64](physics.NBodySolver(cfg.Workers), integ, masses, r.opts...)

	drift := metrics.NewEnergyDrift(func(x dynamo.State) float64 {
		return physics.TotalEnergy(x, masses)
	})
	sep := metrics.NewMinSeparation()
	s.AddMetric(drift)
	s.AddMetric(sep)
	if cfg.EscapeRadius > 0 {
		s.AddMetric(metrics.NewStability(cfg.EscapeRadius))
	}
	for _, o := range r.observers {
		s.AddObserver(o)
	}

	guard := &CollisionGuard{Radii: physics.Radii(bodies)}
	if !cfg.AllowCollisions {
		s.AddHalter(guard)
	}

	r.log.Info().Int("bodies", len(bodies)).Str("integrator", name).Int("iterations", cfg.Iterations).Msg("nbody run")

	res, err := s.Run(ctx, x0, cfg.Config)
	if res == nil {
		return nil, err
	}
	// The guard only runs before a step, so contact on the last one is
	// checked here. It is reported without marking the run as stopped.
	if err == nil && !res.Halted && !cfg.AllowCollisions {
		guard.Halt(res.StepsTaken, res.Times[len(res.Times)-1], res.Final())
	}
	out := &NBodyResult{
		Result:        res,
		Collisions:    guard.Pairs,
		StoppedEarly:  res.Halted,
		EnergyDrift:   drift.Final(),
		MinSeparation: sep.Value(),
	}
	return out, err
}
