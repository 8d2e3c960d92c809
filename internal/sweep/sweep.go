// Package sweep runs families of N-body simulations that differ in one
// setting and summarises each run.
package sweep

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Swept settings.
const (
	ParamDt       = "dt"
	ParamMass     = "mass"
	ParamVelocity = "velocity"
)

// ParameterSweep varies Param over Steps evenly spaced values from Min to
// Max. Mass and velocity values scale every body of the base config.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	Steps    int
}

type Result struct {
	Value         float64
	Steps         int
	StoppedEarly  bool
	HaltReason    string
	EnergyDrift   float64
	MinSeparation float64
}

func (p ParameterSweep) Values() []float64 {
	if p.Steps == 1 {
		return []float64{p.Min}
	}
	return floats.Span(make([]float64, p.Steps), p.Min, p.Max)
}

func (p ParameterSweep) apply(cfg *config.Config, v float64) error {
	switch p.Param {
	case ParamDt:
		cfg.Dt = v
	case ParamMass:
		for i := range cfg.Bodies {
			cfg.Bodies[i].Mass *= v
		}
	case ParamVelocity:
		for i := range cfg.Bodies {
			for k := range cfg.Bodies[i].Velocity {
				cfg.Bodies[i].Velocity[k] *= v
			}
		}
	default:
		return fmt.Errorf("unknown sweep parameter %q", p.Param)
	}
	return nil
}

// Runner executes members through a sim.Ensemble.
type Runner struct {
	ensemble *sim.Ensemble
}

// NewRunner runs at most parallel members at once.
func NewRunner(parallel int, opts ...sim.Option) *Runner {
	return &Runner{ensemble: sim.NewEnsemble(sim.NewNBodyRunner(opts...), parallel)}
}

// Sweep runs base once per swept value. Results follow Values order.
func (r *Runner) Sweep(ctx context.Context, base *config.Config, p ParameterSweep) ([]Result, error) {
	if p.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 step, got %d: %w", p.Steps, dynamo.ErrParameterBounds)
	}
	values := p.Values()
	members := make([]sim.Member, len(values))
	for i, v := range values {
		cfg := base.Clone()
		if err := p.apply(cfg, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", p.Param, v, err)
		}
		bodies, x0 := cfg.NBody()
		members[i] = sim.Member{Bodies: bodies, X0: x0, Config: cfg.NBodyConfig()}
	}

	runs, err := r.ensemble.Run(ctx, members)
	if err != nil {
		return nil, err
	}
	out := make([]Result, len(runs))
	for i, res := range runs {
		out[i] = summarise(values[i], res)
	}
	return out, nil
}

// Best returns the result with the smallest energy drift among runs that
// were not stopped early. ok is false when every run stopped.
func Best(results []Result) (best Result, ok bool) {
	score := math.Inf(1)
	for _, r := range results {
		if r.StoppedEarly {
			continue
		}
		if d := math.Abs(r.EnergyDrift); d < score {
			score, best, ok = d, r, true
		}
	}
	return best, ok
}

func summarise(v float64, res *sim.NBodyResult) Result {
	return Result{
		Value:         v,
		Steps:         res.StepsTaken,
		StoppedEarly:  res.StoppedEarly,
		HaltReason:    res.HaltReason,
		EnergyDrift:   res.EnergyDrift,
		MinSeparation: res.MinSeparation,
	}
}

// MonteCarlo perturbs every starting position of base by up to Perturbation
// metres per axis and reruns it Trials times.
type MonteCarlo struct {
	Trials       int
	Perturbation float64
	Seed         int64
	// Bound is the distance from the starting centre beyond which a body
	// counts as escaped. Zero means ten times the starting extent.
	Bound float64
}

type Trial struct {
	Result
	X0      dynamo.State
	Final   dynamo.State
	Escaped bool
}

func (r *Runner) MonteCarlo(ctx context.Context, base *config.Config, mc MonteCarlo) ([]Trial, error) {
	if mc.Trials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least 1 trial, got %d: %w", mc.Trials, dynamo.ErrParameterBounds)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	bodies, x0 := base.NBody()
	centre, extent := spread(x0.Pos)
	bound := mc.Bound
	if bound == 0 {
		bound = 10 * extent
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	members := make([]sim.Member, mc.Trials)
	for i := range members {
		s := x0.Clone()
		for b := range s.Pos {
			s.Pos[b] = r3.Add(s.Pos[b], r3.Vec{
				X: (rng.Float64()*2 - 1) * mc.Perturbation,
				Y: (rng.Float64()*2 - 1) * mc.Perturbation,
				Z: (rng.Float64()*2 - 1) * mc.Perturbation,
			})
		}
		members[i] = sim.Member{Bodies: bodies, X0: s, Config: base.NBodyConfig()}
	}

	runs, err := r.ensemble.Run(ctx, members)
	if err != nil {
		return nil, err
	}
	trials := make([]Trial, len(runs))
	for i, res := range runs {
		final := res.Final()
		escaped := false
		for _, p := range final.Pos {
			if r3.Norm(r3.Sub(p, centre)) > bound {
				escaped = true
			}
		}
		trials[i] = Trial{
			Result:  summarise(float64(i), res),
			X0:      members[i].X0,
			Final:   final,
			Escaped: escaped,
		}
	}
	return trials, nil
}

// Stats counts trials that stayed bound without colliding, collided, or
// escaped.
func Stats(trials []Trial) (bound, collided, escaped int) {
	for _, t := range trials {
		switch {
		case t.StoppedEarly:
			collided++
		case t.Escaped:
			escaped++
		default:
			bound++
		}
	}
	return bound, collided, escaped
}

func spread(pos []r3.Vec) (centre r3.Vec, extent float64) {
	for _, p := range pos {
		centre = r3.Add(centre, p)
	}
	centre = r3.Scale(1/float64(len(pos)), centre)
	for _, p := range pos {
		extent = math.Max(extent, r3.Norm(r3.Sub(p, centre)))
	}
	return centre, extent
}
