package sim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/san-kum/physlab/internal/dynamo"
)

// Simulator repeatedly applies one integrator to a solver with fixed
// params.
type Simulator[P any] struct {
	solver     dynamo.Solver[P]
	integrator dynamo.Integrator[P]
	params     P
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	halters    []Halter
	log        zerolog.Logger
}

func New[P any](solver dynamo.Solver[P], integrator dynamo.Integrator[P], params P, opts ...Option) *Simulator[P] {
	o := buildOptions(opts)
	return &Simulator[P]{
		solver:     solver,
		integrator: integrator,
		params:     params,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		log:        o.log,
	}
}

func (s *Simulator[P]) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator[P]) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator[P]) AddHalter(h Halter)            { s.halters = append(s.halters, h) }

// Run integrates from x0 for cfg.Iterations steps. A halter can end the run
// early. On cancellation the trajectory so far is returned with ctx.Err().
// A non-finite state stops the run with a *dynamo.SimError when
// cfg.ValidateState is set.
func (s *Simulator[P]) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Trajectory: Trajectory{
			States: make([]dynamo.State, 0, cfg.Iterations+1),
			Times:  make([]float64, 0, cfg.Iterations+1),
		},
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	result.append(x, t)
	s.notify(0, t, x)

	s.log.Debug().Int("bodies", x.Len()).Int("iterations", cfg.Iterations).Float64("dt", cfg.Dt).Msg("run started")

	for i := 1; i <= cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if reason, ok := s.halt(i-1, t, x); ok {
			result.Halted = true
			result.HaltReason = reason
			s.log.Info().Int("step", i-1).Float64("t", t).Str("reason", reason).Msg("run halted")
			break
		}

		newX := s.integrator.Step(t, cfg.Dt, x, s.solver, s.params)
		tNext := float64(i) * cfg.Dt

		if cfg.ValidateState && !newX.IsValid() {
			err := &dynamo.SimError{Step: i, Time: tNext, Message: "invalid state (NaN/Inf)", Err: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			s.log.Warn().Err(err).Msg("run aborted")
			s.finish(result)
			return result, err
		}

		x, t = newX, tNext
		result.StepsTaken++
		result.append(x, t)
		s.notify(i, t, x)
	}

	s.finish(result)
	s.log.Debug().Int("steps", result.StepsTaken).Bool("halted", result.Halted).Msg("run finished")
	return result, nil
}

func (s *Simulator[P]) halt(step int, t float64, x dynamo.State) (string, bool) {
	for _, h := range s.halters {
		if reason, ok := h.Halt(step, t, x); ok {
			return reason, true
		}
	}
	return "", false
}

func (s *Simulator[P]) notify(step int, t float64, x dynamo.State) {
	for _, m := range s.metrics {
		m.Observe(step, t, x)
	}
	for _, obs := range s.observers {
		obs.OnStep(step, t, x)
	}
}

func (s *Simulator[P]) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if cfg.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d: %w", cfg.Iterations, dynamo.ErrParameterBounds)
	}
	return nil
}
