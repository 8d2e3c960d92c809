package sim

import (
	"github.com/rs/zerolog"
	"github.com/san-kum/physlab/internal/dynamo"
)

// Trajectory is the append-only sequence of states of one run. Index 0 is
// the initial state.
type Trajectory struct {
	States []dynamo.State
	Times  []float64
}

func (tr *Trajectory) append(s dynamo.State, t float64) {
	tr.States = append(tr.States, s)
	tr.Times = append(tr.Times, t)
}

// Final returns the last recorded state.
func (tr *Trajectory) Final() dynamo.State {
	return tr.States[len(tr.States)-1]
}

type Result struct {
	Trajectory
	StepsTaken int
	Halted     bool
	HaltReason string
	Metrics    map[string]float64
	Errors     []error
}

// Halter is consulted with the latest state before every step. Returning
// true ends the run without error.
type Halter interface {
	Halt(step int, t float64, s dynamo.State) (reason string, halt bool)
}

type HalterFunc func(step int, t float64, s dynamo.State) (string, bool)

func (f HalterFunc) Halt(step int, t float64, s dynamo.State) (string, bool) {
	return f(step, t, s)
}

type options struct {
	log zerolog.Logger
}

type Option func(*options)

// WithLogger routes run events to log. Runs are silent by default.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
