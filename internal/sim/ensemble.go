package sim

import (
	"context"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"golang.org/x/sync/errgroup"
)

// Member is one independent run of an ensemble.
type Member struct {
	Bodies []physics.Body
	X0     dynamo.State
	Config NBodyConfig
}

// Ensemble runs independent N-body simulations concurrently.
type Ensemble struct {
	runner *NBodyRunner
	limit  int
}

// NewEnsemble runs at most limit members at once. A limit of zero or less
// means no limit.
func NewEnsemble(runner *NBodyRunner, limit int) *Ensemble {
	return &Ensemble{runner: runner, limit: limit}
}

// Run returns results in member order. The first failing member cancels the
// others.
func (e *Ensemble) Run(ctx context.Context, members []Member) ([]*NBodyResult, error) {
	results := make([]*NBodyResult, len(members))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, m := range members {
		g.Go(func() error {
			res, err := e.runner.Run(ctx, m.Bodies, m.X0, m.Config)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
