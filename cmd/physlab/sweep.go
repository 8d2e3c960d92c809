package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/physlab/internal/sweep"
	"github.com/spf13/cobra"
)

var (
	sweepParam    string
	sweepMin      float64
	sweepMax      float64
	sweepSteps    int
	sweepParallel int

	mcTrials  int
	mcPerturb float64
	mcSeed    int64
)

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, "nbody")
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := sweep.ParameterSweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, err := sweep.NewRunner(sweepParallel, withLogger()).Sweep(ctx, cfg, p)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tDRIFT\tMIN_SEP\tHALT\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.2e\t%.4g\t%s\n", r.Value, r.Steps, r.EnergyDrift, r.MinSeparation, r.HaltReason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(results); ok {
		fmt.Printf("\nbest %s: %g (drift %.2e)\n", sweepParam, best.Value, best.EnergyDrift)
	} else {
		fmt.Println("\nevery run collided")
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, "nbody")
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mc := sweep.MonteCarlo{Trials: mcTrials, Perturbation: mcPerturb, Seed: mcSeed}
	trials, err := sweep.NewRunner(sweepParallel, withLogger()).MonteCarlo(ctx, cfg, mc)
	if err != nil {
		return err
	}
	bound, collided, escaped := sweep.Stats(trials)
	fmt.Printf("trials: %d (perturbation %g m, seed %d)\n", len(trials), mcPerturb, mcSeed)
	fmt.Printf("bound: %d  collided: %d  escaped: %d\n", bound, collided, escaped)
	return nil
}
