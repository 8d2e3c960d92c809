package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/spf13/cobra"
)

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(compareModel, comparePreset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", comparePreset, config.ListPresets(compareModel))
	}

	fmt.Printf("comparing integrators for %s/%s (dt=%g, iterations=%d)\n\n", compareModel, comparePreset, cfg.Dt, cfg.Iterations)
	fmt.Printf("%-12s  %-8s  %-12s  %-12s\n", "integrator", "steps", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	ctx := context.Background()
	for _, name := range args {
		cfg.Integrator = name

		start := time.Now()
		var (
			steps int
			drift float64
			err   error
		)
		switch compareModel {
		case "nbody":
			bodies, x0 := cfg.NBody()
			var res *sim.NBodyResult
			res, err = sim.NewNBodyRunner(withLogger()).Run(ctx, bodies, x0, cfg.NBodyConfig())
			if res != nil {
				steps, drift = res.StepsTaken, res.EnergyDrift
			}
		case "pendulum":
			p := cfg.Pendulum
			var res *sim.Result
			res, err = sim.RunPendulum(ctx, p.Length, p.Theta, p.Omega, name, cfg.RunConfig(), withLogger())
			if res != nil {
				steps, drift = res.StepsTaken, res.Metrics["energy_drift"]
			}
		default:
			return fmt.Errorf("compare supports nbody and pendulum, got %s", compareModel)
		}
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}
		fmt.Printf("%-12s  %8d  %12.2e  %12.2f\n", name, steps, drift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}
