package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/viz"
	"github.com/spf13/cobra"
)

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]
	cfg, err := loadRunConfig(cmd, model)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var scene viz.Scene
	switch model {
	case "nbody":
		bodies, x0 := cfg.NBody()
		res, err := sim.NewNBodyRunner(withLogger()).Run(ctx, bodies, x0, cfg.NBodyConfig())
		if res == nil {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Msg("replaying partial run")
		}
		scene = viz.NewNBodyScene(&res.Trajectory, physics.Masses(bodies))
	case "heat":
		h, err := sim.NewHeatRunner(withLogger()).Run(ctx, cfg.HeatConfig())
		if h == nil {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Msg("replaying partial run")
		}
		scene = viz.NewHeatScene(h)
	default:
		return fmt.Errorf("live view supports nbody and heat, got %s", model)
	}

	stop()
	return viz.Run(scene)
}
