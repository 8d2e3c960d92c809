package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/spf13/cobra"
)

// loadRunConfig layers the run settings: defaults or a preset, then the
// --config file, then a body table, then explicit flags.
func loadRunConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(model, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.Model = model

	if bodiesFile != "" {
		f, err := os.Open(bodiesFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		bodies, err := config.ParseBodyTable(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bodiesFile, err)
		}
		cfg.Bodies = bodies
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		if model == "heat" {
			cfg.Heat.Dt = dt
		} else {
			cfg.Dt = dt
		}
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("allow-collisions") {
		cfg.AllowCollisions = allowHits
	}
	if flags.Changed("escape-radius") {
		cfg.EscapeRadius = escape
	}
	if cfg.Workers == 0 {
		cfg.Workers = dynamo.DefaultWorkers()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return nil, err
		}
		log.Info().Str("file", saveConfig).Msg("run config saved")
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]
	cfg, err := loadRunConfig(cmd, model)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir())
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Model:      model,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Iterations: cfg.Iterations,
	}

	var runID string
	switch model {
	case "nbody":
		bodies, x0 := cfg.NBody()
		res, err := sim.NewNBodyRunner(withLogger()).Run(ctx, bodies, x0, cfg.NBodyConfig())
		if err != nil && res == nil {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Int("steps", res.StepsTaken).Msg("saving partial run")
		}
		meta.Halted, meta.HaltReason = res.Halted, res.HaltReason
		meta.Metrics = res.Metrics
		for _, b := range bodies {
			meta.Colors = append(meta.Colors, b.Color)
		}
		if runID, err = st.SaveTrajectory(meta, res.Trajectory); err != nil {
			return err
		}
		fmt.Printf("steps: %d/%d\n", res.StepsTaken, cfg.Iterations)
		if res.StoppedEarly {
			fmt.Printf("stopped: %s\n", res.HaltReason)
		}
		fmt.Printf("energy drift: %.3e\n", res.EnergyDrift)
		fmt.Printf("min separation: %.4g m\n", res.MinSeparation)
		if v, ok := res.Metrics["stability"]; ok {
			fmt.Printf("inside escape radius: %.1f%%\n", 100*v)
		}

	case "heat":
		hc := cfg.HeatConfig()
		h, err := sim.NewHeatRunner(withLogger()).Run(ctx, hc)
		if err != nil && h == nil {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Int("frames", len(h.Frames)).Msg("saving partial run")
		}
		meta.Integrator = ""
		meta.Dt = h.Dt
		meta.Width, meta.Height = hc.Plate.Width, hc.Plate.Height
		if runID, err = st.SaveHeat(meta, h); err != nil {
			return err
		}
		hx, hy := hc.Plate.Spacing()
		fmt.Printf("frames: %d (dt %.4g, stable below %.4g)\n", len(h.Frames), h.Dt, physics.MaxStableDt(hc.Alpha, hx, hy))

	case "pendulum":
		p := cfg.Pendulum
		res, err := sim.RunPendulum(ctx, p.Length, p.Theta, p.Omega, cfg.Integrator, cfg.RunConfig(), withLogger())
		if err != nil && res == nil {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Int("steps", res.StepsTaken).Msg("saving partial run")
		}
		meta.Metrics = res.Metrics
		if runID, err = st.SaveTrajectory(meta, res.Trajectory); err != nil {
			return err
		}
		theta := make([]float64, len(res.States))
		for i, s := range res.States {
			theta[i] = s.Pos[0].X
		}
		fmt.Printf("steps: %d\n", res.StepsTaken)
		fmt.Printf("energy drift: %.3e\n", res.Metrics["energy_drift"])
		if period := analysis.DominantPeriod(theta, cfg.Dt); period > 0 {
			fmt.Printf("period: %.4g s\n", period)
		}

	default:
		return errors.New("unknown model: " + model)
	}

	fmt.Printf("saved: %s\n", runID)
	return nil
}
