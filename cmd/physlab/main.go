package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	log        zerolog.Logger

	// run and live
	preset     string
	dt         float64
	iterations int
	workers    int
	integrator string
	bodiesFile string
	allowHits  bool
	escape     float64
	saveConfig string

	// export
	outFile string
	view    int

	// compare
	compareModel  string
	comparePreset string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "physlab",
		Short:         "n-body gravity and heat diffusion lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initSettings()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "yaml file with settings and run parameters")
	rootCmd.PersistentFlags().String("data", ".physlab", "data directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	runCmd := &cobra.Command{
		Use:       "run [nbody|heat|pendulum]",
		Short:     "run a simulation and save it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"nbody", "heat", "pendulum"},
		RunE:      runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().IntVar(&view, "frames", 0, "emit about this many plot frames instead of raw rows")
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrators...]",
		Short: "compare energy drift across integrators",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().StringVar(&compareModel, "model", "nbody", "model (nbody or pendulum)")
	compareCmd.Flags().StringVar(&comparePreset, "preset", "binary", "preset to run")

	liveCmd := &cobra.Command{
		Use:       "live [nbody|heat]",
		Short:     "run a simulation and replay it in the terminal",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"nbody", "heat"},
		RunE:      runLive,
	}
	addRunFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run an nbody config across a range of dt, mass or velocity scales",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dt", "swept setting (dt, mass, velocity)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", 0, "runs at once (0 means all)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "rerun an nbody config from randomly perturbed positions",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&mcTrials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&mcPerturb, "perturb", 1, "maximum position offset per axis (m)")
	monteCarloCmd.Flags().Int64Var(&mcSeed, "seed", 1, "random seed")
	monteCarloCmd.Flags().IntVar(&sweepParallel, "parallel", 0, "runs at once (0 means all)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, compareCmd, liveCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "number of steps")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel workers for forces and the heat stencil (0 uses every CPU)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, leapfrog, rk4, verlet)")
	cmd.Flags().StringVar(&bodiesFile, "bodies", "", "csv body table (nbody)")
	cmd.Flags().BoolVar(&allowHits, "allow-collisions", false, "keep integrating through collisions (nbody)")
	cmd.Flags().Float64Var(&escape, "escape-radius", 0, "report the share of states with every body this close to the origin (nbody)")
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective run config to this yaml file")
}

// initSettings reads the optional settings file and PHYSLAB_* environment,
// then builds the logger.
func initSettings() error {
	viper.SetEnvPrefix("PHYSLAB")
	viper.AutomaticEnv()
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", configFile, err)
		}
	}

	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	if f := viper.ConfigFileUsed(); f != "" {
		log.Debug().Str("file", f).Msg("using config file")
	}
	return nil
}

func dataDir() string { return viper.GetString("data") }

func withLogger() sim.Option { return sim.WithLogger(log) }
