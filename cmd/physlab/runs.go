package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

const maxPlots = 6

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir())
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDT\tINTEG\tHALT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%.4g\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Iterations,
			run.Dt,
			run.Integrator,
			run.HaltReason,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir())
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)

	type series struct {
		caption string
		data    []float64
	}
	var plots []series

	switch meta.Model {
	case "heat":
		h, err := st.LoadHeat(runID)
		if err != nil {
			return err
		}
		mean := make([]float64, len(h.Frames))
		hottest := make([]float64, len(h.Frames))
		for i, T := range h.Frames {
			mean[i] = stat.Mean(T.RawMatrix().Data, nil)
			hottest[i] = mat.Max(T)
		}
		plots = append(plots, series{"mean temperature (K)", mean}, series{"max temperature (K)", hottest})

	case "pendulum":
		tr, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		theta := make([]float64, len(tr.States))
		omega := make([]float64, len(tr.States))
		for i, s := range tr.States {
			theta[i], omega[i] = s.Pos[0].X, s.Vel[0].X
		}
		plots = append(plots, series{"theta (angle)", theta}, series{"omega (angular velocity)", omega})

	default:
		tr, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		n := min(tr.States[0].Len(), maxPlots)
		for b := 0; b < n; b++ {
			dist := make([]float64, len(tr.States))
			for i, s := range tr.States {
				dist[i] = r3.Norm(s.Pos[b])
			}
			plots = append(plots, series{fmt.Sprintf("body %d distance from origin (m)", b+1), dist})
		}
	}

	fmt.Printf("samples: %d\n\n", len(plots[0].data))
	if len(plots[0].data) < 2 {
		return fmt.Errorf("no data to plot")
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir())

	w, done, err := output()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("frames") {
		err = st.ExportJSON(w, runID)
	} else {
		err = exportFrames(w, st, runID)
	}
	if cerr := done(); err == nil {
		err = cerr
	}
	return err
}

func exportFrames(w io.Writer, st *storage.Store, runID string) error {
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Model == "heat" {
		h, err := st.LoadHeat(runID)
		if err != nil {
			return err
		}
		plate := physics.Plate{Width: meta.Width, Height: meta.Height, Nodes: meta.Nodes}
		return export.WriteJSON(w, export.HeatFrames(h, plate, view))
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return export.WriteJSON(w, export.NBodyFrames(tr, view))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir())
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var svg string
	if meta.Model == "heat" {
		h, err := st.LoadHeat(runID)
		if err != nil {
			return err
		}
		svg = export.HeatmapSVG(h.Final(), 600, 600)
	} else {
		tr, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		svg = export.TrajectorySVG(tr, meta.Colors, 800, 600)
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few states to draw", runID)
	}

	w, done, err := output()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg+"\n")
	if cerr := done(); err == nil {
		err = cerr
	}
	if err == nil && outFile != "" {
		log.Info().Str("file", outFile).Msg("svg written")
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	models := config.Models()
	if len(args) > 0 {
		models = args
	}
	for _, model := range models {
		presets := config.ListPresets(model)
		if len(presets) == 0 {
			return fmt.Errorf("no presets for model: %s", model)
		}
		fmt.Printf("%s:\n", model)
		fmt.Printf("  %s\n", strings.Join(presets, "\n  "))
	}
	return nil
}
