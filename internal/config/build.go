package config

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// NBody returns the bodies and their initial state.
func (c *Config) NBody() ([]physics.Body, dynamo.State) {
	bodies := make([]physics.Body, len(c.Bodies))
	x0 := dynamo.NewState(len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = physics.Body{Mass: b.Mass, Radius: b.Radius, Color: b.Color}
		x0.Pos[i] = r3.Vec{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]}
		x0.Vel[i] = r3.Vec{X: b.Velocity[0], Y: b.Velocity[1], Z: b.Velocity[2]}
	}
	return bodies, x0
}

func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{Dt: c.Dt, Iterations: c.Iterations, ValidateState: true}
}

func (c *Config) NBodyConfig() sim.NBodyConfig {
	return sim.NBodyConfig{
		Config:          c.RunConfig(),
		Integrator:      c.Integrator,
		Workers:         c.Workers,
		AllowCollisions: c.AllowCollisions,
		EscapeRadius:    c.EscapeRadius,
	}
}

func (c *Config) HeatConfig() sim.HeatConfig {
	h := c.Heat
	cfg := sim.HeatConfig{
		Plate:          physics.Plate{Width: h.Width, Height: h.Height, Nodes: h.Nodes},
		Alpha:          h.Alpha,
		Dt:             h.Dt,
		Iterations:     c.Iterations,
		Initial:        h.InitialTemp,
		Boundary:       h.Boundary.Build(),
		CheckStability: h.CheckStability,
		Workers:        c.Workers,
	}
	if h.Source.Enabled {
		cfg.Source = &physics.HeatSource{
			Power:    h.Source.Power,
			Radius:   h.Source.Radius,
			XPercent: h.Source.XPercent,
			YPercent: h.Source.YPercent,
		}
	}
	return cfg
}

// Build returns the boundary for Kind. An empty kind is uniform.
func (b BoundaryConfig) Build() physics.Boundary {
	switch b.Kind {
	case BoundaryEdges:
		return physics.EdgeBoundary{Left: b.Left, Right: b.Right, Bottom: b.Bottom, Top: b.Top}
	case BoundaryCorners:
		return physics.CornerBoundary{BottomLeft: b.BottomLeft, BottomRight: b.BottomRight, TopLeft: b.TopLeft, TopRight: b.TopRight}
	}
	return physics.UniformBoundary{Temp: b.Temp}
}
