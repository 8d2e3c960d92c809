package config

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
)

// Validate checks the settings used by the configured model.
func (c *Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d: %w", c.Iterations, dynamo.ErrParameterBounds)
	}
	switch c.Model {
	case "nbody":
		return c.validateNBody()
	case "heat":
		return c.Heat.validate()
	case "pendulum":
		if err := c.validateDt(); err != nil {
			return err
		}
		if c.Pendulum.Length <= 0 {
			return fmt.Errorf("pendulum length must be positive, got %g: %w", c.Pendulum.Length, dynamo.ErrParameterBounds)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownModel, c.Model)
}

func (c *Config) validateDt() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", c.Dt, dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) validateNBody() error {
	if err := c.validateDt(); err != nil {
		return err
	}
	if len(c.Bodies) < 2 {
		return fmt.Errorf("got %d bodies: %w", len(c.Bodies), dynamo.ErrTooFewBodies)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d: mass must be positive, got %g: %w", i+1, b.Mass, dynamo.ErrParameterBounds)
		}
		if b.Radius < 0 {
			return fmt.Errorf("body %d: radius must not be negative, got %g: %w", i+1, b.Radius, dynamo.ErrParameterBounds)
		}
	}
	return nil
}

func (h *HeatConfig) validate() error {
	if h.Nodes < 3 {
		return fmt.Errorf("nodes must be at least 3, got %d: %w", h.Nodes, dynamo.ErrParameterBounds)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("plate size must be positive, got %gx%g: %w", h.Width, h.Height, dynamo.ErrParameterBounds)
	}
	if h.Alpha < 0 {
		return fmt.Errorf("alpha must not be negative, got %g: %w", h.Alpha, dynamo.ErrParameterBounds)
	}
	if h.Dt < 0 {
		return fmt.Errorf("heat dt must not be negative, got %g: %w", h.Dt, dynamo.ErrParameterBounds)
	}
	switch h.Boundary.Kind {
	case "", BoundaryUniform, BoundaryEdges, BoundaryCorners:
	default:
		return fmt.Errorf("unknown boundary kind %q: %w", h.Boundary.Kind, dynamo.ErrParameterBounds)
	}
	if s := h.Source; s.Enabled {
		if s.Power <= 0 || s.Radius <= 0 {
			return fmt.Errorf("source power and radius must be positive: %w", dynamo.ErrParameterBounds)
		}
		if s.XPercent < 0 || s.XPercent > 100 || s.YPercent < 0 || s.YPercent > 100 {
			return fmt.Errorf("source position must be within 0-100%%: %w", dynamo.ErrParameterBounds)
		}
	}
	return nil
}
