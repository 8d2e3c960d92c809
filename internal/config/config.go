package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 10.0
	DefaultIterations  = 1000
	DefaultMass        = 1e13
	DefaultRadius      = 1.0
	DefaultNodes       = 100
	DefaultPlateSize   = 0.1
	DefaultAlpha       = 1.11e-4
	DefaultInitialTemp = 300.0
	DefaultBoundary    = 273.0
	DefaultLength      = 1.0
)

// Boundary kinds.
const (
	BoundaryUniform = "uniform"
	BoundaryEdges   = "edges"
	BoundaryCorners = "corners"
)

type Config struct {
	Model           string         `yaml:"model"`
	Integrator      string         `yaml:"integrator"`
	Dt              float64        `yaml:"dt"`
	Iterations      int            `yaml:"iterations"`
	Workers         int            `yaml:"workers"`
	AllowCollisions bool           `yaml:"allow_collisions"`
	EscapeRadius    float64        `yaml:"escape_radius,omitempty"`
	Bodies          []BodyConfig   `yaml:"bodies,omitempty"`
	Heat            HeatConfig     `yaml:"heat"`
	Pendulum        PendulumConfig `yaml:"pendulum"`
}

type BodyConfig struct {
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
	Color    string     `yaml:"color,omitempty"`
}

type HeatConfig struct {
	Nodes       int     `yaml:"nodes"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Alpha       float64 `yaml:"alpha"`
	InitialTemp float64 `yaml:"initial_temp"`
	// Dt of zero uses half the product of the node spacings.
	Dt             float64        `yaml:"dt"`
	Boundary       BoundaryConfig `yaml:"boundary"`
	Source         SourceConfig   `yaml:"source"`
	CheckStability bool           `yaml:"check_stability"`
}

type BoundaryConfig struct {
	Kind string  `yaml:"kind"`
	Temp float64 `yaml:"temp,omitempty"`

	Left   float64 `yaml:"left,omitempty"`
	Right  float64 `yaml:"right,omitempty"`
	Bottom float64 `yaml:"bottom,omitempty"`
	Top    float64 `yaml:"top,omitempty"`

	BottomLeft  float64 `yaml:"bottom_left,omitempty"`
	BottomRight float64 `yaml:"bottom_right,omitempty"`
	TopLeft     float64 `yaml:"top_left,omitempty"`
	TopRight    float64 `yaml:"top_right,omitempty"`
}

type SourceConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Power    float64 `yaml:"power"`
	Radius   float64 `yaml:"radius"`
	XPercent float64 `yaml:"x_percent"`
	YPercent float64 `yaml:"y_percent"`
}

type PendulumConfig struct {
	Length float64 `yaml:"length"`
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
}

func DefaultBodies() []BodyConfig {
	return []BodyConfig{
		{Mass: DefaultMass, Radius: DefaultRadius, Position: [3]float64{100, 0, 0}, Velocity: [3]float64{0, 2, 0}, Color: "#e06c75"},
		{Mass: DefaultMass, Radius: DefaultRadius, Position: [3]float64{0, 100, 0}, Velocity: [3]float64{0, 0, 2}, Color: "#61afef"},
		{Mass: DefaultMass, Radius: DefaultRadius, Position: [3]float64{0, 0, 100}, Velocity: [3]float64{2, 0, 0}, Color: "#98c379"},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "nbody",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Iterations: DefaultIterations,
		Workers:    1,
		Bodies:     DefaultBodies(),
		Heat: HeatConfig{
			Nodes:       DefaultNodes,
			Width:       DefaultPlateSize,
			Height:      DefaultPlateSize,
			Alpha:       DefaultAlpha,
			InitialTemp: DefaultInitialTemp,
			Boundary:    BoundaryConfig{Kind: BoundaryUniform, Temp: DefaultBoundary},
			Source:      SourceConfig{Power: 1, Radius: 1e-2, XPercent: 50, YPercent: 50},
		},
		Pendulum: PendulumConfig{Length: DefaultLength, Theta: 0.5},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file on cfg. Keys the file does not set keep their
// value in cfg. A file that lists bodies replaces them instead of merging by
// index.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	bodies := cfg.Bodies
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Bodies = bodies
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Bodies == nil {
		cfg.Bodies = bodies
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &out
}

var errUnknownModel = errors.New("unknown model")
