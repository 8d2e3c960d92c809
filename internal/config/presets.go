package config

import "sort"

const binarySpeed = 1.826787

var Presets = map[string]map[string]*Config{
	"nbody": {
		"three_body": {
			Model: "nbody", Integrator: "rk4", Dt: 10, Iterations: 1000, Workers: 1,
			Bodies: DefaultBodies(),
		},
		"binary": {
			Model: "nbody", Integrator: "rk4", Dt: 1, Iterations: 2000, Workers: 1,
			Bodies: []BodyConfig{
				{Mass: 1e13, Radius: 1, Position: [3]float64{-50, 0, 0}, Velocity: [3]float64{0, -binarySpeed, 0}, Color: "#e5c07b"},
				{Mass: 1e13, Radius: 1, Position: [3]float64{50, 0, 0}, Velocity: [3]float64{0, binarySpeed, 0}, Color: "#c678dd"},
			},
		},
		"collide": {
			Model: "nbody", Integrator: "rk4", Dt: 1, Iterations: 1000, Workers: 1,
			Bodies: []BodyConfig{
				{Mass: 1e13, Radius: 5, Position: [3]float64{-50, 0, 0}, Velocity: [3]float64{1, 0, 0}, Color: "#e06c75"},
				{Mass: 1e13, Radius: 5, Position: [3]float64{50, 0, 0}, Velocity: [3]float64{-1, 0, 0}, Color: "#61afef"},
			},
		},
	},
	"heat": {
		"uniform": {
			Model: "heat", Iterations: 200, Workers: 1,
			Heat: heatPreset(BoundaryConfig{Kind: BoundaryUniform, Temp: 273}, false),
		},
		"edges": {
			Model: "heat", Iterations: 200, Workers: 1,
			Heat: heatPreset(BoundaryConfig{Kind: BoundaryEdges, Left: 400, Right: 273, Bottom: 300, Top: 350}, false),
		},
		"corners": {
			Model: "heat", Iterations: 200, Workers: 1,
			Heat: heatPreset(BoundaryConfig{Kind: BoundaryCorners, BottomLeft: 273, BottomRight: 350, TopLeft: 400, TopRight: 500}, false),
		},
		"source": {
			Model: "heat", Iterations: 200, Workers: 1,
			Heat: heatPreset(BoundaryConfig{Kind: BoundaryUniform, Temp: 273}, true),
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Integrator: "rk4", Dt: 0.01, Iterations: 2000,
			Pendulum: PendulumConfig{Length: 1, Theta: 0.2},
		},
		"large": {
			Model: "pendulum", Integrator: "rk4", Dt: 0.01, Iterations: 2000,
			Pendulum: PendulumConfig{Length: 1, Theta: 2.5},
		},
	},
}

func heatPreset(b BoundaryConfig, source bool) HeatConfig {
	return HeatConfig{
		Nodes:       41,
		Width:       0.1,
		Height:      0.1,
		Alpha:       0.6,
		InitialTemp: 300,
		Boundary:    b,
		Source:      SourceConfig{Enabled: source, Power: 1, Radius: 1e-2, XPercent: 50, YPercent: 50},
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Models() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
