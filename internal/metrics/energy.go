package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// EnergyFunc computes the conserved energy of a state.
type EnergyFunc func(s dynamo.State) float64

// Energy averages the energy over every observed step.
type Energy struct {
	name        string
	energy      EnergyFunc
	samples     int
	totalEnergy float64
}

func NewEnergy(energy EnergyFunc) *Energy {
	return &Energy{
		name:   "energy",
		energy: energy,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(step int, t float64, s dynamo.State) {
	e.totalEnergy += e.energy(s)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the energy of the
// first observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	energy        EnergyFunc
}

func NewEnergyDrift(energy EnergyFunc) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: energy,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(step int, t float64, s dynamo.State) {
	energy := e.energy(s)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if usable(e.initialEnergy) {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Final is the relative drift of the last observed state.
func (e *EnergyDrift) Final() float64 {
	if !usable(e.initialEnergy) {
		return 0
	}
	return math.Abs(e.currentEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// usable reports whether a drift can be measured against e0. Coincident
// bodies start at an infinite potential energy.
func usable(e0 float64) bool {
	return e0 != 0 && !math.IsInf(e0, 0) && !math.IsNaN(e0)
}
