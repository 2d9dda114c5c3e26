package main

import (
	"math"

	"github.com/pthm-cable/ses/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // rounded before it is applied
	get     func(*config.Simulation) float64
	set     func(*config.Simulation, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "herbivore_procreate", Path: "simulation.herbivore.procreate_chance", Min: 0.05, Max: 1,
				get: func(s *config.Simulation) float64 { return s.Herbivore.ProcreateChance },
				set: func(s *config.Simulation, v float64) { s.Herbivore.ProcreateChance = v },
			},
			{
				Name: "carnivore_procreate", Path: "simulation.carnivore.procreate_chance", Min: 0.05, Max: 1,
				get: func(s *config.Simulation) float64 { return s.Carnivore.ProcreateChance },
				set: func(s *config.Simulation, v float64) { s.Carnivore.ProcreateChance = v },
			},
			{
				Name: "herbivore_mutation", Path: "simulation.herbivore.mutation_chance", Min: 0, Max: 1,
				get: func(s *config.Simulation) float64 { return s.Herbivore.MutationChance },
				set: func(s *config.Simulation, v float64) { s.Herbivore.MutationChance = v },
			},
			{
				Name: "carnivore_mutation", Path: "simulation.carnivore.mutation_chance", Min: 0, Max: 1,
				get: func(s *config.Simulation) float64 { return s.Carnivore.MutationChance },
				set: func(s *config.Simulation, v float64) { s.Carnivore.MutationChance = v },
			},
			{
				Name: "herbivore_optimal", Path: "simulation.herbivore.optimal_population", Min: 1, Max: 16, Integer: true,
				get: func(s *config.Simulation) float64 { return float64(s.Herbivore.OptimalPopulation) },
				set: func(s *config.Simulation, v float64) { s.Herbivore.OptimalPopulation = int(v) },
			},
			{
				Name: "carnivore_optimal", Path: "simulation.carnivore.optimal_population", Min: 1, Max: 16, Integer: true,
				get: func(s *config.Simulation) float64 { return float64(s.Carnivore.OptimalPopulation) },
				set: func(s *config.Simulation, v float64) { s.Carnivore.OptimalPopulation = int(v) },
			},
			{
				Name: "meat_points", Path: "simulation.meat_satiety_points", Min: 2, Max: 24, Integer: true,
				get: func(s *config.Simulation) float64 { return float64(s.MeatSatietyPoints) },
				set: func(s *config.Simulation, v float64) { s.MeatSatietyPoints = int(v) },
			},
			{
				Name: "grass_points", Path: "simulation.grass_satiety_points", Min: 1, Max: 12, Integer: true,
				get: func(s *config.Simulation) float64 { return float64(s.GrassSatietyPoints) },
				set: func(s *config.Simulation, v float64) {
					// Grass regrows by one meal per tick
					s.GrassSatietyPoints = int(v)
					s.GrassGrowthRate = int(v)
				},
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(&cfg.Simulation, v)
	}
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(&cfg.Simulation)
	}
	return v
}
