package game

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/genome"
	"github.com/pthm-cable/ses/systems"
)

// SeedSpec describes the population placed by a reset.
type SeedSpec struct {
	GrassAmount    int
	Herbivores     int
	Carnivores     int
	Satiety        int
	HerbivoreColor genome.Genome
	CarnivoreColor genome.Genome
}

// SeedSpecFrom converts the seed section of the config.
func SeedSpecFrom(c config.SeedConfig) SeedSpec {
	return SeedSpec{
		GrassAmount:    c.GrassAmount,
		Herbivores:     c.Herbivores,
		Carnivores:     c.Carnivores,
		Satiety:        c.Satiety,
		HerbivoreColor: c.HerbivoreColor,
		CarnivoreColor: c.CarnivoreColor,
	}
}

// State is the complete simulation world: the grass grid, both
// populations and the background color prey try to blend into.
type State struct {
	Width, Height int
	Grass         *systems.GrassField
	Herbivores    *systems.Population
	Carnivores    *systems.Population
	Background    genome.Genome
}

// NewState allocates an empty world. Call Seed to populate it.
func NewState(width, height int, background genome.Genome) (*State, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid world size %dx%d", width, height)
	}
	return &State{
		Width:      width,
		Height:     height,
		Grass:      systems.NewGrassField(width, height, 0),
		Herbivores: systems.NewPopulation(components.KindHerbivore, systems.MaxPopulation),
		Carnivores: systems.NewPopulation(components.KindCarnivore, systems.MaxPopulation),
		Background: background,
	}, nil
}

// Seed replaces the whole world. Each species starts on one shared random
// cell. Must only be called between ticks.
func (s *State) Seed(rng *rand.Rand, spec SeedSpec) {
	s.Grass = systems.NewGrassField(s.Width, s.Height, spec.GrassAmount)

	x, y := rng.Intn(s.Width), rng.Intn(s.Height)
	s.Herbivores.Reset(spec.Herbivores, x, y, spec.HerbivoreColor, spec.Satiety)

	x, y = rng.Intn(s.Width), rng.Intn(s.Height)
	s.Carnivores.Reset(spec.Carnivores, x, y, spec.CarnivoreColor, spec.Satiety)
}

// Population returns the population of the given species.
func (s *State) Population(kind components.Kind) *systems.Population {
	if kind == components.KindCarnivore {
		return s.Carnivores
	}
	return s.Herbivores
}
