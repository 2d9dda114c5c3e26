package systems

import (
	"math/rand"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/genome"
)

// BreedOutcome describes a reproduction attempt.
type BreedOutcome uint8

const (
	BreedNone    BreedOutcome = iota // not eligible, no mate, or chance failed
	BreedBorn                        // offspring placed
	BreedDropped                     // offspring lost to a full population
)

// CanBreed reports whether an agent with the given number of same-cell
// neighbors and satiety may try to reproduce.
func CanBreed(neighbors, satiety int, species config.SpeciesConfig, params config.Simulation) bool {
	return neighbors < species.OptimalPopulation+2 && satiety >= params.SatietyLimit/2
}

// Breed pairs the agent with a random mate from mates with probability
// ProcreateChance. The child is placed in the parent's cell with a
// crossover genome and GrassSatietyPoints satiety.
func Breed(rng *rand.Rand, pop *Population, parent *components.Agent, mates []int, species config.SpeciesConfig, params config.Simulation) (BreedOutcome, int) {
	if len(mates) == 0 || rng.Float64() >= species.ProcreateChance {
		return BreedNone, NoAgent
	}

	mate := pop.Agent(mates[rng.Intn(len(mates))])
	child := genome.Breed(parent.Genome, mate.Genome, rng)

	id, err := pop.Spawn(rng, parent.X, parent.Y, child, params.GrassSatietyPoints, species.MutationChance)
	if err != nil {
		// Only ErrCapacityExceeded; the birth is dropped.
		return BreedDropped, NoAgent
	}
	return BreedBorn, id
}
