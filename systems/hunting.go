package systems

import (
	"math/rand"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/genome"
)

// HuntOutcome describes what a carnivore did this tick.
type HuntOutcome uint8

const (
	HuntIdle   HuntOutcome = iota // sated, or no prey in the cell
	HuntMissed                    // prey escaped
	HuntKilled                    // prey eaten
)

// Flee pressure built up by each outcome.
var huntPressure = [...]int{HuntIdle: 2, HuntMissed: 1, HuntKilled: 0}

// Pressure returns the flee pressure produced by the outcome.
func (o HuntOutcome) Pressure() int {
	return huntPressure[o]
}

// CatchChance is the probability threshold for catching prey given a
// uniform roll. Prey that blends into the background is harder to catch;
// a predator resembling its prey catches it more easily.
func CatchChance(roll float64, predator, prey, background genome.Genome) float64 {
	return roll * (1.0 - genome.Similarity(prey, background)) * genome.Similarity(predator, prey)
}

// Hunt lets a hungry carnivore attack a random herbivore sharing its cell.
// On a kill the victim's slot is freed and the hunter gains
// MeatSatietyPoints. The victim id is NoAgent unless a hunt was attempted.
func Hunt(rng *rand.Rand, herbivores *Population, background genome.Genome, a *components.Agent, params config.Simulation) (HuntOutcome, int) {
	if a.Satiety >= params.SatietyLimit-params.MeatSatietyPoints {
		return HuntIdle, NoAgent
	}
	prey := herbivores.OccupantsAt(a.X, a.Y, NoAgent)
	if len(prey) == 0 {
		return HuntIdle, NoAgent
	}

	id := prey[rng.Intn(len(prey))]
	victim := herbivores.Agent(id)
	chance := CatchChance(rng.Float64(), a.Genome, victim.Genome, background)
	if rng.Float64() < chance {
		victim.Alive = false
		a.Satiety += params.MeatSatietyPoints
		return HuntKilled, id
	}
	return HuntMissed, id
}
