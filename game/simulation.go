package game

import (
	"math/rand"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/systems"
)

// SpeciesEvents counts what happened to one species during a tick.
type SpeciesEvents struct {
	Births     int
	Dropped    int // births lost to a full population
	Starved    int
	Migrations int
}

// TickEvents summarizes one call to Advance.
type TickEvents struct {
	Herbivores SpeciesEvents
	Carnivores SpeciesEvents
	Hunts      int // attempts, successful or not
	Kills      int
}

// Engine applies the per-tick rules to a State.
type Engine struct {
	params config.Simulation
	rng    *rand.Rand
}

// NewEngine creates an engine with a fixed parameter set.
func NewEngine(params config.Simulation, rng *rand.Rand) *Engine {
	return &Engine{params: params, rng: rng}
}

// Params returns the rule constants in use.
func (e *Engine) Params() config.Simulation {
	return e.params
}

// Advance runs one full tick: herbivores, then carnivores, then grass
// regrowth. Agents born during the tick act from the next one.
func (e *Engine) Advance(s *State) TickEvents {
	var ev TickEvents

	e.updateHerbivores(s, &ev)
	e.updateCarnivores(s, &ev)

	s.Grass.Regrow(e.params.GrassGrowthRate, e.params.GrassLimit)

	s.Herbivores.ClearBirthFlags()
	s.Carnivores.ClearBirthFlags()

	return ev
}

// updateHerbivores handles feeding, reproduction and migration of every
// active herbivore in slot order.
func (e *Engine) updateHerbivores(s *State, ev *TickEvents) {
	p := e.params
	pop := s.Herbivores

	score := func(x, y int) int {
		return systems.HerbivoreDesirability(s.Grass, pop, p, x, y)
	}

	for id := 0; id < pop.Cap(); id++ {
		a := pop.Agent(id)
		if !a.Active() {
			continue
		}

		pressure := 0 // flee pressure, 0..4

		// Crowding
		neighbors := pop.OccupantsAt(a.X, a.Y, id)
		if len(neighbors) > p.Herbivore.OptimalPopulation-1 {
			pressure += 2
		}

		a.Satiety -= p.HungerRate
		pressure += systems.Graze(s.Grass, a, p)

		if systems.Exhausted(a) {
			ev.Herbivores.Starved++
			continue
		}

		if systems.CanBreed(len(neighbors), a.Satiety, p.Herbivore, p) {
			out, _ := systems.Breed(e.rng, pop, a, neighbors, p.Herbivore, p)
			ev.Herbivores.record(out)
		}

		if e.rng.Intn(4) < pressure && systems.Migrate(e.rng, s.Width, s.Height, a, score) {
			ev.Herbivores.Migrations++
		}
	}
}

// updateCarnivores handles hunting, reproduction and migration of every
// active carnivore in slot order.
func (e *Engine) updateCarnivores(s *State, ev *TickEvents) {
	p := e.params
	pop := s.Carnivores

	score := func(x, y int) int {
		return systems.CarnivoreDesirability(s.Herbivores, pop, p, x, y)
	}

	for id := 0; id < pop.Cap(); id++ {
		a := pop.Agent(id)
		if !a.Active() {
			continue
		}

		a.Satiety -= p.HungerRate

		out, _ := systems.Hunt(e.rng, s.Herbivores, s.Background, a, p)
		switch out {
		case systems.HuntKilled:
			ev.Kills++
			ev.Hunts++
		case systems.HuntMissed:
			ev.Hunts++
		}
		pressure := out.Pressure()

		// Hungry
		if a.Satiety <= p.SatietyLimit/2 {
			pressure++
		}

		if systems.Exhausted(a) {
			ev.Carnivores.Starved++
			continue
		}

		// Crowding
		neighbors := pop.OccupantsAt(a.X, a.Y, id)
		if len(neighbors) > p.Carnivore.OptimalPopulation-1 {
			pressure++
		}

		if systems.CanBreed(len(neighbors), a.Satiety, p.Carnivore, p) {
			out, _ := systems.Breed(e.rng, pop, a, neighbors, p.Carnivore, p)
			ev.Carnivores.record(out)
		}

		if e.rng.Intn(4) < pressure && systems.Migrate(e.rng, s.Width, s.Height, a, score) {
			ev.Carnivores.Migrations++
		}
	}
}

func (se *SpeciesEvents) record(out systems.BreedOutcome) {
	switch out {
	case systems.BreedBorn:
		se.Births++
	case systems.BreedDropped:
		se.Dropped++
	}
}

// Species returns the counters for one species.
func (ev TickEvents) Species(kind components.Kind) SpeciesEvents {
	if kind == components.KindCarnivore {
		return ev.Carnivores
	}
	return ev.Herbivores
}
