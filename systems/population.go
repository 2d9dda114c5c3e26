// Package systems provides the per-rule building blocks of the tick engine.
package systems

import (
	"errors"
	"math/rand"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/genome"
)

// MaxPopulation is the slot capacity of each species.
const MaxPopulation = 2048

// NoAgent is the slot id used when a query should exclude nobody.
const NoAgent = -1

// ErrCapacityExceeded is returned by Spawn when every slot is alive.
var ErrCapacityExceeded = errors.New("population capacity exceeded")

// Population is a fixed-capacity arena of agent slots for one species.
// Agents are addressed by slot id; dead slots are reused by Spawn.
type Population struct {
	kind  components.Kind
	slots []components.Agent
}

// NewPopulation creates an empty population. A non-positive capacity
// uses MaxPopulation.
func NewPopulation(kind components.Kind, capacity int) *Population {
	if capacity <= 0 {
		capacity = MaxPopulation
	}
	return &Population{
		kind:  kind,
		slots: make([]components.Agent, capacity),
	}
}

// Kind returns the species stored in this population.
func (p *Population) Kind() components.Kind {
	return p.kind
}

// Cap returns the slot capacity.
func (p *Population) Cap() int {
	return len(p.slots)
}

// Agent returns the slot with the given id.
func (p *Population) Agent(id int) *components.Agent {
	return &p.slots[id]
}

// Spawn places a newborn in the first free slot and returns its id.
// The genome is mutated with probability mutationChance.
func (p *Population) Spawn(rng *rand.Rand, x, y int, g genome.Genome, satiety int, mutationChance float64) (int, error) {
	id := p.firstFree()
	if id == NoAgent {
		return NoAgent, ErrCapacityExceeded
	}

	if rng.Float64() < mutationChance {
		g = genome.Mutate(g, rng)
	}

	p.slots[id] = components.Agent{
		Alive:    true,
		JustBorn: true,
		X:        x,
		Y:        y,
		Genome:   g,
		Satiety:  satiety,
	}
	return id, nil
}

func (p *Population) firstFree() int {
	for i := range p.slots {
		if !p.slots[i].Alive {
			return i
		}
	}
	return NoAgent
}

// OccupantsAt returns the ids of living agents at (x, y) in slot order,
// leaving out except. The slice is freshly allocated on every call.
func (p *Population) OccupantsAt(x, y, except int) []int {
	var ids []int
	for i := range p.slots {
		if i != except && p.slots[i].At(x, y) {
			ids = append(ids, i)
		}
	}
	return ids
}

// CountAt counts living agents at (x, y), leaving out except.
func (p *Population) CountAt(x, y, except int) int {
	n := 0
	for i := range p.slots {
		if i != except && p.slots[i].At(x, y) {
			n++
		}
	}
	return n
}

// CountAlive returns the number of living agents.
func (p *Population) CountAlive() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Alive {
			n++
		}
	}
	return n
}

// ForEachAlive calls fn for every living agent in slot order.
func (p *Population) ForEachAlive(fn func(id int, a *components.Agent)) {
	for i := range p.slots {
		if p.slots[i].Alive {
			fn(i, &p.slots[i])
		}
	}
}

// ClearBirthFlags ends the newborn grace period for every slot.
func (p *Population) ClearBirthFlags() {
	for i := range p.slots {
		p.slots[i].JustBorn = false
	}
}

// Reset kills every slot, then makes slots [0, n) alive at (x, y) with the
// given genome and satiety. n is clamped to the capacity. Seeded agents
// are not newborns and their genome is not mutated.
func (p *Population) Reset(n, x, y int, g genome.Genome, satiety int) {
	if n > len(p.slots) {
		n = len(p.slots)
	}
	for i := range p.slots {
		p.slots[i] = components.Agent{}
		if i < n {
			p.slots[i] = components.Agent{
				Alive:   true,
				X:       x,
				Y:       y,
				Genome:  g,
				Satiety: satiety,
			}
		}
	}
}
