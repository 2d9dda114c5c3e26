package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/genome"
)

func TestCanBreed(t *testing.T) {
	params := defaultParams() // limit 32 → satiety >= 16; optimal 6 → neighbors < 8
	species := params.Herbivore

	tests := []struct {
		neighbors, satiety int
		want               bool
	}{
		{0, 16, true},
		{7, 32, true},
		{8, 32, false},
		{3, 15, false},
	}
	for _, tt := range tests {
		if got := CanBreed(tt.neighbors, tt.satiety, species, params); got != tt.want {
			t.Errorf("CanBreed(%d, %d) = %v, want %v", tt.neighbors, tt.satiety, got, tt.want)
		}
	}
}

func TestBreed(t *testing.T) {
	params := defaultParams()
	certain := config.SpeciesConfig{OptimalPopulation: 6, ProcreateChance: 1, MutationChance: 0}
	never := config.SpeciesConfig{OptimalPopulation: 6, ProcreateChance: 0, MutationChance: 0}

	t.Run("no mates", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		pop := NewPopulation(components.KindHerbivore, 4)
		pop.Reset(1, 0, 0, genome.White, 20)
		if out, _ := Breed(rng, pop, pop.Agent(0), nil, certain, params); out != BreedNone {
			t.Errorf("outcome = %v, want BreedNone", out)
		}
	})

	t.Run("chance fails", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		pop := NewPopulation(components.KindHerbivore, 4)
		pop.Reset(2, 0, 0, genome.White, 20)
		if out, _ := Breed(rng, pop, pop.Agent(0), []int{1}, never, params); out != BreedNone {
			t.Errorf("outcome = %v, want BreedNone", out)
		}
		if pop.CountAlive() != 2 {
			t.Errorf("CountAlive() = %d, want 2", pop.CountAlive())
		}
	})

	t.Run("born", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		pop := NewPopulation(components.KindHerbivore, 4)
		pop.Reset(2, 1, 1, genome.Genome(0x12345600), 20)

		out, id := Breed(rng, pop, pop.Agent(0), []int{1}, certain, params)
		if out != BreedBorn || id != 2 {
			t.Fatalf("Breed = (%v, %d), want (BreedBorn, 2)", out, id)
		}
		child := pop.Agent(id)
		if !child.JustBorn || child.X != 1 || child.Y != 1 {
			t.Errorf("child = %+v, want newborn at (1,1)", *child)
		}
		if child.Satiety != params.GrassSatietyPoints {
			t.Errorf("child satiety = %d, want %d", child.Satiety, params.GrassSatietyPoints)
		}
		if child.Genome != genome.Genome(0x12345600) {
			t.Errorf("child of identical parents = %08X, want 12345600", uint32(child.Genome))
		}
	})

	t.Run("dropped when full", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		pop := NewPopulation(components.KindCarnivore, 2)
		pop.Reset(2, 0, 0, genome.White, 20)
		out, id := Breed(rng, pop, pop.Agent(0), []int{1}, certain, params)
		if out != BreedDropped || id != NoAgent {
			t.Errorf("Breed = (%v, %d), want (BreedDropped, NoAgent)", out, id)
		}
		if pop.CountAlive() != 2 {
			t.Errorf("CountAlive() = %d, want 2", pop.CountAlive())
		}
	})
}
