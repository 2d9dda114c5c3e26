package systems

import (
	"errors"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/genome"
)

func TestSpawnUsesFirstFreeSlot(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := NewPopulation(components.KindHerbivore, 8)

	for want := 0; want < 3; want++ {
		id, err := pop.Spawn(rng, 1, 2, genome.White, 5, 0)
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if id != want {
			t.Fatalf("Spawn returned slot %d, want %d", id, want)
		}
	}

	pop.Agent(1).Alive = false
	id, err := pop.Spawn(rng, 3, 4, genome.Black, 7, 0)
	if err != nil || id != 1 {
		t.Fatalf("Spawn after freeing slot 1 = (%d, %v), want (1, nil)", id, err)
	}

	a := pop.Agent(1)
	if !a.Alive || !a.JustBorn || a.X != 3 || a.Y != 4 || a.Satiety != 7 || a.Genome != genome.Black {
		t.Errorf("unexpected newborn %+v", *a)
	}
}

func TestSpawnIntoFullPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pop := NewPopulation(components.KindCarnivore, 0)
	if pop.Cap() != MaxPopulation {
		t.Fatalf("Cap() = %d, want %d", pop.Cap(), MaxPopulation)
	}

	pop.Reset(MaxPopulation, 0, 0, genome.White, 10)
	if got := pop.CountAlive(); got != MaxPopulation {
		t.Fatalf("CountAlive() = %d, want %d", got, MaxPopulation)
	}

	id, err := pop.Spawn(rng, 0, 0, genome.White, 4, 1)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Spawn error = %v, want ErrCapacityExceeded", err)
	}
	if id != NoAgent {
		t.Errorf("Spawn id = %d, want NoAgent", id)
	}
	if got := pop.CountAlive(); got != MaxPopulation {
		t.Errorf("CountAlive() after failed spawn = %d, want %d", got, MaxPopulation)
	}
}

func TestSpawnMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	parent := genome.Genome(0x80808000)

	never := NewPopulation(components.KindHerbivore, 64)
	always := NewPopulation(components.KindHerbivore, 64)
	for i := 0; i < 64; i++ {
		id, _ := never.Spawn(rng, 0, 0, parent, 1, 0)
		if g := never.Agent(id).Genome; g != parent {
			t.Fatalf("mutation chance 0 changed genome to %08X", uint32(g))
		}

		id, _ = always.Spawn(rng, 0, 0, parent, 1, 1)
		diff := uint32(always.Agent(id).Genome ^ parent)
		if bits.OnesCount32(diff) != 1 || diff&0xFF != 0 {
			t.Fatalf("mutation chance 1 produced diff %08X, want exactly one color bit", diff)
		}
	}
}

func TestOccupantsAt(t *testing.T) {
	pop := NewPopulation(components.KindHerbivore, 8)
	pop.Reset(5, 2, 2, genome.White, 10)
	pop.Agent(1).X = 3
	pop.Agent(3).Alive = false

	got := pop.OccupantsAt(2, 2, NoAgent)
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("OccupantsAt = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OccupantsAt = %v, want %v", got, want)
		}
	}

	excl := pop.OccupantsAt(2, 2, 2)
	if len(excl) != 2 || excl[0] != 0 || excl[1] != 4 {
		t.Errorf("OccupantsAt excluding 2 = %v, want [0 4]", excl)
	}
	if n := pop.CountAt(2, 2, 0); n != 2 {
		t.Errorf("CountAt excluding 0 = %d, want 2", n)
	}

	// Results do not alias each other
	got[0] = 99
	if again := pop.OccupantsAt(2, 2, NoAgent); again[0] != 0 {
		t.Errorf("second query saw caller's modification: %v", again)
	}

	if empty := pop.OccupantsAt(0, 0, NoAgent); len(empty) != 0 {
		t.Errorf("OccupantsAt empty cell = %v, want none", empty)
	}
}

func TestForEachAliveAndClearBirthFlags(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := NewPopulation(components.KindHerbivore, 8)
	for i := 0; i < 4; i++ {
		pop.Spawn(rng, i, 0, genome.White, 1, 0)
	}
	pop.Agent(2).Alive = false

	var ids []int
	pop.ForEachAlive(func(id int, a *components.Agent) {
		ids = append(ids, id)
		if !a.JustBorn {
			t.Errorf("slot %d should still be a newborn", id)
		}
	})
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 1 || ids[2] != 3 {
		t.Errorf("ForEachAlive visited %v, want [0 1 3]", ids)
	}

	pop.ClearBirthFlags()
	for i := 0; i < pop.Cap(); i++ {
		if pop.Agent(i).JustBorn {
			t.Errorf("slot %d still JustBorn after ClearBirthFlags", i)
		}
	}
}

func TestResetClampsAndClears(t *testing.T) {
	pop := NewPopulation(components.KindCarnivore, 4)
	pop.Reset(10, 1, 1, genome.White, 3)
	if got := pop.CountAlive(); got != 4 {
		t.Errorf("CountAlive() = %d, want 4", got)
	}

	pop.Reset(1, 0, 0, genome.Black, 3)
	if got := pop.CountAlive(); got != 1 {
		t.Errorf("CountAlive() after shrinking reset = %d, want 1", got)
	}
	if a := pop.Agent(0); a.JustBorn || a.Genome != genome.Black {
		t.Errorf("seeded agent = %+v, want non-newborn black", *a)
	}
}
