package telemetry

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/genome"
	"github.com/pthm-cable/ses/systems"
)

func TestAverageFitness(t *testing.T) {
	herbivores := systems.NewPopulation(components.KindHerbivore, 4)

	if _, err := AverageFitness(genome.White, herbivores); !errors.Is(err, ErrNoFitnessSignal) {
		t.Fatalf("empty population error = %v, want ErrNoFitnessSignal", err)
	}

	herbivores.Reset(2, 0, 0, genome.White, 10)
	herbivores.Agent(1).Genome = genome.Black
	got, err := AverageFitness(genome.White, herbivores)
	if err != nil {
		t.Fatalf("AverageFitness: %v", err)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("AverageFitness = %v, want 0.5", got)
	}
}

func TestTakeSnapshot(t *testing.T) {
	herbivores := systems.NewPopulation(components.KindHerbivore, 4)
	carnivores := systems.NewPopulation(components.KindCarnivore, 4)
	carnivores.Reset(3, 0, 0, genome.Black, 10)

	s := TakeSnapshot(7, genome.White, herbivores, carnivores)
	if s.Tick != 7 || s.Herbivores != 0 || s.Carnivores != 3 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.HasFitness || s.FitnessText() != "n/a" {
		t.Errorf("FitnessText() = %q, want n/a", s.FitnessText())
	}
	args := s.LogArgs()
	if args[len(args)-1] != "no fitness signal" {
		t.Errorf("LogArgs() = %v, want no fitness signal", args)
	}

	herbivores.Reset(1, 0, 0, genome.White, 10)
	s = TakeSnapshot(8, genome.White, herbivores, carnivores)
	if !s.HasFitness || s.FitnessText() != "100.00%" {
		t.Errorf("FitnessText() = %q, want 100.00%%", s.FitnessText())
	}
}

func TestChannelMeans(t *testing.T) {
	p := systems.NewPopulation(components.KindHerbivore, 4)
	p.Reset(2, 0, 0, genome.Encode(10, 20, 30), 10)
	p.Agent(1).Genome = genome.Encode(30, 40, 50)

	r, g, b := ChannelMeans(p)
	if r != 20 || g != 30 || b != 40 {
		t.Errorf("ChannelMeans = (%v, %v, %v), want (20, 30, 40)", r, g, b)
	}
}

func TestWindowStatsLogValue(t *testing.T) {
	v := WindowStats{WindowEndTick: 100, Herbivores: 5}.LogValue()
	s := v.String()
	if !strings.Contains(s, "herbivores=5") || !strings.Contains(s, "window_end=100") {
		t.Errorf("LogValue() = %s", s)
	}
}
