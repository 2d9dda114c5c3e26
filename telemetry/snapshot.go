package telemetry

import (
	"fmt"

	"github.com/pthm-cable/ses/genome"
	"github.com/pthm-cable/ses/systems"
)

// Snapshot is the per-frame view shown by renderers and the tick log.
type Snapshot struct {
	Tick       int
	Herbivores int
	Carnivores int
	Fitness    float64
	HasFitness bool
}

// TakeSnapshot samples both populations.
func TakeSnapshot(tick int, background genome.Genome, herbivores, carnivores *systems.Population) Snapshot {
	s := Snapshot{
		Tick:       tick,
		Herbivores: CountAlive(herbivores),
		Carnivores: CountAlive(carnivores),
	}
	if fitness, err := AverageFitness(background, herbivores); err == nil {
		s.Fitness = fitness
		s.HasFitness = true
	}
	return s
}

// FitnessText formats the average fitness as a percentage, or "n/a" when
// there is no herbivore to measure.
func (s Snapshot) FitnessText() string {
	if !s.HasFitness {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", s.Fitness*100.0)
}

// LogArgs returns slog key/value pairs for the per-tick report.
func (s Snapshot) LogArgs() []any {
	args := []any{"tick", s.Tick, "octocats", s.Herbivores, "raptors", s.Carnivores}
	if s.HasFitness {
		return append(args, "fitness", s.Fitness)
	}
	return append(args, "fitness", "no fitness signal")
}
