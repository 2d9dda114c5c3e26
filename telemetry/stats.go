package telemetry

import (
	"errors"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/genome"
	"github.com/pthm-cable/ses/systems"
)

// ErrNoFitnessSignal is returned by AverageFitness when no herbivore is
// alive to measure.
var ErrNoFitnessSignal = errors.New("no living herbivores: fitness undefined")

// CountAlive returns the number of living agents in a population.
func CountAlive(p *systems.Population) int {
	return p.CountAlive()
}

// Fitness is how well a herbivore blends into the background.
func Fitness(background genome.Genome, a *components.Agent) float64 {
	return genome.Similarity(background, a.Genome)
}

// FitnessValues returns the fitness of every living herbivore in slot order.
func FitnessValues(background genome.Genome, herbivores *systems.Population) []float64 {
	var values []float64
	herbivores.ForEachAlive(func(_ int, a *components.Agent) {
		values = append(values, Fitness(background, a))
	})
	return values
}

// AverageFitness returns the mean fitness of the living herbivores.
func AverageFitness(background genome.Genome, herbivores *systems.Population) (float64, error) {
	values := FitnessValues(background, herbivores)
	if len(values) == 0 {
		return 0, ErrNoFitnessSignal
	}
	return stat.Mean(values, nil), nil
}

// SatietyValues returns the satiety of every living agent.
func SatietyValues(p *systems.Population) []float64 {
	var values []float64
	p.ForEachAlive(func(_ int, a *components.Agent) {
		values = append(values, float64(a.Satiety))
	})
	return values
}

// ChannelMeans returns the mean red, green and blue channel of the living
// agents, or zeros for an empty population.
func ChannelMeans(p *systems.Population) (r, g, b float64) {
	var rs, gs, bs []float64
	p.ForEachAlive(func(_ int, a *components.Agent) {
		rs = append(rs, float64(a.Genome.R()))
		gs = append(gs, float64(a.Genome.G()))
		bs = append(bs, float64(a.Genome.B()))
	})
	return mean(rs), mean(gs), mean(bs)
}

// mean is stat.Mean with an empty slice mapped to zero.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// meanStd returns the population mean and standard deviation, zeros for
// an empty slice.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population counts at window end
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`

	// Events during window
	HerbivoreBirths  int `csv:"herbivore_births"`
	CarnivoreBirths  int `csv:"carnivore_births"`
	DroppedBirths    int `csv:"dropped_births"`
	HerbivoreStarved int `csv:"herbivore_starved"`
	CarnivoreStarved int `csv:"carnivore_starved"`
	Migrations       int `csv:"migrations"`

	// Hunting
	Hunts    int     `csv:"hunts"`
	Kills    int     `csv:"kills"`
	KillRate float64 `csv:"kill_rate"`

	// Camouflage of herbivores against the background (sampled at window end)
	HasFitness  bool    `csv:"has_fitness"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`

	// Mean herbivore color
	HerbivoreRed   float64 `csv:"herbivore_red"`
	HerbivoreGreen float64 `csv:"herbivore_green"`
	HerbivoreBlue  float64 `csv:"herbivore_blue"`

	// Satiety (sampled at window end)
	HerbivoreSatietyMean float64 `csv:"herbivore_satiety_mean"`
	CarnivoreSatietyMean float64 `csv:"carnivore_satiety_mean"`

	TotalGrass int `csv:"total_grass"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("herbivore_births", s.HerbivoreBirths),
		slog.Int("carnivore_births", s.CarnivoreBirths),
		slog.Int("dropped_births", s.DroppedBirths),
		slog.Int("herbivore_starved", s.HerbivoreStarved),
		slog.Int("carnivore_starved", s.CarnivoreStarved),
		slog.Int("migrations", s.Migrations),
		slog.Int("hunts", s.Hunts),
		slog.Int("kills", s.Kills),
		slog.Float64("kill_rate", s.KillRate),
		slog.Bool("has_fitness", s.HasFitness),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("herbivore_satiety_mean", s.HerbivoreSatietyMean),
		slog.Float64("carnivore_satiety_mean", s.CarnivoreSatietyMean),
		slog.Int("total_grass", s.TotalGrass),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
