package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/game"
	"github.com/pthm-cable/ses/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	lastResult  evalResult
	bestFitness float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 100,
		bestFitness: math.Inf(1),
	}
}

// evalResult is the seed average of one evaluation.
type evalResult struct {
	fitness     float64
	coexistence float64 // mean ticks both species survived
	quality     float64
}

// runResult holds the results from a single simulation run.
type runResult struct {
	coexistTicks int // ticks before either species died out (or maxTicks)
	windowStats  []telemetry.WindowStats
}

// LastResult returns the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() evalResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Each seed runs its own Game on its own goroutine.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)
	if err := cfg.Validate(); err != nil {
		return 0 // never better than a run that coexisted
	}

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var res evalResult
	for _, r := range results {
		quality := computeQuality(r.windowStats)
		res.fitness += computeFitness(r.coexistTicks, quality)
		res.coexistence += float64(r.coexistTicks)
		res.quality += quality
	}
	n := float64(len(results))
	res.fitness /= n
	res.coexistence /= n
	res.quality /= n

	fe.mu.Lock()
	fe.lastResult = res
	if res.fitness < fe.bestFitness {
		fe.bestFitness = res.fitness
	}
	fe.mu.Unlock()

	return res.fitness
}

// configFor returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// runSimulation runs one seed until either species dies out or maxTicks.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	var result runResult

	g, err := game.NewGame(cfg, game.Options{
		Seed:        seed,
		StatsWindow: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Close()

	for g.Tick() < fe.maxTicks {
		g.Step()
		snap := g.Snapshot()
		if snap.Herbivores == 0 || snap.Carnivores == 0 {
			result.coexistTicks = snap.Tick
			return result
		}
	}
	result.coexistTicks = fe.maxTicks
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Coexistence dominates; quality adds up to a 20% bonus.
func computeFitness(coexistTicks int, quality float64) float64 {
	return -(float64(coexistTicks) * (1.0 + 0.2*quality))
}

const (
	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where either species < this
)

// computeQuality scores population stability in [0, 1] from the window
// stats: 1 for constant populations, falling with their coefficient of
// variation.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var herbivores, carnivores []float64
	for _, w := range windows[qualityWarmupWindows:] {
		if w.Herbivores < qualityMinPop || w.Carnivores < qualityMinPop {
			continue
		}
		herbivores = append(herbivores, float64(w.Herbivores))
		carnivores = append(carnivores, float64(w.Carnivores))
	}
	if len(herbivores) < 2 {
		return 0
	}

	cvH, cvC := cv(herbivores), cv(carnivores)
	return math.Exp(-(cvH*cvH + cvC*cvC))
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
