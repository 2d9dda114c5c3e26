package telemetry

import (
	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/genome"
	"github.com/pthm-cable/ses/systems"
)

// Collector accumulates events within windows of ticks and produces
// WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Event counters for the current window, indexed by components.Kind
	births     [2]int
	dropped    [2]int
	starved    [2]int
	migrations int
	hunts      int
	kills      int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirths records offspring placed for a species.
func (c *Collector) RecordBirths(kind components.Kind, n int) {
	c.births[kind] += n
}

// RecordDroppedBirths records offspring lost to a full population.
func (c *Collector) RecordDroppedBirths(kind components.Kind, n int) {
	c.dropped[kind] += n
}

// RecordStarved records agents that died of hunger.
func (c *Collector) RecordStarved(kind components.Kind, n int) {
	c.starved[kind] += n
}

// RecordMigrations records agents that moved to a neighboring cell.
func (c *Collector) RecordMigrations(n int) {
	c.migrations += n
}

// RecordHunts records hunt attempts and how many ended in a kill.
func (c *Collector) RecordHunts(attempts, kills int) {
	c.hunts += attempts
	c.kills += kills
}

// Restart discards the current window and starts a new one at tick.
func (c *Collector) Restart(tick int) {
	*c = Collector{windowTicks: c.windowTicks, windowStartTick: tick}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces stats for the window ending at currentTick, sampling the
// populations and grass as they are now, and starts a new window.
func (c *Collector) Flush(currentTick int, background genome.Genome, herbivores, carnivores *systems.Population, grass *systems.GrassField) WindowStats {
	stats := WindowStats{
		WindowStartTick:  c.windowStartTick,
		WindowEndTick:    currentTick,
		Herbivores:       CountAlive(herbivores),
		Carnivores:       CountAlive(carnivores),
		HerbivoreBirths:  c.births[components.KindHerbivore],
		CarnivoreBirths:  c.births[components.KindCarnivore],
		DroppedBirths:    c.dropped[components.KindHerbivore] + c.dropped[components.KindCarnivore],
		HerbivoreStarved: c.starved[components.KindHerbivore],
		CarnivoreStarved: c.starved[components.KindCarnivore],
		Migrations:       c.migrations,
		Hunts:            c.hunts,
		Kills:            c.kills,
		TotalGrass:       grass.Total(),
	}
	if c.hunts > 0 {
		stats.KillRate = float64(c.kills) / float64(c.hunts)
	}

	if fitness := FitnessValues(background, herbivores); len(fitness) > 0 {
		stats.HasFitness = true
		stats.FitnessMean, stats.FitnessStd = meanStd(fitness)
	}
	stats.HerbivoreRed, stats.HerbivoreGreen, stats.HerbivoreBlue = ChannelMeans(herbivores)
	stats.HerbivoreSatietyMean = mean(SatietyValues(herbivores))
	stats.CarnivoreSatietyMean = mean(SatietyValues(carnivores))

	c.Restart(currentTick)
	return stats
}
