package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/telemetry"
)

// Options configures a Game beyond the simulation parameters.
type Options struct {
	Seed          int64  // RNG seed; 0 seeds from the clock
	LogStats      bool   // log window stats and bookmarks
	StatsWindow   int    // ticks per stats window; 0 uses the config value
	OutputDir     string // CSV output directory; empty disables output
	StatsCallback func(telemetry.WindowStats)
}

// Game drives a simulation: it owns the state, the engine and the
// telemetry pipeline, and is advanced once per frame by a host loop.
type Game struct {
	cfg    *config.Config
	seed   int64
	rng    *rand.Rand
	state  *State
	engine *Engine
	spec   SeedSpec

	tick     int
	halted   bool
	snapshot telemetry.Snapshot

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	perf             *PerfStats
}

// NewGame creates a game from a validated config and seeds the world.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state, err := NewState(cfg.World.Width, cfg.World.Height, cfg.World.Background)
	if err != nil {
		return nil, fmt.Errorf("creating state: %w", err)
	}

	window := opts.StatsWindow
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		cfg:              cfg,
		seed:             seed,
		rng:              rng,
		state:            state,
		engine:           NewEngine(cfg.Simulation, rng),
		spec:             SeedSpecFrom(cfg.Seed),
		collector:        telemetry.NewCollector(window),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		outputManager:    om,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		perf:             NewPerfStats(),
	}
	g.Reset()
	return g, nil
}

// Reset re-seeds the world from the configured seed spec and resumes a
// halted simulation.
func (g *Game) Reset() {
	g.state.Seed(g.rng, g.spec)
	g.tick = 0
	g.halted = false
	g.collector.Restart(0)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	g.snapshot = g.takeSnapshot()

	slog.Info("reset",
		"octocats", g.snapshot.Herbivores,
		"raptors", g.snapshot.Carnivores,
		"grass", g.spec.GrassAmount,
	)
}

// Update advances one tick unless the simulation is halted. It reports
// whether a tick ran.
func (g *Game) Update() bool {
	if g.halted {
		return false
	}
	g.Step()
	return true
}

// Step advances exactly one tick, halted or not, and returns what
// happened during it.
func (g *Game) Step() TickEvents {
	start := time.Now()
	ev := g.engine.Advance(g.state)
	g.perf.Record(PhaseAdvance, time.Since(start))
	g.tick++

	start = time.Now()
	g.recordEvents(ev)
	g.snapshot = g.takeSnapshot()
	slog.Debug("tick", g.snapshot.LogArgs()...)

	if g.snapshot.Carnivores == 0 && !g.halted {
		g.halted = true
		slog.Info("extinction", "species", "raptors", "tick", g.tick, "octocats", g.snapshot.Herbivores)
	}

	g.flushTelemetry()
	g.perf.Record(PhaseTelemetry, time.Since(start))
	return ev
}

func (g *Game) takeSnapshot() telemetry.Snapshot {
	return telemetry.TakeSnapshot(g.tick, g.state.Background, g.state.Herbivores, g.state.Carnivores)
}

// Halted reports whether carnivores died out and the game waits for a reset.
func (g *Game) Halted() bool {
	return g.halted
}

// State returns the world for read-only use by renderers.
func (g *Game) State() *State {
	return g.state
}

// Tick returns the number of ticks since the last reset.
func (g *Game) Tick() int {
	return g.tick
}

// Snapshot returns the view taken after the last tick or reset.
func (g *Game) Snapshot() telemetry.Snapshot {
	return g.snapshot
}

// Config returns the parameter set the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}
