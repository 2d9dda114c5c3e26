package game

import (
	"log/slog"

	"github.com/pthm-cable/ses/components"
)

// recordEvents feeds one tick's events into the stats collector.
func (g *Game) recordEvents(ev TickEvents) {
	for _, kind := range []components.Kind{components.KindHerbivore, components.KindCarnivore} {
		se := ev.Species(kind)
		g.collector.RecordBirths(kind, se.Births)
		g.collector.RecordDroppedBirths(kind, se.Dropped)
		g.collector.RecordStarved(kind, se.Starved)
		g.collector.RecordMigrations(se.Migrations)
	}
	g.collector.RecordHunts(ev.Hunts, ev.Kills)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	s := g.state
	stats := g.collector.Flush(g.tick, s.Background, s.Herbivores, s.Carnivores, s.Grass)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Debug("perf", "stats", g.perf)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
