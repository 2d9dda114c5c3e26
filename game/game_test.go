package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/telemetry"
)

func TestNewGameSeeds(t *testing.T) {
	g, err := NewGame(config.Default(), Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	snap := g.Snapshot()
	if g.Tick() != 0 || snap.Herbivores != 512 || snap.Carnivores != 128 {
		t.Errorf("initial snapshot = %+v at tick %d", snap, g.Tick())
	}
	if g.Halted() {
		t.Error("fresh game is halted")
	}
	if g.Seed() != 1 {
		t.Errorf("Seed() = %d, want 1", g.Seed())
	}
}

func TestNewGameRejectsBadWorld(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 0
	if _, err := NewGame(cfg, Options{Seed: 1}); err == nil {
		t.Error("NewGame accepted a zero-width world")
	}
}

func TestGameHaltsWithoutCarnivores(t *testing.T) {
	cfg := config.Default()
	cfg.Seed.Carnivores = 0

	g, err := NewGame(cfg, Options{Seed: 2})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	if !g.Update() {
		t.Fatal("first Update did not advance")
	}
	if !g.Halted() || g.Tick() != 1 {
		t.Fatalf("Halted() = %v at tick %d, want halted at 1", g.Halted(), g.Tick())
	}
	if g.Update() || g.Tick() != 1 {
		t.Errorf("halted game advanced to tick %d", g.Tick())
	}

	g.Reset()
	if g.Halted() || g.Tick() != 0 {
		t.Errorf("Reset left Halted() = %v, tick %d", g.Halted(), g.Tick())
	}
}

func TestGameSameSeedSameRun(t *testing.T) {
	run := func() telemetry.Snapshot {
		g, err := NewGame(config.Default(), Options{Seed: 42})
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		for i := 0; i < 50; i++ {
			g.Step()
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("runs with the same seed diverged: %+v vs %+v", a, b)
	}
	if a.Tick != 50 {
		t.Errorf("Tick = %d, want 50", a.Tick)
	}
}

func TestGameStatsWindow(t *testing.T) {
	var windows []telemetry.WindowStats
	dir := t.TempDir()

	g, err := NewGame(config.Default(), Options{
		Seed:          3,
		StatsWindow:   5,
		OutputDir:     dir,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i := 0; i < 12; i++ {
		g.Step()
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].WindowEndTick != 5 || windows[1].WindowStartTick != 5 || windows[1].WindowEndTick != 10 {
		t.Errorf("window bounds = %+v / %+v", windows[0], windows[1])
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("telemetry.csv has %d lines, want 3", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}
