package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/game"
	"github.com/pthm-cable/ses/renderer"
	"github.com/pthm-cable/ses/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output window stats and bookmarks via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per frame")
	verbose := flag.Bool("verbose", false, "Log every tick")

	flag.Parse()

	// Headless logs go to stdout; interactive modes keep stdout for the display
	var logOut io.Writer = os.Stdout
	switch {
	case *tui:
		logOut = io.Discard // the screen owns the terminal
	case !*headless:
		logOut = os.Stderr
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:        *seed,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	switch {
	case *headless:
		runHeadless(g, *maxTicks)

	case *tui:
		screen, err := tcell.NewScreen()
		if err != nil {
			slog.Error("failed to create screen", "error", err)
			os.Exit(1)
		}
		if err := screen.Init(); err != nil {
			slog.Error("failed to initialize screen", "error", err)
			os.Exit(1)
		}
		defer screen.Fini()

		if err := terminal.Run(screen, g, terminal.Options{
			StepsPerFrame: *stepsPerUpdate,
			MaxTicks:      *maxTicks,
		}); err != nil {
			slog.Error("terminal loop failed", "error", err)
		}

	default:
		renderer.RunWindow(g, renderer.WindowOptions{
			MaxTicks:      *maxTicks,
			StepsPerFrame: *stepsPerUpdate,
		})
	}
}

// runHeadless advances until carnivores die out or maxTicks is reached.
// With nobody to press reset, a halt ends the run.
func runHeadless(g *game.Game, maxTicks int) {
	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"max_ticks", maxTicks,
	)

	for g.Update() {
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
	slog.Info("simulation halted", "tick", g.Tick())
}
