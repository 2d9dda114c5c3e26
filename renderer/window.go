package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ses/game"
)

// WindowOptions controls the window loop.
type WindowOptions struct {
	MaxTicks      int // stop after this many ticks since the last reset; 0 = unlimited
	StepsPerFrame int
}

const panSpeed = 200 // pixels per second

// RunWindow opens a raylib window and drives g until the window closes.
//
// Controls: left click in the field or the Reset button re-seeds the
// world, right click inspects a cell, the mouse wheel zooms, arrow keys
// pan, C recenters the camera and G toggles the grass overlay.
func RunWindow(g *game.Game, opts WindowOptions) {
	cfg := g.Config()
	screen := cfg.Screen

	width := int32(screen.WindowWidth) + HUDWidth
	height := int32(max(screen.WindowHeight, 360))

	rl.InitWindow(width, height, "Octocats vs Raptors")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(screen.TargetFPS))

	field := NewField(screen, cfg.World, 0, 0)
	hud := NewHUD(rl.NewRectangle(float32(screen.WindowWidth), 0, HUDWidth, float32(height)))

	steps := max(opts.StepsPerFrame, 1)

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		reset := rl.IsMouseButtonPressed(rl.MouseButtonLeft) && field.Contains(mouse)
		handleCameraInput(field, mouse)

		for i := 0; i < steps; i++ {
			if !g.Update() {
				break
			}
		}

		var cell *CellInfo
		if x, y, ok := field.Selected(); ok {
			info := InspectCell(g.State(), x, y)
			cell = &info
		}

		rl.BeginDrawing()
		rl.ClearBackground(hud.Theme.PanelBg)
		field.Draw(g.State(), cfg.Simulation.GrassLimit)
		if hud.Draw(g.Snapshot(), g.Halted(), cell) {
			reset = true
		}
		rl.EndDrawing()

		if reset {
			g.Reset()
		}

		if opts.MaxTicks > 0 && g.Tick() >= opts.MaxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

func handleCameraInput(field *Field, mouse rl.Vector2) {
	cam := field.Camera

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		field.Select(field.CellAt(mouse))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && field.Contains(mouse) {
		cam.ZoomBy(1 + 0.1*wheel)
	}

	d := panSpeed * rl.GetFrameTime()
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-d, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(d, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -d)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, d)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		cam.Reset()
	}

	if rl.IsKeyPressed(rl.KeyG) {
		slog.Debug("grass overlay", "visible", field.ToggleGrass())
	}
}
