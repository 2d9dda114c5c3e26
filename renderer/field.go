package renderer

import (
	"image/color"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ses/camera"
	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
	"github.com/pthm-cable/ses/game"
	"github.com/pthm-cable/ses/systems"
)

// Field draws the grid world: background, optional grass overlay and
// every living agent as an outlined circle inside its cell.
type Field struct {
	Rect   rl.Rectangle
	Camera *camera.Camera

	bodyRadius       float32
	outlineRadius    float32
	herbivoreOutline color.RGBA
	carnivoreOutline color.RGBA

	showGrass bool
	selected  *[2]int
	jitter    *rand.Rand // separate from the simulation stream
}

// NewField creates a field renderer placed at (x, y) for a grid of the
// configured world size.
func NewField(screen config.ScreenConfig, world config.WorldConfig, x, y float32) *Field {
	w, h := float32(screen.FieldWidth), float32(screen.FieldHeight)
	return &Field{
		Rect:             rl.NewRectangle(x, y, w, h),
		Camera:           camera.New(w, h, world.Width, world.Height),
		bodyRadius:       float32(screen.BodyRadius),
		outlineRadius:    float32(screen.OutlineRadius),
		herbivoreOutline: screen.HerbivoreOutline.RGBA(),
		carnivoreOutline: screen.CarnivoreOutline.RGBA(),
		jitter:           rand.New(rand.NewSource(1)),
	}
}

// Contains reports whether a window point lies inside the field.
func (f *Field) Contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, f.Rect)
}

// CellAt returns the grid cell under a window point.
func (f *Field) CellAt(p rl.Vector2) (x, y int, ok bool) {
	if !f.Contains(p) {
		return 0, 0, false
	}
	return f.Camera.CellAt(p.X-f.Rect.X, p.Y-f.Rect.Y)
}

// Select highlights a cell; ok=false clears the selection.
func (f *Field) Select(x, y int, ok bool) {
	if !ok {
		f.selected = nil
		return
	}
	f.selected = &[2]int{x, y}
}

// Selected returns the highlighted cell, if any.
func (f *Field) Selected() (x, y int, ok bool) {
	if f.selected == nil {
		return 0, 0, false
	}
	return f.selected[0], f.selected[1], true
}

// ToggleGrass switches the grass overlay.
func (f *Field) ToggleGrass() bool {
	f.showGrass = !f.showGrass
	return f.showGrass
}

// Draw renders the world.
func (f *Field) Draw(s *game.State, grassLimit int) {
	rl.BeginScissorMode(int32(f.Rect.X), int32(f.Rect.Y), int32(f.Rect.Width), int32(f.Rect.Height))
	defer rl.EndScissorMode()

	rl.DrawRectangleRec(f.Rect, s.Background.RGBA())

	if f.showGrass {
		f.drawGrass(s.Grass, grassLimit)
	}

	f.drawPopulation(s.Herbivores)
	f.drawPopulation(s.Carnivores)

	if x, y, ok := f.Selected(); ok {
		rl.DrawRectangleLinesEx(f.cellRect(x, y), 1, rl.Yellow)
	}
}

// cellRect returns the window rectangle covered by a cell.
func (f *Field) cellRect(x, y int) rl.Rectangle {
	sx, sy := f.Camera.WorldToScreen(float32(x), float32(y))
	kx, ky := f.Camera.Scale()
	return rl.NewRectangle(f.Rect.X+sx, f.Rect.Y+sy, kx, ky)
}

func (f *Field) drawGrass(grass *systems.GrassField, limit int) {
	if limit <= 0 {
		return
	}
	for y := 0; y < grass.Height; y++ {
		for x := 0; x < grass.Width; x++ {
			alpha := float32(grass.At(x, y)) / float32(limit)
			if alpha <= 0 || !f.Camera.IsVisible(x, y) {
				continue
			}
			rl.DrawRectangleRec(f.cellRect(x, y), rl.Fade(rl.DarkGreen, 0.5*alpha))
		}
	}
}

func (f *Field) drawPopulation(p *systems.Population) {
	outline := f.herbivoreOutline
	if p.Kind() == components.KindCarnivore {
		outline = f.carnivoreOutline
	}

	kx, ky := f.Camera.Scale()
	zoom := f.Camera.Zoom

	p.ForEachAlive(func(_ int, a *components.Agent) {
		if !f.Camera.IsVisible(a.X, a.Y) {
			return
		}
		sx, sy := f.Camera.WorldToScreen(
			float32(a.X)+f.offset(kx, zoom),
			float32(a.Y)+f.offset(ky, zoom),
		)
		center := rl.NewVector2(f.Rect.X+sx, f.Rect.Y+sy)
		rl.DrawCircleV(center, f.outlineRadius*zoom, outline)
		rl.DrawCircleV(center, f.bodyRadius*zoom, a.Genome.RGBA())
	})
}

// offset returns a random position inside a cell in grid units, keeping
// the outline inside the cell when it fits. scale is pixels per cell.
func (f *Field) offset(scale, zoom float32) float32 {
	margin := f.outlineRadius * zoom / scale
	span := 1 - 2*margin
	if span <= 0 {
		return 0.5
	}
	return margin + f.jitter.Float32()*span
}
