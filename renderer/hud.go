package renderer

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ses/game"
	"github.com/pthm-cable/ses/systems"
	"github.com/pthm-cable/ses/telemetry"
)

// Theme holds HUD styling constants.
type Theme struct {
	PanelBg     color.RGBA
	PanelBorder color.RGBA
	LabelColor  color.RGBA
	ValueColor  color.RGBA
	WarnColor   color.RGBA
	Padding     int32
	LineHeight  int32
	LabelWidth  int32
	FontSize    int32
}

// DefaultTheme returns the default HUD theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     color.RGBA{R: 20, G: 25, B: 30, A: 255},
		PanelBorder: color.RGBA{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.RayWhite,
		WarnColor:   color.RGBA{R: 230, G: 90, B: 90, A: 255},
		Padding:     10,
		LineHeight:  20,
		LabelWidth:  70,
		FontSize:    14,
	}
}

// HUDWidth is the width of the side panel in pixels.
const HUDWidth = 180

// HUD draws the side panel: counters, fitness and a Reset button.
type HUD struct {
	Theme Theme
	Rect  rl.Rectangle
}

// NewHUD creates a HUD occupying the given rectangle.
func NewHUD(rect rl.Rectangle) *HUD {
	return &HUD{Theme: DefaultTheme(), Rect: rect}
}

// CellInfo describes the selected cell.
type CellInfo struct {
	X, Y       int
	Grass      int
	Herbivores int
	Carnivores int
}

// InspectCell samples one cell of the world.
func InspectCell(s *game.State, x, y int) CellInfo {
	return CellInfo{
		X:          x,
		Y:          y,
		Grass:      s.Grass.At(x, y),
		Herbivores: s.Herbivores.CountAt(x, y, systems.NoAgent),
		Carnivores: s.Carnivores.CountAt(x, y, systems.NoAgent),
	}
}

// Draw renders the panel and returns true when Reset was pressed. cell
// may be nil.
func (h *HUD) Draw(snap telemetry.Snapshot, halted bool, cell *CellInfo) bool {
	t := h.Theme
	rl.DrawRectangleRec(h.Rect, t.PanelBg)
	rl.DrawRectangleLinesEx(h.Rect, 1, t.PanelBorder)

	x := int32(h.Rect.X) + t.Padding
	y := int32(h.Rect.Y) + t.Padding

	y = h.labelValue(x, y, "Tick", fmt.Sprintf("%d", snap.Tick))
	y = h.labelValue(x, y, "Octocats", fmt.Sprintf("%d", snap.Herbivores))
	y = h.labelValue(x, y, "Raptors", fmt.Sprintf("%d", snap.Carnivores))
	y = h.labelValue(x, y, "Fitness", snap.FitnessText())

	if halted {
		rl.DrawText("Raptors extinct", x, y, t.FontSize, t.WarnColor)
	}
	y += t.LineHeight

	button := rl.NewRectangle(float32(x), float32(y), h.Rect.Width-2*float32(t.Padding), 30)
	pressed := gui.Button(button, "Reset")
	y += 30 + t.LineHeight

	if cell != nil {
		y = h.labelValue(x, y, "Cell", fmt.Sprintf("%d,%d", cell.X, cell.Y))
		y = h.labelValue(x, y, "Grass", fmt.Sprintf("%d", cell.Grass))
		y = h.labelValue(x, y, "Octocats", fmt.Sprintf("%d", cell.Herbivores))
		h.labelValue(x, y, "Raptors", fmt.Sprintf("%d", cell.Carnivores))
	}
	return pressed
}

func (h *HUD) labelValue(x, y int32, label, value string) int32 {
	t := h.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth+10, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}
