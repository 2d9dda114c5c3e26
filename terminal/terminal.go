// Package terminal renders the simulation in a text terminal with tcell:
// one character cell per grid cell plus a status line.
package terminal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/game"
)

const (
	carnivoreGlyph = 'R'
	herbivoreGlyph = 'o'
)

var (
	carnivoreStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	warnStyle      = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Renderer draws a game onto a tcell screen.
type Renderer struct {
	screen tcell.Screen

	// Per-frame occupancy, reused between draws
	herbivore []int // slot of the first herbivore per cell, -1 if none
	carnivore []int // carnivore count per cell
}

// New creates a renderer for an initialized screen.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders the world and status line, then shows the screen.
func (r *Renderer) Draw(g *game.Game) {
	s := g.State()
	r.index(s)
	r.screen.Clear()

	limit := g.Config().Simulation.GrassLimit
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			ch, style := r.cell(s, x, y, limit)
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}

	snap := g.Snapshot()
	status := fmt.Sprintf("tick %d  octocats %d  raptors %d  fitness %s",
		snap.Tick, snap.Herbivores, snap.Carnivores, snap.FitnessText())
	r.text(0, s.Height, status, statusStyle)
	if g.Halted() {
		r.text(0, s.Height+1, "raptors extinct: r to reset, q to quit", warnStyle)
	}

	r.screen.Show()
}

// index records which cells hold agents of each species.
func (r *Renderer) index(s *game.State) {
	n := s.Width * s.Height
	if cap(r.herbivore) < n {
		r.herbivore = make([]int, n)
		r.carnivore = make([]int, n)
	}
	r.herbivore = r.herbivore[:n]
	r.carnivore = r.carnivore[:n]
	for i := range r.herbivore {
		r.herbivore[i] = -1
		r.carnivore[i] = 0
	}

	s.Herbivores.ForEachAlive(func(id int, a *components.Agent) {
		if i := a.Y*s.Width + a.X; r.herbivore[i] < 0 {
			r.herbivore[i] = id
		}
	})
	s.Carnivores.ForEachAlive(func(_ int, a *components.Agent) {
		r.carnivore[a.Y*s.Width+a.X]++
	})
}

// cell picks the glyph for one grid cell: carnivores over herbivores over
// grass.
func (r *Renderer) cell(s *game.State, x, y, grassLimit int) (rune, tcell.Style) {
	i := y*s.Width + x
	switch {
	case r.carnivore[i] > 0:
		return carnivoreGlyph, carnivoreStyle
	case r.herbivore[i] >= 0:
		g := s.Herbivores.Agent(r.herbivore[i]).Genome
		fg := tcell.NewRGBColor(int32(g.R()), int32(g.G()), int32(g.B()))
		return herbivoreGlyph, tcell.StyleDefault.Foreground(fg)
	}

	return ' ', tcell.StyleDefault.Background(grassShade(s.Grass.At(x, y), grassLimit))
}

// grassShade maps a grass amount to a green background.
func grassShade(amount, limit int) tcell.Color {
	if limit <= 0 || amount <= 0 {
		return tcell.ColorBlack
	}
	level := min(amount, limit) * 160 / limit
	return tcell.NewRGBColor(0, int32(level), 0)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// HandleEvent applies a terminal event to the game. It returns true when
// the user asked to quit.
func HandleEvent(ev tcell.Event, g *game.Game) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'r', 'R':
				g.Reset()
			}
		}
	}
	return false
}

// Options controls the terminal loop.
type Options struct {
	TickInterval  time.Duration // wall time between frames
	StepsPerFrame int
	MaxTicks      int // stop after this many ticks since the last reset; 0 = unlimited
}

// Run drives g on an initialized screen until the user quits or MaxTicks
// is reached. The caller owns the screen and calls Fini.
func Run(screen tcell.Screen, g *game.Game, opts Options) error {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	steps := max(opts.StepsPerFrame, 1)

	r := New(screen)

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(eventChan, quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Draw(g)
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil // screen finalized
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if HandleEvent(ev, g) {
				return nil
			}
			r.Draw(g)

		case <-ticker.C:
			for i := 0; i < steps; i++ {
				if !g.Update() {
					break
				}
			}
			r.Draw(g)

			if opts.MaxTicks > 0 && g.Tick() >= opts.MaxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return nil
			}
		}
	}
}
