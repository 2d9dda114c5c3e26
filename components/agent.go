// Package components defines the per-agent data shared by systems and renderers.
package components

import "github.com/pthm-cable/ses/genome"

// Kind distinguishes the two species.
type Kind uint8

const (
	KindHerbivore Kind = iota // octocat: grazes grass
	KindCarnivore             // raptor: hunts herbivores
)

// String returns the species name.
func (k Kind) String() string {
	switch k {
	case KindHerbivore:
		return "octocat"
	case KindCarnivore:
		return "raptor"
	default:
		return "unknown"
	}
}

// Agent is one population slot. A slot with Alive == false is free for
// reuse by the next spawn.
type Agent struct {
	Alive bool
	// JustBorn marks an agent created during the current tick; it takes
	// no action until the flag is cleared at the end of the tick.
	JustBorn bool

	X, Y    int
	Genome  genome.Genome
	Satiety int
}

// At reports whether a living agent occupies cell (x, y).
func (a *Agent) At(x, y int) bool {
	return a.Alive && a.X == x && a.Y == y
}

// Active reports whether the agent takes part in the current tick.
func (a *Agent) Active() bool {
	return a.Alive && !a.JustBorn
}
