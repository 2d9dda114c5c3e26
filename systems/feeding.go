package systems

import (
	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
)

// Graze lets a hungry herbivore eat from the grass in its cell and returns
// the flee pressure it builds up. A full meal costs the cell
// GrassSatietyPoints; a short meal takes whatever is left (+1 pressure),
// and a bare cell adds another +1.
//
// Satiety is expected to have been reduced by the hunger rate already.
func Graze(grass *GrassField, a *components.Agent, params config.Simulation) int {
	if a.Satiety >= params.SatietyLimit-params.GrassSatietyPoints {
		return 0
	}

	available := grass.At(a.X, a.Y)
	if available >= params.GrassSatietyPoints {
		a.Satiety += params.GrassSatietyPoints
		grass.Set(a.X, a.Y, available-params.GrassSatietyPoints)
		return 0
	}

	pressure := 1
	if available <= 0 {
		pressure++
	}
	a.Satiety += available
	grass.Set(a.X, a.Y, 0)
	return pressure
}

// Exhausted kills the agent if its satiety is at or below zero and
// reports whether it died.
func Exhausted(a *components.Agent) bool {
	if a.Satiety > 0 {
		return false
	}
	a.Alive = false
	return true
}
