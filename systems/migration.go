package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/ses/components"
	"github.com/pthm-cable/ses/config"
)

// Unavailable scores a direction that leaves the grid. It is lower than
// any real desirability.
const Unavailable = math.MinInt

// Direction is one of the four axis-aligned moves.
type Direction struct {
	DX, DY int
}

// Directions lists candidate moves in evaluation order.
var Directions = [4]Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Scorer rates how desirable cell (x, y) is as a destination.
type Scorer func(x, y int) int

// HerbivoreDesirability rates cell (x, y) for a herbivore: +2 for a full
// meal of grass, then +1 / -1 / 0 for fewer / more / exactly the optimal
// number of herbivores already there.
func HerbivoreDesirability(grass *GrassField, herbivores *Population, params config.Simulation, x, y int) int {
	desired := 0
	if grass.At(x, y) >= params.GrassSatietyPoints {
		desired += 2
	}

	optimal := params.Herbivore.OptimalPopulation
	switch n := herbivores.CountAt(x, y, NoAgent); {
	case n > optimal:
		desired--
	case n < optimal:
		desired++
	}
	return desired
}

// CarnivoreDesirability rates cell (x, y) for a carnivore: +3 when at
// least the optimal number of herbivores are there, then +4 / -2 / 0 for
// fewer / more / exactly the optimal number of carnivores.
func CarnivoreDesirability(herbivores, carnivores *Population, params config.Simulation, x, y int) int {
	desired := 0
	optimal := params.Carnivore.OptimalPopulation
	if herbivores.CountAt(x, y, NoAgent) > optimal-1 {
		desired += 3
	}

	switch n := carnivores.CountAt(x, y, NoAgent); {
	case n > optimal:
		desired -= 2
	case n < optimal:
		desired += 4
	}
	return desired
}

// ChooseDestination scores the in-bounds neighbors of (x, y) and returns
// the best one. Ties are broken uniformly at random. moved is false when
// no neighbor is on the grid.
func ChooseDestination(rng *rand.Rand, width, height, x, y int, score Scorer) (nx, ny int, moved bool) {
	var scores [len(Directions)]int
	best := Unavailable
	for i, d := range Directions {
		cx, cy := x+d.DX, y+d.DY
		if cx < 0 || cy < 0 || cx >= width || cy >= height {
			scores[i] = Unavailable
			continue
		}
		scores[i] = score(cx, cy)
		if scores[i] > best {
			best = scores[i]
		}
	}
	if best == Unavailable {
		return x, y, false
	}

	var tied [len(Directions)]int
	n := 0
	for i, s := range scores {
		if s == best {
			tied[n] = i
			n++
		}
	}

	pick := tied[0]
	if n > 1 {
		pick = tied[rng.Intn(n)]
	}
	d := Directions[pick]
	return x + d.DX, y + d.DY, true
}

// Migrate moves agent a one cell toward the best-scoring neighbor.
func Migrate(rng *rand.Rand, width, height int, a *components.Agent, score Scorer) bool {
	nx, ny, moved := ChooseDestination(rng, width, height, a.X, a.Y, score)
	if moved {
		a.X, a.Y = nx, ny
	}
	return moved
}
