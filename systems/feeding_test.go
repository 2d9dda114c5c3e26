package systems

import (
	"testing"

	"github.com/pthm-cable/ses/components"
)

func TestGraze(t *testing.T) {
	params := defaultParams() // limit 32, grass points 4 → eats below 28

	tests := []struct {
		name         string
		satiety      int
		grass        int
		wantSatiety  int
		wantGrass    int
		wantPressure int
	}{
		{"sated does not eat", 28, 64, 28, 64, 0},
		{"full meal", 27, 64, 31, 60, 0},
		{"exact meal", 10, 4, 14, 0, 0},
		{"short meal", 10, 3, 13, 0, 1},
		{"bare cell", 10, 0, 10, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grass := NewGrassField(1, 1, tt.grass)
			a := &components.Agent{Alive: true, Satiety: tt.satiety}

			pressure := Graze(grass, a, params)
			if a.Satiety != tt.wantSatiety {
				t.Errorf("satiety = %d, want %d", a.Satiety, tt.wantSatiety)
			}
			if got := grass.At(0, 0); got != tt.wantGrass {
				t.Errorf("grass = %d, want %d", got, tt.wantGrass)
			}
			if pressure != tt.wantPressure {
				t.Errorf("pressure = %d, want %d", pressure, tt.wantPressure)
			}
		})
	}
}

func TestExhausted(t *testing.T) {
	a := &components.Agent{Alive: true, Satiety: 1}
	if Exhausted(a) || !a.Alive {
		t.Fatal("agent with satiety 1 should survive")
	}
	a.Satiety = 0
	if !Exhausted(a) || a.Alive {
		t.Fatal("agent at satiety 0 should be dead")
	}
	a = &components.Agent{Alive: true, Satiety: -3}
	if !Exhausted(a) || a.Alive {
		t.Fatal("agent below zero should be dead")
	}
}

func TestGrassRegrow(t *testing.T) {
	f := NewGrassField(3, 1, 0)
	f.Amount = []int{0, 62, 64}

	f.Regrow(4, 64)
	want := []int{4, 64, 64}
	for i := range want {
		if f.Amount[i] != want[i] {
			t.Errorf("cell %d = %d, want %d", i, f.Amount[i], want[i])
		}
	}
	if f.Total() != 132 {
		t.Errorf("Total() = %d, want 132", f.Total())
	}
}

func TestGrassRegrowMonotonic(t *testing.T) {
	f := NewGrassField(4, 4, 0)
	for i := range f.Amount {
		f.Amount[i] = i * 4 // 0..60, within the limit
	}
	before := append([]int(nil), f.Amount...)

	f.Regrow(4, 64)
	for i := range f.Amount {
		want := min(before[i]+4, 64)
		if f.Amount[i] != want || f.Amount[i] < before[i] {
			t.Errorf("cell %d: %d -> %d, want %d", i, before[i], f.Amount[i], want)
		}
	}
}

func TestGrassFieldIndexing(t *testing.T) {
	f := NewGrassField(3, 2, 0)
	f.Set(2, 1, 9)
	if f.Amount[1*3+2] != 9 {
		t.Errorf("Set(2,1) wrote to the wrong index: %v", f.Amount)
	}
	if !f.InBounds(2, 1) || f.InBounds(3, 0) || f.InBounds(0, -1) {
		t.Error("InBounds returned wrong results")
	}
}
