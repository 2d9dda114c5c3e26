package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/ses/genome"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	s := cfg.Simulation
	checks := []struct {
		name      string
		got, want int
	}{
		{"satiety_limit", s.SatietyLimit, 32},
		{"grass_satiety_points", s.GrassSatietyPoints, 4},
		{"meat_satiety_points", s.MeatSatietyPoints, 12},
		{"hunger_rate", s.HungerRate, 2},
		{"grass_limit", s.GrassLimit, 64},
		{"grass_growth_rate (derived)", s.GrassGrowthRate, 4},
		{"herbivore optimal", s.Herbivore.OptimalPopulation, 6},
		{"carnivore optimal", s.Carnivore.OptimalPopulation, 6},
		{"world width", cfg.World.Width, 16},
		{"world height", cfg.World.Height, 16},
		{"seed herbivores", cfg.Seed.Herbivores, 512},
		{"seed carnivores", cfg.Seed.Carnivores, 128},
		{"window width (derived)", cfg.Screen.WindowWidth, 320},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if s.Herbivore.ProcreateChance != 0.64 || s.Carnivore.MutationChance != 0.2 {
		t.Errorf("unexpected species chances: %+v %+v", s.Herbivore, s.Carnivore)
	}
	if cfg.Seed.HerbivoreColor != genome.Genome(0xFFFFFFFF) {
		t.Errorf("herbivore color = %08X, want FFFFFFFF", uint32(cfg.Seed.HerbivoreColor))
	}
	if cfg.Screen.CarnivoreOutline != genome.Genome(0xFF000000) {
		t.Errorf("carnivore outline = %08X, want FF000000", uint32(cfg.Screen.CarnivoreOutline))
	}
	if cfg.World.Background != genome.Black {
		t.Errorf("background = %08X, want black", uint32(cfg.World.Background))
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	overlay := "simulation:\n  hunger_rate: 3\n  carnivore:\n    procreate_chance: 0.5\nworld:\n  width: 4\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Simulation.HungerRate != 3 {
		t.Errorf("hunger_rate = %d, want 3", cfg.Simulation.HungerRate)
	}
	if cfg.Simulation.Carnivore.ProcreateChance != 0.5 {
		t.Errorf("carnivore procreate = %v, want 0.5", cfg.Simulation.Carnivore.ProcreateChance)
	}
	// Untouched fields keep their defaults
	if cfg.Simulation.Carnivore.OptimalPopulation != 6 || cfg.World.Height != 16 {
		t.Errorf("overlay clobbered defaults: %+v %+v", cfg.Simulation.Carnivore, cfg.World)
	}
	if cfg.World.Width != 4 {
		t.Errorf("world width = %d, want 4", cfg.World.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults ok", func(c *Config) {}, ""},
		{"zero width", func(c *Config) { c.World.Width = 0 }, "world dimensions"},
		{"bad procreate", func(c *Config) { c.Simulation.Herbivore.ProcreateChance = 1.5 }, "herbivore.procreate_chance"},
		{"bad mutation", func(c *Config) { c.Simulation.Carnivore.MutationChance = -0.1 }, "carnivore.mutation_chance"},
		{"negative seed", func(c *Config) { c.Seed.Carnivores = -1 }, "seed populations"},
		{"negative hunger", func(c *Config) { c.Simulation.HungerRate = -1 }, "hunger_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Simulation.MeatSatietyPoints = 9

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Simulation != cfg.Simulation {
		t.Errorf("simulation section changed: got %+v, want %+v", loaded.Simulation, cfg.Simulation)
	}
	if loaded.Seed != cfg.Seed {
		t.Errorf("seed section changed: got %+v, want %+v", loaded.Seed, cfg.Seed)
	}
}
