// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ses/genome"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// It is loaded once at startup and never mutated while a simulation runs.
type Config struct {
	Simulation Simulation      `yaml:"simulation"`
	World      WorldConfig     `yaml:"world"`
	Seed       SeedConfig      `yaml:"seed"`
	Screen     ScreenConfig    `yaml:"screen"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
}

// Simulation holds the rule constants consumed by the tick engine.
type Simulation struct {
	SatietyLimit       int `yaml:"satiety_limit"`
	GrassSatietyPoints int `yaml:"grass_satiety_points"` // satiety gained per graze, also newborn satiety
	MeatSatietyPoints  int `yaml:"meat_satiety_points"`  // satiety gained per kill
	HungerRate         int `yaml:"hunger_rate"`          // satiety lost per tick
	GrassLimit         int `yaml:"grass_limit"`
	GrassGrowthRate    int `yaml:"grass_growth_rate"` // 0 = grass_satiety_points

	Herbivore SpeciesConfig `yaml:"herbivore"`
	Carnivore SpeciesConfig `yaml:"carnivore"`
}

// SpeciesConfig holds per-species crowding and reproduction parameters.
type SpeciesConfig struct {
	OptimalPopulation int     `yaml:"optimal_population"`
	ProcreateChance   float64 `yaml:"procreate_chance"`
	MutationChance    float64 `yaml:"mutation_chance"`
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Background genome.Genome `yaml:"background"`
}

// SeedConfig describes the population placed by a reset.
type SeedConfig struct {
	GrassAmount    int           `yaml:"grass_amount"`
	Herbivores     int           `yaml:"herbivores"`
	Carnivores     int           `yaml:"carnivores"`
	Satiety        int           `yaml:"satiety"`
	HerbivoreColor genome.Genome `yaml:"herbivore_color"`
	CarnivoreColor genome.Genome `yaml:"carnivore_color"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	FieldWidth       int           `yaml:"field_width"`
	FieldHeight      int           `yaml:"field_height"`
	WindowWidth      int           `yaml:"window_width"`  // 0 = field_width
	WindowHeight     int           `yaml:"window_height"` // 0 = field_height
	TargetFPS        int           `yaml:"target_fps"`
	BodyRadius       float64       `yaml:"body_radius"`
	OutlineRadius    float64       `yaml:"outline_radius"`
	HerbivoreOutline genome.Genome `yaml:"herbivore_outline"`
	CarnivoreOutline genome.Genome `yaml:"carnivore_outline"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded defaults. It panics if they fail to load,
// which can only happen if defaults.yaml itself is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// computeDerived fills values left at zero that default to other fields.
func (c *Config) computeDerived() {
	if c.Simulation.GrassGrowthRate == 0 {
		c.Simulation.GrassGrowthRate = c.Simulation.GrassSatietyPoints
	}
	if c.Screen.WindowWidth == 0 {
		c.Screen.WindowWidth = c.Screen.FieldWidth
	}
	if c.Screen.WindowHeight == 0 {
		c.Screen.WindowHeight = c.Screen.FieldHeight
	}
	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 1
	}
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error
	s := c.Simulation

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if s.SatietyLimit <= 0 {
		errs = append(errs, fmt.Errorf("satiety_limit must be positive, got %d", s.SatietyLimit))
	}
	if s.HungerRate < 0 || s.GrassSatietyPoints < 0 || s.MeatSatietyPoints < 0 {
		errs = append(errs, errors.New("hunger_rate and satiety points must not be negative"))
	}
	if s.GrassLimit < 0 || s.GrassGrowthRate < 0 {
		errs = append(errs, errors.New("grass_limit and grass_growth_rate must not be negative"))
	}
	species := []struct {
		name string
		sp   SpeciesConfig
	}{{"herbivore", s.Herbivore}, {"carnivore", s.Carnivore}}
	for _, e := range species {
		name, sp := e.name, e.sp
		if sp.ProcreateChance < 0 || sp.ProcreateChance > 1 {
			errs = append(errs, fmt.Errorf("%s.procreate_chance must be in [0,1], got %v", name, sp.ProcreateChance))
		}
		if sp.MutationChance < 0 || sp.MutationChance > 1 {
			errs = append(errs, fmt.Errorf("%s.mutation_chance must be in [0,1], got %v", name, sp.MutationChance))
		}
	}
	if c.Seed.Herbivores < 0 || c.Seed.Carnivores < 0 {
		errs = append(errs, errors.New("seed populations must not be negative"))
	}
	if c.Seed.GrassAmount < 0 {
		errs = append(errs, errors.New("seed grass_amount must not be negative"))
	}

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
