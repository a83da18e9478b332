package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/sentry/parameter"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Targeting  TargetingConfig  `toml:"targeting"`
	Logging    LoggingConfig    `toml:"logging"`
	Audio      AudioConfig      `toml:"audio"`
	Content    ContentConfig    `toml:"content"`
}

type SimulationConfig struct {
	TickRate int    `toml:"tick_rate"` // Ticks per second
	Seed     uint64 `toml:"seed"`      // Target selection RNG seed
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
}

type TargetingConfig struct {
	BiasStructureChance float64 `toml:"bias_structure_chance"` // 0.0-1.0
	RecentAttackTicks   int64   `toml:"recent_attack_ticks"`
	MaxSearchDistance   float64 `toml:"max_search_distance"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`
	Format string   `toml:"format"` // "json" or "console"
	Output []string `toml:"output"` // Paths, "stderr" and "stdout" allowed
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type ContentConfig struct {
	Weapons      string `toml:"weapons"`       // YAML weapon and turret catalog
	Scenario     string `toml:"scenario"`      // YAML scenario
	FilterScript string `toml:"filter_script"` // Optional JS target filter
}

// Load reads a TOML file over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: parameter.DefaultTickRate,
			Seed:     parameter.DefaultSeed,
			Width:    parameter.DefaultMapWidth,
			Height:   parameter.DefaultMapHeight,
		},
		Targeting: TargetingConfig{
			BiasStructureChance: parameter.BiasStructureChance,
			RecentAttackTicks:   parameter.RecentAttackTicks,
			MaxSearchDistance:   parameter.MaxSearchDistance,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: []string{"stderr"},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Content: ContentConfig{
			Weapons:  "content/weapons.yaml",
			Scenario: "content/outpost.yaml",
		},
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tick_rate must be positive, got %d", c.Simulation.TickRate))
	}
	if c.Simulation.Width <= 0 || c.Simulation.Height <= 0 {
		errs = append(errs, fmt.Errorf("simulation size must be positive, got %dx%d", c.Simulation.Width, c.Simulation.Height))
	}
	if p := c.Targeting.BiasStructureChance; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("targeting.bias_structure_chance must be within [0, 1], got %g", p))
	}
	if c.Targeting.RecentAttackTicks < 0 {
		errs = append(errs, fmt.Errorf("targeting.recent_attack_ticks must not be negative"))
	}
	if c.Targeting.MaxSearchDistance <= 0 {
		errs = append(errs, fmt.Errorf("targeting.max_search_distance must be positive"))
	}
	if v := c.Audio.Volume; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", v))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
