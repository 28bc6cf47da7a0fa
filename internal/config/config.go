// Package config loads runtime settings for the simulation binaries.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/talgya/hearthold/internal/engine"
	"github.com/talgya/hearthold/internal/world"
)

// Config is the full runtime configuration, one section per concern.
type Config struct {
	Sim      SimConfig      `mapstructure:"sim"`
	World    WorldConfig    `mapstructure:"world"`
	Universe UniverseConfig `mapstructure:"universe"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
}

// SimConfig paces the round engine and sizes the population.
type SimConfig struct {
	RoundMs          int     `mapstructure:"round_ms"`
	RoundDuration    float64 `mapstructure:"round_duration"` // Simulated time per round
	Speed            float64 `mapstructure:"speed"`
	CheckpointRounds uint64  `mapstructure:"checkpoint_rounds"`
	Characters       int     `mapstructure:"characters"`
}

// WorldConfig holds terrain generation settings.
type WorldConfig struct {
	Width       int   `mapstructure:"width"`
	Height      int   `mapstructure:"height"`
	Seeds       int   `mapstructure:"seeds"`
	Relaxations int   `mapstructure:"relaxations"`
	Seed        int64 `mapstructure:"seed"` // 0 picks one at random
	Clustered   bool  `mapstructure:"clustered"`
}

// UniverseConfig selects the template tables.
type UniverseConfig struct {
	Path string `mapstructure:"path"` // Empty uses the built-in universe
}

// DatabaseConfig locates the SQLite run journal.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // Empty disables persistence
}

// ServerConfig holds process-wide switches.
type ServerConfig struct {
	Debug bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	gen := world.DefaultGenConfig()

	v.SetDefault("sim.round_ms", 100)
	v.SetDefault("sim.round_duration", 0.1)
	v.SetDefault("sim.speed", 1.0)
	v.SetDefault("sim.checkpoint_rounds", 100)
	v.SetDefault("sim.characters", engine.DefaultConfig().Characters)
	v.SetDefault("world.width", gen.Width)
	v.SetDefault("world.height", gen.Height)
	v.SetDefault("world.seeds", gen.Seeds)
	v.SetDefault("world.relaxations", gen.Relaxations)
	v.SetDefault("world.seed", 0)
	v.SetDefault("world.clustered", false)
	v.SetDefault("universe.path", "")
	v.SetDefault("database.path", "data/hearthold.db")
	v.SetDefault("server.debug", false)
}

// Load reads config from the given YAML file path. An empty path yields the
// defaults. Environment variables prefixed HEARTHOLD_ override both, e.g.
// HEARTHOLD_SIM_SPEED=2.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("hearthold")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.RoundMs <= 0 {
		errs = append(errs, fmt.Errorf("sim.round_ms must be positive, got %d", c.Sim.RoundMs))
	}
	if c.Sim.RoundDuration <= 0 {
		errs = append(errs, fmt.Errorf("sim.round_duration must be positive, got %g", c.Sim.RoundDuration))
	}
	if c.Sim.Speed < 0 {
		errs = append(errs, fmt.Errorf("sim.speed must not be negative, got %g", c.Sim.Speed))
	}
	if c.Sim.Characters < 1 {
		errs = append(errs, fmt.Errorf("sim.characters must be at least 1, got %d", c.Sim.Characters))
	}
	if c.World.Width < 1 || c.World.Height < 1 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.World.Seeds < 1 {
		errs = append(errs, fmt.Errorf("world.seeds must be at least 1, got %d", c.World.Seeds))
	}
	if c.World.Relaxations < 0 {
		errs = append(errs, fmt.Errorf("world.relaxations must not be negative, got %d", c.World.Relaxations))
	}
	return errors.Join(errs...)
}

// Interval is the wall time between rounds at speed 1.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Sim.RoundMs) * time.Millisecond
}

// GenConfig converts the world section for terrain generation.
func (c *Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Width:       c.World.Width,
		Height:      c.World.Height,
		Seeds:       c.World.Seeds,
		Relaxations: c.World.Relaxations,
		Seed:        c.World.Seed,
		Clustered:   c.World.Clustered,
	}
}

// EngineConfig converts the settings for world generation.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		World:      c.GenConfig(),
		Characters: c.Sim.Characters,
	}
}
