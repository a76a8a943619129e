// Package config loads resolution's TOML configuration and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all resolution configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Pacing     PacingConfig     `toml:"pacing"`
	Rewards    map[string]int   `toml:"rewards,omitempty"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds paths and routine preferences.
type GeneralConfig struct {
	DataDir       string `toml:"data_dir,omitempty" env:"RESOLUTION_HOME"`
	MorningHour   int    `toml:"morning_hour" env:"RESOLUTION_MORNING_HOUR"`
	ProblemsFile  string `toml:"problems_file,omitempty" env:"RESOLUTION_PROBLEMS_FILE"`
	PlanFile      string `toml:"plan_file,omitempty" env:"RESOLUTION_PLAN_FILE"`
	OpenBrowser   bool   `toml:"open_browser" env:"RESOLUTION_OPEN_BROWSER"`
	AllowShutdown bool   `toml:"allow_shutdown"`
}

// PacingConfig bounds the daily reading assignment.
type PacingConfig struct {
	MinDaily int `toml:"min_daily"`
	MaxDaily int `toml:"max_daily"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"RESOLUTION_THEME"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			MorningHour:   6,
			OpenBrowser:   true,
			AllowShutdown: true,
		},
		Pacing: PacingConfig{
			MinDaily: 3,
			MaxDaily: 4,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "resolution")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "resolution")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies RESOLUTION_* environment variables. A .env file in the working
// directory or the config directory is loaded first; real environment
// variables win over it.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	loadDotEnv()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDotEnv() {
	for _, p := range []string{".env", filepath.Join(Dir(), ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.General.MorningHour < 0 || c.General.MorningHour > 23 {
		return fmt.Errorf("config error: 'morning_hour' must be 0-23, got %d", c.General.MorningHour)
	}
	if c.Pacing.MinDaily < 1 {
		return errors.New("config error: 'min_daily' must be at least 1")
	}
	if c.Pacing.MaxDaily < c.Pacing.MinDaily {
		return errors.New("config error: 'max_daily' must not be below 'min_daily'")
	}
	for kind, amount := range c.Rewards {
		if amount < 0 {
			return fmt.Errorf("config error: reward %q must be non-negative", kind)
		}
	}
	return nil
}

// DataDir returns where state documents live.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return Dir()
}

// CachePath returns the problem catalog cache database path.
func (c Config) CachePath() string {
	return filepath.Join(c.DataDir(), "cache.db")
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
