// Package config loads and saves the reimburse configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all reimburse configuration.
type Config struct {
	Policy     PolicyConfig     `toml:"policy"`
	Output     OutputConfig     `toml:"output"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// PolicyConfig selects the formula variant and optional rate overrides.
type PolicyConfig struct {
	Variant   string          `toml:"variant"`
	Overrides PolicyOverrides `toml:"overrides,omitempty"`
}

// PolicyOverrides replaces individual rates of the selected variant.
type PolicyOverrides struct {
	Tier1Multiplier *float64 `toml:"tier1_multiplier,omitempty"`
	HeavyPenalty    *float64 `toml:"heavy_penalty,omitempty"`
	LightPenalty    *float64 `toml:"light_penalty,omitempty"`
}

// OutputConfig controls how amounts are printed.
type OutputConfig struct {
	Format string `toml:"format"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// EnvVariant overrides policy.variant from the config file.
const EnvVariant = "REIMBURSE_VARIANT"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Policy: PolicyConfig{
			Variant: "single-day",
		},
		Output: OutputConfig{
			Format: "plain",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reimburse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "reimburse")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path. A missing file yields defaults; the
// REIMBURSE_VARIANT environment variable is applied on top either way.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config location
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if v := os.Getenv(EnvVariant); v != "" {
		cfg.Policy.Variant = v
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating its directory if needed.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFile
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
