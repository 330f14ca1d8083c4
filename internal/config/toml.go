// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Stats    StatsConfig    `toml:"stats"`
	Quality  QualityConfig  `toml:"quality"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	User       *string  `toml:"user"`
	Lang       *string  `toml:"lang"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakFactor *float64 `toml:"weak-factor"`
	WeakWindow *int     `toml:"weak-window"`
}

// StatsConfig maps statistics settings.
type StatsConfig struct {
	SessionGapMinutes *int `toml:"session-gap-minutes"`
	CurveWindow       *int `toml:"curve-window"`
}

// QualityConfig maps the result quality gate thresholds.
type QualityConfig struct {
	MinAccuracy          *float64 `toml:"min-accuracy"`
	ReasonableMinSeconds *int     `toml:"reasonable-min-seconds"`
	ReasonableMaxSeconds *int     `toml:"reasonable-max-seconds"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
