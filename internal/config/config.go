package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
const EnvPrefix = "SYSBROWSE"

// SettingsConfig selects where browser settings are persisted.
type SettingsConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	// Watch reloads settings when the file changes on disk (TOML only).
	Watch bool `mapstructure:"watch"`
}

// Config holds all runtime configuration for a sysbrowse session.
// Values are populated from .sysbrowse.yaml, SYSBROWSE_* env vars, and CLI flags.
type Config struct {
	Settings      SettingsConfig `mapstructure:"settings"`
	ScenePath     string         `mapstructure:"scene_path"`
	World         string         `mapstructure:"world"`
	TelemetryPath string         `mapstructure:"telemetry_path"`
	Verbose       bool           `mapstructure:"verbose"`
}

// BindEnv maps SYSBROWSE_* environment variables onto config keys, with
// nested keys joined by underscores (SYSBROWSE_SETTINGS_BACKEND).
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("settings.backend", "toml")
	viper.SetDefault("settings.path", ".sysbrowse/settings.toml")
	viper.SetDefault("settings.watch", true)
	viper.SetDefault("scene_path", ".sysbrowse/scene.toml")
	viper.SetDefault("world", "")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	switch cfg.Settings.Backend {
	case "toml", "sqlite":
	default:
		return Config{}, fmt.Errorf("config: settings.backend must be toml or sqlite, got %q", cfg.Settings.Backend)
	}
	return cfg, nil
}
