package config

import (
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Settings.Backend", cfg.Settings.Backend, "toml"},
		{"Settings.Path", cfg.Settings.Path, ".sysbrowse/settings.toml"},
		{"Settings.Watch", cfg.Settings.Watch, true},
		{"ScenePath", cfg.ScenePath, ".sysbrowse/scene.toml"},
		{"World", cfg.World, ""},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "settings.backend",
			envKey: "SYSBROWSE_SETTINGS_BACKEND",
			envVal: "sqlite",
			field:  func(c Config) any { return c.Settings.Backend },
			want:   "sqlite",
		},
		{
			name:   "settings.path",
			envKey: "SYSBROWSE_SETTINGS_PATH",
			envVal: "/tmp/browser.db",
			field:  func(c Config) any { return c.Settings.Path },
			want:   "/tmp/browser.db",
		},
		{
			name:   "settings.watch",
			envKey: "SYSBROWSE_SETTINGS_WATCH",
			envVal: "false",
			field:  func(c Config) any { return c.Settings.Watch },
			want:   false,
		},
		{
			name:   "scene_path",
			envKey: "SYSBROWSE_SCENE_PATH",
			envVal: "/opt/scene.toml",
			field:  func(c Config) any { return c.ScenePath },
			want:   "/opt/scene.toml",
		},
		{
			name:   "world",
			envKey: "SYSBROWSE_WORLD",
			envVal: "PIE_Arena",
			field:  func(c Config) any { return c.World },
			want:   "PIE_Arena",
		},
		{
			name:   "verbose",
			envKey: "SYSBROWSE_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			BindEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	resetViper()
	viper.Set("settings.backend", "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unknown settings backend")
	}
}
