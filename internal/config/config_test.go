package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}

	if cfg.SwitchModifier != DefaultSwitchModifier {
		t.Errorf("SwitchModifier = %q, want %q", cfg.SwitchModifier, DefaultSwitchModifier)
	}
	if cfg.MoveModifier != DefaultMoveModifier {
		t.Errorf("MoveModifier = %q, want %q", cfg.MoveModifier, DefaultMoveModifier)
	}
	if cfg.SettleDelay() != 100*time.Millisecond {
		t.Errorf("SettleDelay() = %v, want 100ms", cfg.SettleDelay())
	}
	if !cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = false by default, want true")
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "switch_modifier: mod4\nsettle_delay_ms: 250\n")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}
	if cfg.SwitchModifier != "mod4" {
		t.Errorf("SwitchModifier = %q, want mod4", cfg.SwitchModifier)
	}
	if cfg.MoveModifier != DefaultMoveModifier {
		t.Errorf("MoveModifier = %q, want default %q", cfg.MoveModifier, DefaultMoveModifier)
	}
	if cfg.SettleDelay() != 250*time.Millisecond {
		t.Errorf("SettleDelay() = %v, want 250ms", cfg.SettleDelay())
	}
}

func TestLoadFromPath_DisableNotifications(t *testing.T) {
	path := writeConfig(t, "notifications: false\n")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}
	if cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true, want false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"same modifiers", func(c *Config) { c.MoveModifier = c.SwitchModifier }, true},
		{"negative settle", func(c *Config) { *c.SettleDelayMs = -1 }, true},
		{"huge settle", func(c *Config) { *c.SettleDelayMs = 60000 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"zero settle is valid", func(c *Config) { *c.SettleDelayMs = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "switch_modifier: [broken\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath accepted invalid YAML")
	}
}
