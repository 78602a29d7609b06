// Package config loads the deskhop YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or a field is omitted.
const (
	DefaultSwitchModifier = "control"
	DefaultMoveModifier   = "control-shift"
	DefaultSettleDelayMs  = 100
	DefaultLogLevel       = "info"

	maxSettleDelayMs = 5000
)

// Config is the daemon configuration.
type Config struct {
	// SwitchModifier is held with a digit to switch desktops (keybind
	// sequence syntax, e.g. "control", "mod4").
	SwitchModifier string `yaml:"switch_modifier"`

	// MoveModifier is held with a digit to move the foreground window.
	MoveModifier string `yaml:"move_modifier"`

	// SettleDelayMs is the pause after a desktop switch before focus is
	// restored, giving the window manager time to finish its transition.
	// Explicit 0 disables the pause.
	SettleDelayMs *int `yaml:"settle_delay_ms"`

	// Notifications enables desktop notifications for operation failures.
	// Defaults to true.
	Notifications *bool `yaml:"notifications"`

	// LogLevel controls logging verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	settle := DefaultSettleDelayMs
	return &Config{
		SwitchModifier: DefaultSwitchModifier,
		MoveModifier:   DefaultMoveModifier,
		SettleDelayMs:  &settle,
		LogLevel:       DefaultLogLevel,
	}
}

// DefaultConfigPath returns ~/.config/deskhop/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskhop", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file is
// not an error: defaults are returned.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads, defaults, and validates the configuration at path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SwitchModifier == "" {
		c.SwitchModifier = DefaultSwitchModifier
	}
	if c.MoveModifier == "" {
		c.MoveModifier = DefaultMoveModifier
	}
	if c.SettleDelayMs == nil {
		settle := DefaultSettleDelayMs
		c.SettleDelayMs = &settle
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.SwitchModifier == c.MoveModifier {
		return fmt.Errorf("switch_modifier and move_modifier must differ (both %q)", c.SwitchModifier)
	}
	if c.SettleDelayMs != nil && (*c.SettleDelayMs < 0 || *c.SettleDelayMs > maxSettleDelayMs) {
		return fmt.Errorf("settle_delay_ms %d out of range [0,%d]", *c.SettleDelayMs, maxSettleDelayMs)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// SettleDelay returns the settle delay as a duration.
func (c *Config) SettleDelay() time.Duration {
	if c.SettleDelayMs == nil {
		return DefaultSettleDelayMs * time.Millisecond
	}
	return time.Duration(*c.SettleDelayMs) * time.Millisecond
}

// NotificationsEnabled reports whether failure notifications should be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
