package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andy/countdown/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Countdown settings
	Timer TimerConfig `yaml:"timer"`

	// Journal database settings
	Database DatabaseConfig `yaml:"database"`

	History HistoryConfig `yaml:"history"`

	Log LogConfig `yaml:"log"`
}

type TimerConfig struct {
	Default      domain.PackedTime `yaml:"default"`       // Packed HHMMSS (500 = 5 minutes)
	TickInterval time.Duration     `yaml:"tick_interval"` // Period between ticks
	StopAtZero   bool              `yaml:"stop_at_zero"`  // Clamp at zero instead of counting negative
	Autostart    bool              `yaml:"autostart"`     // Start counting as soon as the TUI opens
}

type DatabaseConfig struct {
	Path      string `yaml:"path"`      // Path to SQLite database
	Encrypted bool   `yaml:"encrypted"` // Use sqlcipher with a keyring password
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"` // Record countdown events
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty disables logging
}

// configDir returns ~/.config/countdown
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "countdown")
}

// DefaultConfigPath returns ~/.config/countdown/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()
	return &Config{
		Timer: TimerConfig{
			Default:      500,
			TickInterval: domain.DefaultTickInterval,
			StopAtZero:   false,
			Autostart:    true,
		},
		Database: DatabaseConfig{
			Path:      filepath.Join(dir, "countdown.db"),
			Encrypted: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "countdown.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate checks values that would make the countdown unusable
func (c *Config) Validate() error {
	if c.Timer.Default < 0 {
		return fmt.Errorf("timer.default must not be negative, got %d", c.Timer.Default)
	}
	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval must be positive, got %s", c.Timer.TickInterval)
	}
	if c.History.Enabled && c.Database.Path == "" {
		return fmt.Errorf("database.path is required when history is enabled")
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories for the database and log file
func (c *Config) EnsureDirectories() error {
	if c.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
			return err
		}
	}

	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0755); err != nil {
			return err
		}
	}

	return nil
}
