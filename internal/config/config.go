// Package config holds the command-line configuration, stored as YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// FileName is the config file name inside the data directory.
const FileName = "config.yaml"

// Config is the twisty command-line configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects where puzzle slots are kept.
type StoreConfig struct {
	// Backend is one of sqlite, badger or file.
	Backend storage.Backend `yaml:"backend"`
	// Dir is the data directory. Empty means ~/.twisty.
	Dir string `yaml:"dir,omitempty"`
	// History records scrambles and moves. Only the sqlite backend keeps it.
	History bool `yaml:"history"`
}

// PuzzleConfig holds defaults applied to commands.
type PuzzleConfig struct {
	// ScrambleLength is the number of moves per scramble.
	ScrambleLength int `yaml:"scramble_length"`
	// FrameRate is the tick rate of the interactive player.
	FrameRate int `yaml:"frame_rate"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives logs in addition to stderr when set.
	File string `yaml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: storage.BackendSQLite,
			History: true,
		},
		Puzzle: PuzzleConfig{
			ScrambleLength: twisty.ScrambleLength,
			FrameRate:      60,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns ~/.twisty/config.yaml.
func DefaultPath() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if b := os.Getenv("TWISTY_STORE"); b != "" {
		c.Store.Backend = storage.Backend(b)
	}
	if dir := os.Getenv("TWISTY_DATA_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if level := os.Getenv("TWISTY_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Store.Backend.Valid() {
		return fmt.Errorf("invalid store backend: %s (valid: %v)", c.Store.Backend, storage.Backends)
	}
	if c.Puzzle.ScrambleLength <= 0 {
		return fmt.Errorf("invalid scramble length: %d", c.Puzzle.ScrambleLength)
	}
	if c.Puzzle.FrameRate <= 0 || c.Puzzle.FrameRate > 240 {
		return fmt.Errorf("invalid frame rate: %d (valid: 1-240)", c.Puzzle.FrameRate)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return level, nil
}

// DataDir returns the configured data directory, defaulting to ~/.twisty.
func (c *Config) DataDir() (string, error) {
	if c.Store.Dir != "" {
		if err := os.MkdirAll(c.Store.Dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create data directory: %w", err)
		}
		return c.Store.Dir, nil
	}
	return storage.DefaultDir()
}

// HistoryEnabled reports whether scrambles and moves are recorded.
func (c *Config) HistoryEnabled() bool {
	return c.Store.History && c.Store.Backend == storage.BackendSQLite
}
