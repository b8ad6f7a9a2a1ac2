package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig holds SQLite configuration.
type StorageConfig struct {
	Path string `yaml:"path"`
	Dev  bool   `yaml:"dev"` // WAL journal
}

// ScoringConfig holds the archer's defaults applied when a request leaves them unset.
type ScoringConfig struct {
	Use2023Handicaps bool   `yaml:"use_2023_handicaps"`
	InnerTenArcher   bool   `yaml:"inner_ten_archer"`
	DefaultEndSize   int    `yaml:"default_end_size"`
	Golds            string `yaml:"golds"` // empty picks per round
}

// LoggingConfig holds log handler settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Default is used for anything the file and environment leave unset
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Path: "archery.db"},
		Scoring: ScoringConfig{DefaultEndSize: 6},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// LoadConfig loads the configuration from a YAML file. A missing file is not
// an error; defaults and environment overrides still apply.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("ARCHERY_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("ARCHERY_USE_2023"); v != "" {
		cfg.Scoring.Use2023Handicaps = v == "true"
	}
	if v := os.Getenv("ARCHERY_INNER_TEN"); v != "" {
		cfg.Scoring.InnerTenArcher = v == "true"
	}
	if v := os.Getenv("ARCHERY_END_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ARCHERY_END_SIZE value: %v", err)
		}
		cfg.Scoring.DefaultEndSize = n
	}
	if v := os.Getenv("ARCHERY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set")
	}
	if c.Scoring.DefaultEndSize < 1 || c.Scoring.DefaultEndSize > 12 {
		return fmt.Errorf("scoring.default_end_size must be between 1 and 12, got %d", c.Scoring.DefaultEndSize)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(l.Level))); err != nil {
		return level, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger writing to stderr
func (l LoggingConfig) NewLogger() *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Save writes the configuration back out, used by "config init"
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}
