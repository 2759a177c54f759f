package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"match_go/internal/domain"
)

// Config holds every runtime setting of the engine process. Loaded from
// YAML, then overridden by environment variables for deploy-time knobs.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Engine struct {
		// Capacity fixes the order pool size. Size for peak resting
		// orders plus headroom; the pool cannot grow at runtime.
		Capacity  int `yaml:"capacity"`
		InboxSize int `yaml:"inbox_size"`
		// Depth shown by the CLI printer. State dumps use their own
		// fixed depth.
		SummaryDepth int `yaml:"summary_depth"`
	} `yaml:"engine"`

	Storage struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"storage"`

	Replay struct {
		// LogFile is where the demo saves and reloads the textual log.
		LogFile string `yaml:"log_file"`
	} `yaml:"replay"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfig returns a runnable configuration without any file.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "match_go"
	cfg.Engine.Capacity = 100_000
	cfg.Engine.InboxSize = 1024
	cfg.Engine.SummaryDepth = 10
	cfg.Replay.LogFile = "matching_engine.log"
	cfg.Logging.Level = "info"
	return cfg
}

// LoadConfig reads and parses the configuration file. A missing file is
// not an error: defaults apply, then env overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &domain.ConfigError{Field: path, Err: err}
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Engine.Capacity <= 0 {
		return &domain.ConfigError{Field: "engine.capacity", Err: fmt.Errorf("must be positive, got %d", c.Engine.Capacity)}
	}
	if c.Engine.InboxSize <= 0 {
		return &domain.ConfigError{Field: "engine.inbox_size", Err: fmt.Errorf("must be positive, got %d", c.Engine.InboxSize)}
	}
	if c.Engine.SummaryDepth <= 0 {
		return &domain.ConfigError{Field: "engine.summary_depth", Err: fmt.Errorf("must be positive, got %d", c.Engine.SummaryDepth)}
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return &domain.ConfigError{Field: "storage.path", Err: errors.New("required when storage is enabled")}
	}
	return nil
}

// overrideWithEnv applies environment variables over the loaded file.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("MATCH_ENGINE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Capacity = n
		}
	}
	if v := os.Getenv("MATCH_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
		cfg.Storage.Enabled = true
	}
	if v := os.Getenv("MATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
