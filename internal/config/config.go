package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all taskpad configuration.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Logging     LoggingConfig     `yaml:"logging"`
	UI          UIConfig          `yaml:"ui"`
}

// StorageConfig selects the durable slot.
type StorageConfig struct {
	Backend    string `yaml:"backend"`     // file, sqlite, memory
	Path       string `yaml:"path"`        // sqlite database; relative paths resolve against the workspace
	Key        string `yaml:"key"`         // slot name
	QuotaBytes int    `yaml:"quota_bytes"` // memory backend only; 0 = unlimited
}

// PersistenceConfig configures when saves happen.
type PersistenceConfig struct {
	// Debounce batches saves; 0 writes through on every mutation.
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// UIConfig configures the interactive list.
type UIConfig struct {
	DefaultFilter string `yaml:"default_filter"`
	Theme         string `yaml:"theme"` // dark, light
	Watch         bool   `yaml:"watch"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    filepath.Join(".taskpad", "taskpad.db"),
			Key:     "todos",
		},
		Persistence: PersistenceConfig{
			Debounce: "0s",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		UI: UIConfig{
			DefaultFilter: "all",
			Theme:         "dark",
		},
	}
}

// DefaultPath returns the config location inside a workspace.
func DefaultPath(workspaceDir string) string {
	return filepath.Join(workspaceDir, ".taskpad", "config.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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

func (c *Config) applyEnvOverrides() {
	if backend := os.Getenv("TASKPAD_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("TASKPAD_STORAGE_PATH"); path != "" {
		c.Storage.Path = path
	}
	if key := os.Getenv("TASKPAD_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if quota := os.Getenv("TASKPAD_STORAGE_QUOTA"); quota != "" {
		if n, err := strconv.Atoi(quota); err == nil {
			c.Storage.QuotaBytes = n
		}
	}
	if level := os.Getenv("TASKPAD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if debounce := os.Getenv("TASKPAD_DEBOUNCE"); debounce != "" {
		c.Persistence.Debounce = debounce
	}
}

// Validate checks enumerated and duration fields.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q (use file, sqlite or memory)", c.Storage.Backend)
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative, got %d", c.Storage.QuotaBytes)
	}

	if d, err := c.parseDebounce(); err != nil {
		return err
	} else if d < 0 {
		return fmt.Errorf("persistence debounce must not be negative, got %s", d)
	}

	switch c.UI.DefaultFilter {
	case "", "all", "active", "completed":
	default:
		return fmt.Errorf("invalid default filter %q", c.UI.DefaultFilter)
	}

	return nil
}

// GetDebounce returns the save debounce, 0 meaning write-through.
func (c *Config) GetDebounce() time.Duration {
	d, err := c.parseDebounce()
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// StoragePath resolves Storage.Path against workspaceDir.
func (c *Config) StoragePath(workspaceDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(workspaceDir, c.Storage.Path)
}

func (c *Config) parseDebounce() (time.Duration, error) {
	if c.Persistence.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Persistence.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid persistence debounce %q: %w", c.Persistence.Debounce, err)
	}
	return d, nil
}
