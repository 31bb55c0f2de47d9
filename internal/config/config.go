// Package config resolves runtime settings from defaults, the TOML config
// file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/hanzimem/internal/queue"
	"github.com/abhisek/hanzimem/internal/store"
)

// Ordering policy names accepted in config.
const (
	PolicyDueFirst  = "due_first"
	PolicyAlternate = "alternate"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	Learner    string
	BatchSize  int
	PoolWindow int
	Policy     string
	DBPath     string
	ListenAddr string
	Telemetry  bool
}

// FileConfig mirrors the TOML config file. Pointer fields distinguish
// "unset" from zero values.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Server   ServerConfig   `toml:"server"`
}

// PracticeConfig maps the [practice] table.
type PracticeConfig struct {
	Learner    *string `toml:"learner"`
	BatchSize  *int    `toml:"batch-size"`
	PoolWindow *int    `toml:"pool-window"`
	Policy     *string `toml:"policy"`
	DBPath     *string `toml:"db-path"`
	Telemetry  *bool   `toml:"telemetry"`
}

// ServerConfig maps the [server] table.
type ServerConfig struct {
	Listen *string `toml:"listen"`
}

// Default returns the baseline configuration.
func Default() Config {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		dbPath = "hanzimem.db"
	}
	return Config{
		Learner:    "default",
		BatchSize:  queue.DefaultBatchSize,
		PoolWindow: queue.DefaultPoolWindow,
		Policy:     PolicyDueFirst,
		DBPath:     dbPath,
		ListenAddr: "127.0.0.1:8471",
		Telemetry:  true,
	}
}

// DefaultPath returns the config file location: $HANZIMEM_CONFIG, then
// $XDG_CONFIG_HOME/hanzimem/config.toml, then ~/.config/hanzimem/config.toml.
func DefaultPath() string {
	if p := os.Getenv("HANZIMEM_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "hanzimem", "config.toml")
}

// LoadFile reads a TOML config from the given path. A missing file is not
// an error; it resolves to the empty FileConfig.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return fc, nil
}

// Load resolves the effective configuration: defaults, overlaid by the
// config file at path (DefaultPath if empty), overlaid by environment.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	cfg.applyFile(fc)
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(fc FileConfig) {
	if fc.Practice.Learner != nil {
		c.Learner = *fc.Practice.Learner
	}
	if fc.Practice.BatchSize != nil {
		c.BatchSize = *fc.Practice.BatchSize
	}
	if fc.Practice.PoolWindow != nil {
		c.PoolWindow = *fc.Practice.PoolWindow
	}
	if fc.Practice.Policy != nil {
		c.Policy = *fc.Practice.Policy
	}
	if fc.Practice.DBPath != nil {
		c.DBPath = *fc.Practice.DBPath
	}
	if fc.Practice.Telemetry != nil {
		c.Telemetry = *fc.Practice.Telemetry
	}
	if fc.Server.Listen != nil {
		c.ListenAddr = *fc.Server.Listen
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HANZIMEM_LEARNER"); v != "" {
		c.Learner = v
	}
	if v := os.Getenv("HANZIMEM_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv("HANZIMEM_POOL_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PoolWindow = n
		}
	}
	if v := os.Getenv("HANZIMEM_POLICY"); v != "" {
		c.Policy = v
	}
	if v := os.Getenv("HANZIMEM_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HANZIMEM_LISTEN"); v != "" {
		c.ListenAddr = v
	}
}

// Validate rejects out-of-range settings.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.PoolWindow <= 0 {
		return fmt.Errorf("pool window must be positive, got %d", c.PoolWindow)
	}
	if _, err := c.OrderingPolicy(); err != nil {
		return err
	}
	return nil
}

// OrderingPolicy maps the configured policy name to its implementation.
func (c Config) OrderingPolicy() (queue.OrderingPolicy, error) {
	switch c.Policy {
	case PolicyDueFirst, "":
		return queue.DueFirst{}, nil
	case PolicyAlternate:
		return queue.Alternate{}, nil
	default:
		return nil, fmt.Errorf("unknown ordering policy %q", c.Policy)
	}
}
