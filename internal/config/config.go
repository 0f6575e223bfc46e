// Package config loads and saves the debtburn TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all debtburn configuration.
type Config struct {
	Plan          PlanConfig          `toml:"plan"`
	EmergencyFund EmergencyFundConfig `toml:"emergency_fund"`
	Storage       StorageConfig       `toml:"storage"`
	Server        ServerConfig        `toml:"server"`
	Appearance    AppearanceConfig    `toml:"appearance"`
	Log           LogConfig           `toml:"log"`
}

// PlanConfig holds simulation defaults.
type PlanConfig struct {
	Years      int    `toml:"years"`
	Strategy   string `toml:"strategy"`
	MaxPeriods int    `toml:"max_periods,omitempty"`
}

// EmergencyFundConfig holds the default emergency fund. A nil target means
// no fund.
type EmergencyFundConfig struct {
	Target     *float64 `toml:"target,omitempty"`
	Percentage float64  `toml:"percentage"`
}

// StorageConfig selects where the scenario is saved.
type StorageConfig struct {
	Backend   string `toml:"backend"`
	Path      string `toml:"path,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr       string `toml:"addr"`
	RateLimit  int    `toml:"rate_limit"`
	RateWindow string `toml:"rate_window"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds the log level name (debug, info, warn, error).
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Plan: PlanConfig{
			Years:    5,
			Strategy: "avalanche",
		},
		EmergencyFund: EmergencyFundConfig{
			Percentage: 0.5,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
		},
		Server: ServerConfig{
			Addr:       "127.0.0.1:8080",
			RateLimit:  60,
			RateWindow: "1m",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "debtburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "debtburn")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the SQLite store.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "debtburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "debtburn")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's --config flag
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFile
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// StorageBackend returns the backend name from env var or config, in that
// order.
func StorageBackend(cfg Config) string {
	if b := os.Getenv("DEBTBURN_STORAGE"); b != "" {
		return b
	}
	return cfg.Storage.Backend
}

// RedisAddr returns the Redis address from env var or config, in that order.
func RedisAddr(cfg Config) string {
	if addr := os.Getenv("DEBTBURN_REDIS_ADDR"); addr != "" {
		return addr
	}
	return cfg.Storage.RedisAddr
}

// StoragePath returns the SQLite database path, defaulting into DataDir.
func StoragePath(cfg Config) string {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	return filepath.Join(DataDir(), "debtburn.db")
}

// RateWindow parses the server's refill window.
func RateWindow(cfg Config) (time.Duration, error) {
	d, err := time.ParseDuration(cfg.Server.RateWindow)
	if err != nil {
		return 0, fmt.Errorf("parsing server.rate_window: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server.rate_window must be positive, got %s", d)
	}
	return d, nil
}
