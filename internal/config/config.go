// ABOUTME: liftlog configuration loaded from a JSON file at the XDG config path.
// ABOUTME: Getters apply defaults so an empty or missing file is a valid config.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/harperreed/liftlog/internal/storage"
)

// Defaults applied when a field is unset or unparseable.
const (
	DefaultTickInterval    = time.Second
	DefaultRecentLimit     = 8
	DefaultCatalogCacheTTL = 5 * time.Minute
	DefaultLogLevel        = zerolog.WarnLevel
)

// Config stores liftlog configuration.
type Config struct {
	// DataDir is the root directory for data storage; liftlog.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/liftlog.
	DataDir string `json:"data_dir,omitempty"`

	// TickInterval is how often live timers refresh, as a Go duration ("1s").
	TickInterval string `json:"tick_interval,omitempty"`

	// RecentLimit caps the recently used exercises offered when picking.
	RecentLimit int `json:"recent_limit,omitempty"`

	// CatalogCacheTTL bounds how long catalog lookups are cached ("5m").
	CatalogCacheTTL string `json:"catalog_cache_ttl,omitempty"`

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the SQLite database path inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), "liftlog.db")
}

// GetTickInterval returns the live display refresh interval.
func (c *Config) GetTickInterval() time.Duration {
	return parseDuration(c.TickInterval, DefaultTickInterval)
}

// GetRecentLimit returns how many recent exercises to offer.
func (c *Config) GetRecentLimit() int {
	if c.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return c.RecentLimit
}

// GetCatalogCacheTTL returns the catalog cache lifetime.
func (c *Config) GetCatalogCacheTTL() time.Duration {
	return parseDuration(c.CatalogCacheTTL, DefaultCatalogCacheTTL)
}

// GetLogLevel returns the configured log level.
func (c *Config) GetLogLevel() zerolog.Level {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return DefaultLogLevel
	}
	return lvl
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite database in the configured data directory.
func (c *Config) OpenStorage(logger zerolog.Logger) (*storage.DB, error) {
	return storage.Open(c.GetDBPath(), storage.WithLogger(logger))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "liftlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
