// ABOUTME: Tests for liftlog configuration management.
// ABOUTME: Covers load, save, defaults, duration parsing, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/liftlog-test"}
	if got := cfg.GetDataDir(); got != "/tmp/liftlog-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/liftlog-test")
	}
	if got := cfg.GetDBPath(); got != "/tmp/liftlog-test/liftlog.db" {
		t.Errorf("GetDBPath() = %q", got)
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/lift-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "lift-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/liftlog", filepath.Join(home, "data/liftlog")},
		{"data/liftlog", "data/liftlog"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDurationGetters(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		tick     time.Duration
		cacheTTL time.Duration
	}{
		{"defaults", Config{}, DefaultTickInterval, DefaultCatalogCacheTTL},
		{"explicit", Config{TickInterval: "250ms", CatalogCacheTTL: "1h"}, 250 * time.Millisecond, time.Hour},
		{"garbage falls back", Config{TickInterval: "soon", CatalogCacheTTL: "-5m"}, DefaultTickInterval, DefaultCatalogCacheTTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetTickInterval(); got != tt.tick {
				t.Errorf("GetTickInterval() = %v, want %v", got, tt.tick)
			}
			if got := tt.cfg.GetCatalogCacheTTL(); got != tt.cacheTTL {
				t.Errorf("GetCatalogCacheTTL() = %v, want %v", got, tt.cacheTTL)
			}
		})
	}
}

func TestGetRecentLimit(t *testing.T) {
	if got := (&Config{}).GetRecentLimit(); got != DefaultRecentLimit {
		t.Errorf("default GetRecentLimit() = %d", got)
	}
	if got := (&Config{RecentLimit: 3}).GetRecentLimit(); got != 3 {
		t.Errorf("GetRecentLimit() = %d, want 3", got)
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":      DefaultLogLevel,
		"debug": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		"bogus": DefaultLogLevel,
	}
	for in, want := range tests {
		if got := (&Config{LogLevel: in}).GetLogLevel(); got != want {
			t.Errorf("GetLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.DataDir != "" || cfg.TickInterval != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		DataDir:      "/tmp/liftlog-data",
		TickInterval: "500ms",
		RecentLimit:  5,
		LogLevel:     "debug",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("config mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	if err := (&Config{RecentLimit: 4}).Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "liftlog")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "liftlog")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	want := filepath.Join(tmpDir, "liftlog", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	repo, err := cfg.OpenStorage(log.Logger)
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "liftlog.db")); os.IsNotExist(err) {
		t.Error("Expected liftlog.db to be created")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
