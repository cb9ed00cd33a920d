// ABOUTME: Habits configuration management with backend selection.
// ABOUTME: Handles settings, log level, and the storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/habits/internal/charm"
	"github.com/harperreed/habits/internal/storage"
)

// Backend names accepted by OpenStore.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Backends lists every supported backend.
var Backends = []string{BackendSQLite, BackendBadger, BackendCharm, BackendMemory}

// Config stores habits tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger",
	// "charm" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts habits.db here. Badger puts a kv/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/habits.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
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

// OpenStore creates a BlobStore implementation based on the configured backend.
func (c *Config) OpenStore() (storage.BlobStore, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.BlobStore, error) {
	var (
		store storage.BlobStore
		err   error
	)
	switch backend {
	case BackendSQLite:
		var db *storage.DB
		db, err = storage.Open(filepath.Join(dataDir, "habits.db"))
		store = db
	case BackendBadger:
		var kv *storage.BadgerStore
		kv, err = storage.OpenBadger(filepath.Join(dataDir, "kv"))
		store = kv
	case BackendCharm:
		var client *charm.Client
		client, err = charm.InitClient()
		store = client
	case BackendMemory:
		store = storage.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "habits", "config.json")
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
