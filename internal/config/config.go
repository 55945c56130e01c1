// ABOUTME: Yoroi configuration: file settings, environment overrides and backend factory.
// ABOUTME: OpenStorage wires the plain backend and the encrypted store into a repository.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/harperreed/yoroi/internal/kv"
	"github.com/harperreed/yoroi/internal/scheduler"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/joho/godotenv"
)

// Backend names accepted by OpenStorage.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// Config stores yoroi configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default), "sqlite" or "charm".
	Backend string `json:"backend,omitempty" env:"YOROI_BACKEND"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/yoroi.
	DataDir string `json:"data_dir,omitempty" env:"YOROI_DATA_DIR"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" env:"YOROI_LOG_LEVEL"`

	// BadgeSchedule is the cron spec for the badge daemon.
	BadgeSchedule string `json:"badge_schedule,omitempty" env:"YOROI_BADGE_SCHEDULE"`
}

// GetBackend returns the configured backend, defaulting to badger.
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendBadger
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

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetBadgeSchedule returns the badge daemon schedule.
func (c *Config) GetBadgeSchedule() string {
	if c.BadgeSchedule == "" {
		return scheduler.DefaultSchedule
	}
	return c.BadgeSchedule
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

// SecureDir is where the encrypted collections live.
func (c *Config) SecureDir() string {
	return filepath.Join(c.GetDataDir(), "secure")
}

// KeyPath is the master key file for the encrypted store.
func (c *Config) KeyPath() string {
	return filepath.Join(c.GetDataDir(), "master.key")
}

// OpenStorage builds the repository for the configured backend. Sensitive
// collections always go through an encrypted store keyed by KeyPath.
func (c *Config) OpenStorage(logger *log.Logger) (*storage.Store, error) {
	dataDir := c.GetDataDir()
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	plain, inner, err := c.openBackends(dataDir)
	if err != nil {
		return nil, err
	}

	secure := kv.NewSecureStore(inner, c.KeyPath())
	if err := secure.Unlock(); err != nil {
		return nil, errors.Join(fmt.Errorf("unlock secure store: %w", err), plain.Close(), inner.Close())
	}

	logger.Debug("storage opened", "backend", c.GetBackend(), "data_dir", dataDir)
	return storage.New(plain, secure, storage.WithLogger(logger)), nil
}

func (c *Config) openBackends(dataDir string) (kv.Store, kv.Store, error) {
	switch c.GetBackend() {
	case BackendBadger:
		p, err := kv.OpenBadger(filepath.Join(dataDir, "plain"))
		if err != nil {
			return nil, nil, err
		}
		s, err := kv.OpenBadger(c.SecureDir())
		if err != nil {
			return nil, nil, errors.Join(err, p.Close())
		}
		return p, s, nil
	case BackendSQLite:
		p, err := kv.OpenSQLite(filepath.Join(dataDir, "yoroi.db"))
		if err != nil {
			return nil, nil, err
		}
		s, err := kv.OpenSQLite(filepath.Join(dataDir, "secure.db"))
		if err != nil {
			return nil, nil, errors.Join(err, p.Close())
		}
		return p, s, nil
	case BackendCharm:
		p, err := kv.OpenCharm()
		if err != nil {
			return nil, nil, err
		}
		// Secrets never leave the device.
		s, err := kv.OpenBadger(c.SecureDir())
		if err != nil {
			return nil, nil, errors.Join(err, p.Close())
		}
		return p, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "yoroi", "config.json")
}

// Load reads config from disk, then applies a .env file in the working
// directory and YOROI_* environment variables on top.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads only the config file.
func LoadFile() (*Config, error) {
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
