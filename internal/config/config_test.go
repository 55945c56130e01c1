// ABOUTME: Tests for yoroi configuration management.
// ABOUTME: Covers load, save, defaults, environment overrides, backend selection, and path expansion.
package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/yoroi/internal/logging"
	"github.com/harperreed/yoroi/internal/scheduler"
	"github.com/harperreed/yoroi/internal/storage"
)

func setupConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	for _, k := range []string{"YOROI_BACKEND", "YOROI_DATA_DIR", "YOROI_LOG_LEVEL", "YOROI_BADGE_SCHEDULE"} {
		t.Setenv(k, "")
	}
	return tmpDir
}

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != BackendBadger {
		t.Errorf("GetBackend() = %q, want %q", got, BackendBadger)
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "sqlite"}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got != storage.DataDir() {
		t.Errorf("GetDataDir() = %q, want %q", got, storage.DataDir())
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/yoroi-test"}
	if got := cfg.GetDataDir(); got != "/tmp/yoroi-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/yoroi-test")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/yoroi-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "yoroi-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestDefaultsForLevelAndSchedule(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q, want info", got)
	}
	if got := cfg.GetBadgeSchedule(); got != scheduler.DefaultSchedule {
		t.Errorf("GetBadgeSchedule() = %q, want %q", got, scheduler.DefaultSchedule)
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
		{"~/data/yoroi", filepath.Join(home, "data/yoroi")},
		{"data/yoroi", "data/yoroi"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	setupConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" {
		t.Errorf("Expected empty Backend, got %q", cfg.Backend)
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	setupConfigHome(t)

	cfg := &Config{
		Backend:       "sqlite",
		DataDir:       "/tmp/yoroi-data",
		LogLevel:      "debug",
		BadgeSchedule: "@hourly",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", *loaded, *cfg)
	}

	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perms = %o, want 600", perm)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	setupConfigHome(t)

	if err := (&Config{Backend: "sqlite", LogLevel: "warn"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("YOROI_BACKEND", "badger")
	t.Setenv("YOROI_DATA_DIR", "/srv/yoroi")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != "badger" {
		t.Errorf("Backend = %q, want badger", cfg.Backend)
	}
	if cfg.DataDir != "/srv/yoroi" {
		t.Errorf("DataDir = %q, want /srv/yoroi", cfg.DataDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want file value warn", cfg.LogLevel)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "yoroi")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := setupConfigHome(t)

	configDir := filepath.Join(tmpDir, "yoroi")
	if err := os.MkdirAll(configDir, 0750); err != nil {
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
	tmpDir := setupConfigHome(t)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "yoroi", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageBackends(t *testing.T) {
	for _, backend := range []string{BackendBadger, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dataDir := t.TempDir()
			cfg := &Config{Backend: backend, DataDir: dataDir}

			repo, err := cfg.OpenStorage(logging.Discard())
			if err != nil {
				t.Fatalf("OpenStorage() failed: %v", err)
			}

			ctx := context.Background()
			if _, err := repo.AddWorkout(ctx, "2026-02-10", "jjb"); err != nil {
				t.Fatalf("AddWorkout failed: %v", err)
			}
			if err := repo.SaveUserSettings(ctx, map[string]any{"username": "kenji"}); err != nil {
				t.Fatalf("SaveUserSettings failed: %v", err)
			}
			if err := repo.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			info, err := os.Stat(cfg.KeyPath())
			if err != nil {
				t.Fatalf("expected master key: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("master key perms = %o, want 600", perm)
			}

			reopened, err := cfg.OpenStorage(logging.Discard())
			if err != nil {
				t.Fatalf("reopen failed: %v", err)
			}
			defer reopened.Close()

			if got := len(reopened.GetAllWorkouts(ctx)); got != 1 {
				t.Errorf("workouts after reopen = %d, want 1", got)
			}
			settings := reopened.GetUserSettings(ctx)
			if settings.Username == nil || *settings.Username != "kenji" {
				t.Errorf("username after reopen = %v, want kenji", settings.Username)
			}
		})
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{
		Backend: "invalid",
		DataDir: t.TempDir(),
	}

	if _, err := cfg.OpenStorage(logging.Discard()); err == nil {
		t.Error("Expected error for invalid backend")
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
