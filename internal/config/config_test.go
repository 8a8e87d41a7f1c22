package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/tudu/internal/storage"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := DefaultRuntimeConfig()
	if cfg.DBPath != filepath.Join("/tmp/xdg-data", "tudu", "tudu.db") {
		t.Fatalf("unexpected db path default: %+v", cfg)
	}
	if cfg.StorageQuotaBytes != storage.DefaultQuotaBytes || cfg.Debug || cfg.Ephemeral {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.LogFile != filepath.Join("/tmp/xdg-data", "tudu", "tudu.log") {
		t.Fatalf("unexpected log file default: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TUDU_DB_PATH", "state/custom.db")
	t.Setenv("TUDU_STORAGE_QUOTA_BYTES", "2048")
	t.Setenv("TUDU_LOG_FILE", "")
	t.Setenv("TUDU_DEBUG", "yes")
	t.Setenv("TUDU_EPHEMERAL", "on")

	cfg := RuntimeConfigFromEnv(RuntimeConfig{DBPath: "x.db", StorageQuotaBytes: 1, LogFile: "x.log"})
	if cfg.DBPath != "state/custom.db" || cfg.StorageQuotaBytes != 2048 {
		t.Fatalf("unexpected storage overrides: %+v", cfg)
	}
	if cfg.LogFile != "" {
		t.Fatalf("expected empty log file to disable logging: %+v", cfg)
	}
	if !cfg.Debug || !cfg.Ephemeral {
		t.Fatalf("expected bool overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TUDU_STORAGE_QUOTA_BYTES", "lots")
	t.Setenv("TUDU_DEBUG", "maybe")

	base := RuntimeConfig{StorageQuotaBytes: 10, Debug: true}
	cfg := RuntimeConfigFromEnv(base)
	if cfg.StorageQuotaBytes != 10 || !cfg.Debug {
		t.Fatalf("expected base kept, got %+v", cfg)
	}
}

func TestLoadFileOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /srv/tudu/list.db\nstorage_quota_bytes: 4096\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	base := RuntimeConfig{DBPath: "default.db", StorageQuotaBytes: 1, LogFile: "keep.log"}
	cfg, err := LoadFile(base, path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.DBPath != "/srv/tudu/list.db" || cfg.StorageQuotaBytes != 4096 {
		t.Fatalf("unexpected file values: %+v", cfg)
	}
	if cfg.LogFile != "keep.log" {
		t.Fatalf("expected missing key to keep base value: %+v", cfg)
	}
}

func TestLoadMissingDefaultFileFallsBackToEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TUDU_DEBUG", "1")
	cfg, err := Load(RuntimeConfig{DBPath: "a.db"}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "a.db" || !cfg.Debug {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(RuntimeConfig{DBPath: "a.db"}, filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: file.db\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TUDU_DB_PATH", "env.db")
	cfg, err := Load(RuntimeConfig{}, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "env.db" {
		t.Fatalf("expected env to win, got %+v", cfg)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(RuntimeConfig{}, path); err == nil {
		t.Fatal("expected error for broken yaml")
	}
}
