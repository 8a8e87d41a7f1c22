// Package config resolves runtime settings from defaults, an optional YAML
// file and TUDU_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tudu/internal/storage"
	"github.com/spf13/viper"
)

const AppName = "tudu"

type RuntimeConfig struct {
	DBPath            string `mapstructure:"db_path" yaml:"db_path"`
	StorageQuotaBytes int64  `mapstructure:"storage_quota_bytes" yaml:"storage_quota_bytes"`
	LogFile           string `mapstructure:"log_file" yaml:"log_file"`
	Debug             bool   `mapstructure:"debug" yaml:"debug"`
	// Ephemeral keeps the list in memory only.
	Ephemeral bool `mapstructure:"ephemeral" yaml:"ephemeral"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	dataDir := DefaultDataDir()
	return RuntimeConfig{
		DBPath:            filepath.Join(dataDir, "tudu.db"),
		StorageQuotaBytes: storage.DefaultQuotaBytes,
		LogFile:           filepath.Join(dataDir, "tudu.log"),
		Debug:             false,
	}
}

// Load applies the file at path and then the environment on top of base. An
// empty path means DefaultConfigPath, which may be absent. An explicit path
// must exist.
func Load(base RuntimeConfig, path string) (RuntimeConfig, error) {
	defaulted := strings.TrimSpace(path) == ""
	if defaulted {
		path = DefaultConfigPath()
	}
	cfg, err := LoadFile(base, path)
	if err != nil {
		if !defaulted || !errors.Is(err, os.ErrNotExist) {
			return base, fmt.Errorf("load config: %w", err)
		}
		cfg = base
	}
	return RuntimeConfigFromEnv(cfg), nil
}

// LoadFile overlays the YAML file at path on base. Keys missing from the
// file keep their base value.
func LoadFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return base, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := base
	if err := v.Unmarshal(&cfg); err != nil {
		return base, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TUDU_DB_PATH")); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v, ok := getEnvInt("TUDU_STORAGE_QUOTA_BYTES"); ok && v > 0 {
		cfg.StorageQuotaBytes = int64(v)
	}
	if v, ok := os.LookupEnv("TUDU_LOG_FILE"); ok {
		cfg.LogFile = expandHome(strings.TrimSpace(v))
	}
	if v, ok := getEnvBool("TUDU_DEBUG"); ok {
		cfg.Debug = v
	}
	if v, ok := getEnvBool("TUDU_EPHEMERAL"); ok {
		cfg.Ephemeral = v
	}
	return cfg
}

// DefaultConfigPath is $XDG_CONFIG_HOME/tudu/config.yaml, falling back to
// ~/.config/tudu/config.yaml.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(AppName, "config.yaml")
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}

// DefaultDataDir is $XDG_DATA_HOME/tudu, falling back to
// ~/.local/share/tudu.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
