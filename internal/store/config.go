package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"roadmap-cli/internal/model"
)

// DefaultSyncInterval is in minutes.
const DefaultSyncInterval = 5

type GlobalConfig struct {
	Sync model.SyncConfig `json:"sync"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.roadmap).
	if v := strings.TrimSpace(os.Getenv("ROADMAP_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roadmap"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the global config; a missing file yields defaults.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &GlobalConfig{Sync: model.SyncConfig{SyncInterval: DefaultSyncInterval}}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if cfg.Sync.SyncInterval <= 0 {
		cfg.Sync.SyncInterval = DefaultSyncInterval
	}
	return cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
