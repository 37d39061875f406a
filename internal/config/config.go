package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"todocard/internal/store"
)

const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	Backend        string `json:"backend"`
	DataPath       string `json:"data_path"`
	ExportDir      string `json:"export_dir"`
	GoogleListID   string `json:"google_list_id"`
	RefreshSeconds int    `json:"refresh_seconds"`
	Theme          string `json:"theme"`
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	normalize(&cfg)
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func Default() *Config {
	return &Config{
		Backend:        store.BackendFile,
		DataPath:       "",
		ExportDir:      "",
		GoogleListID:   "",
		RefreshSeconds: 0,
		Theme:          ThemeAuto,
	}
}

func LoadOrCreate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Default()
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that normalize cannot repair.
func (c *Config) Validate() error {
	if !store.ValidBackend(c.Backend) {
		return fmt.Errorf("unknown backend: %s (use %s)", c.Backend, strings.Join(store.Backends(), ", "))
	}
	if c.Backend == store.BackendGoogle && c.GoogleListID == "" {
		return fmt.Errorf("backend google needs google_list_id (run `todocard setup`)")
	}
	return nil
}

// Set updates one field by its JSON key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "backend":
		c.Backend = value
	case "data_path":
		c.DataPath = value
	case "export_dir":
		c.ExportDir = value
	case "google_list_id":
		c.GoogleListID = value
	case "refresh_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("refresh_seconds must be a non-negative integer")
		}
		c.RefreshSeconds = n
	case "theme":
		c.Theme = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	normalize(c)
	return c.Validate()
}

func normalize(cfg *Config) {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = store.BackendFile
	}
	if cfg.RefreshSeconds < 0 {
		cfg.RefreshSeconds = 0
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	switch cfg.Theme {
	case ThemeDark, ThemeLight:
	default:
		cfg.Theme = ThemeAuto
	}
	cfg.DataPath = strings.TrimSpace(cfg.DataPath)
	cfg.ExportDir = strings.TrimSpace(cfg.ExportDir)
}
