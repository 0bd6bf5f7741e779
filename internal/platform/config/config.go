package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"ascent/internal/platform/calendar"
)

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

type Goals struct {
	Boulder int `yaml:"boulder"`
	Rope    int `yaml:"rope"`
}

type Config struct {
	VaultPath     string
	StateDir      string
	DBPath        string
	KVDir         string
	ConfigPath    string
	Storage       string
	Goals         Goals
	WeekStartsOn  time.Weekday
	SessionPolicy string
	LogLevel      string
}

// fileConfig mirrors .ascent/config.yaml. Zero values keep the defaults.
type fileConfig struct {
	Storage       string `yaml:"storage"`
	Goals         Goals  `yaml:"goals"`
	WeekStartsOn  string `yaml:"week_starts_on"`
	SessionPolicy string `yaml:"session_policy"`
	LogLevel      string `yaml:"log_level"`
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	stateDir := filepath.Join(vaultPath, ".ascent")
	return Config{
		VaultPath:     vaultPath,
		StateDir:      stateDir,
		DBPath:        filepath.Join(stateDir, "ascent.db"),
		KVDir:         filepath.Join(stateDir, "kv"),
		ConfigPath:    filepath.Join(stateDir, "config.yaml"),
		Storage:       StorageSQLite,
		Goals:         Goals{Boulder: 10, Rope: 6},
		WeekStartsOn:  time.Monday,
		SessionPolicy: "reject",
		LogLevel:      "info",
	}, nil
}

// Load applies the vault's config.yaml on top of the defaults. A missing
// file is not an error.
func Load(vaultPath string) (Config, error) {
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.merge(file)
}

func (c Config) merge(file fileConfig) (Config, error) {
	switch file.Storage {
	case "":
	case StorageSQLite, StorageFile:
		c.Storage = file.Storage
	default:
		return Config{}, fmt.Errorf("unsupported storage %q", file.Storage)
	}
	if file.Goals.Boulder > 0 {
		c.Goals.Boulder = file.Goals.Boulder
	}
	if file.Goals.Rope > 0 {
		c.Goals.Rope = file.Goals.Rope
	}
	if file.WeekStartsOn != "" {
		wd, err := calendar.ParseWeekday(file.WeekStartsOn)
		if err != nil {
			return Config{}, err
		}
		c.WeekStartsOn = wd
	}
	if file.SessionPolicy != "" {
		c.SessionPolicy = file.SessionPolicy
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	return c, nil
}

// GoalFor returns the daily goal for a discipline name. Unknown or combined
// disciplines get the sum of both goals.
func (c Config) GoalFor(discipline string) int {
	switch discipline {
	case "boulder":
		return c.Goals.Boulder
	case "rope":
		return c.Goals.Rope
	default:
		return c.Goals.Boulder + c.Goals.Rope
	}
}
