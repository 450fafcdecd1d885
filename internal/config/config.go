package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"taskventure/internal/model"
	"taskventure/internal/progress"
)

// Config is the application configuration. Every key is optional; a missing
// config file just means defaults.
type Config struct {
	DBPath         string                 `mapstructure:"db_path"`
	LogLevel       string                 `mapstructure:"log_level"`
	LevelThreshold int                    `mapstructure:"level_threshold"`
	XP             XPConfig               `mapstructure:"xp"`
	Achievements   []model.AchievementDef `mapstructure:"achievements"`
}

// XPConfig is the per-difficulty award table as it appears in the file.
type XPConfig struct {
	Easy   int `mapstructure:"easy"`
	Medium int `mapstructure:"medium"`
	Hard   int `mapstructure:"hard"`
}

// DefaultConfigPath returns ~/.config/taskventure/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskventure", "config.yaml")
}

// DefaultDBPath returns ~/.taskventure.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".taskventure.db"), nil
}

// Load reads the config file at path (or the default location when path is
// empty), applies defaults, and validates the parts the engine will consume.
// A malformed catalog is a fatal configuration error, not a warning.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("log_level", "info")
	v.SetDefault("level_threshold", progress.DefaultLevelThreshold)
	v.SetDefault("xp.easy", 10)
	v.SetDefault("xp.medium", 20)
	v.SetDefault("xp.hard", 30)

	if path == "" {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.DBPath == "" {
		dbPath, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = dbPath
	}

	if _, err := cfg.EngineOptions(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EngineOptions converts the file representation into progress.Options,
// validating as progress.NewService would.
func (c *Config) EngineOptions() (progress.Options, error) {
	opts := progress.Options{
		LevelThreshold: c.LevelThreshold,
		XPTable: progress.XPTable{
			model.DifficultyEasy:   c.XP.Easy,
			model.DifficultyMedium: c.XP.Medium,
			model.DifficultyHard:   c.XP.Hard,
		},
	}
	if len(c.Achievements) > 0 {
		opts.Catalog = c.Achievements
	}

	if opts.LevelThreshold <= 0 {
		return progress.Options{}, fmt.Errorf("%w: level_threshold must be positive, got %d", progress.ErrInvalidCatalog, opts.LevelThreshold)
	}
	if opts.Catalog != nil {
		if err := progress.ValidateCatalog(opts.Catalog); err != nil {
			return progress.Options{}, err
		}
	}
	return opts, nil
}
