package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/nikostojak/repertoire/internal/adaptive"
)

// Config holds trainer configuration loaded from the config file and
// environment variables.
type Config struct {
	UserID              string  `mapstructure:"user_id"`              // learner identifier for events and review state
	SessionSize         int     `mapstructure:"session_size"`         // questions per training session
	DailyLimit          int     `mapstructure:"daily_limit"`          // max reviews scheduled per day
	TimeBudgetSecs      float64 `mapstructure:"time_budget_secs"`     // per-move time budget for difficulty advice
	PreferredDifficulty float64 `mapstructure:"preferred_difficulty"` // used when adaptive mode is off

	Adaptive AdaptiveConfig `mapstructure:"adaptive"`
}

// AdaptiveConfig is the config-file form of the adaptive settings.
type AdaptiveConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	Sensitivity   float64 `mapstructure:"sensitivity"`
	MinDifficulty float64 `mapstructure:"min_difficulty"`
	MaxDifficulty float64 `mapstructure:"max_difficulty"`
}

// Settings converts the adaptive section to the domain type.
func (c *Config) Settings() adaptive.AdaptiveSettings {
	return adaptive.AdaptiveSettings{
		Enabled:       c.Adaptive.Enabled,
		Sensitivity:   c.Adaptive.Sensitivity,
		MinDifficulty: c.Adaptive.MinDifficulty,
		MaxDifficulty: c.Adaptive.MaxDifficulty,
	}
}

// Load reads configuration from $XDG_CONFIG_HOME/repertoire/config.yaml
// (falling back to ~/.config) and REPERTOIRE_* environment variables.
// A missing config file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("user_id", "local")
	v.SetDefault("session_size", 10)
	v.SetDefault("daily_limit", 20)
	v.SetDefault("time_budget_secs", adaptive.DefaultTimeBudget)
	v.SetDefault("preferred_difficulty", 3.0)
	v.SetDefault("adaptive.enabled", true)
	v.SetDefault("adaptive.sensitivity", 1.0)
	v.SetDefault("adaptive.min_difficulty", 1.0)
	v.SetDefault("adaptive.max_difficulty", 5.0)

	v.SetEnvPrefix("repertoire")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSize < 1 {
		return fmt.Errorf("config: session_size must be at least 1, got %d", c.SessionSize)
	}
	if c.DailyLimit < 1 {
		return fmt.Errorf("config: daily_limit must be at least 1, got %d", c.DailyLimit)
	}
	if c.TimeBudgetSecs <= 0 {
		return fmt.Errorf("config: time_budget_secs must be positive, got %v", c.TimeBudgetSecs)
	}
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// configDir resolves the directory searched for config.yaml.
func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "repertoire"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "repertoire"), nil
}
