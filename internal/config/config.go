// Package config loads simulation settings from a dominion.yaml file,
// with sensible defaults when the file or a key is absent.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of a simulation.
type Config struct {
	Seed  int64 `mapstructure:"seed"`
	Turns int   `mapstructure:"turns"`

	DatabasePath string `mapstructure:"database_path"`
	ProfilesPath string `mapstructure:"profiles_path"`

	Galaxy struct {
		Width   int     `mapstructure:"width"`
		Height  int     `mapstructure:"height"`
		Density float64 `mapstructure:"density"`
	} `mapstructure:"galaxy"`

	Pool struct {
		MaxActiveAgentsPerEmpire   int `mapstructure:"max_active_agents_per_empire"`
		MinTurnsBetweenRecruitment int `mapstructure:"min_turns_between_recruitment"`
	} `mapstructure:"pool"`
}

// Load reads configuration from the given path, or from dominion.yaml
// in the working directory when path is empty. A missing file yields
// pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("seed", 42)
	v.SetDefault("turns", 60)
	v.SetDefault("database_path", "data/dominion.db")
	v.SetDefault("profiles_path", "data/profiles.yaml")
	v.SetDefault("galaxy.width", 40)
	v.SetDefault("galaxy.height", 30)
	v.SetDefault("galaxy.density", 0.62)
	v.SetDefault("pool.max_active_agents_per_empire", 5)
	v.SetDefault("pool.min_turns_between_recruitment", 5)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dominion")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
