package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// MaxLines caps the retained scrollback history.
	MaxLines int `mapstructure:"max_lines"`
	// AutoScroll keeps the view pinned to the newest entry.
	AutoScroll bool `mapstructure:"auto_scroll"`
	// ChannelCapacity bounds the producer/consumer conduit.
	ChannelCapacity int `mapstructure:"channel_capacity"`
	// DrainInterval is the display drain cadence.
	DrainInterval time.Duration `mapstructure:"drain_interval"`
	// DrainBatch caps events consumed per drain cycle.
	DrainBatch int `mapstructure:"drain_batch"`
	// Level is the minimum severity shown in the console.
	Level string `mapstructure:"level"`
	// NoColor disables styled output.
	NoColor bool `mapstructure:"no_color"`
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		MaxLines:        1000,
		AutoScroll:      true,
		ChannelCapacity: 2048,
		DrainInterval:   50 * time.Millisecond,
		DrainBatch:      256,
		Level:           "trace",
	}
}

// Load loads configuration from files and environment.
// Config file search order (highest precedence first):
// 1. ./.logdeck.yaml or ./.logdeck.yml
// 2. ~/.logdeck.yaml or ~/.logdeck.yml
// 3. $XDG_CONFIG_HOME/logdeck/config.yaml (or ~/.config/logdeck/config.yaml)
// 4. /etc/logdeck/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded.
func ConfigFile() string {
	return findConfigFile()
}

// findConfigFile searches for a config file in standard locations.
func findConfigFile() string {
	names := []string{".logdeck.yaml", ".logdeck.yml", "logdeck.yaml", "logdeck.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "logdeck"))
	}
	searchPaths = append(searchPaths, "/etc/logdeck")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyEnvOverrides applies LOGDECK_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGDECK_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOGDECK_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxLines = n
		}
	}
	if v := os.Getenv("LOGDECK_AUTO_SCROLL"); v != "" {
		cfg.AutoScroll = v == "true" || v == "1"
	}
	if v := os.Getenv("LOGDECK_NO_COLOR"); v == "true" || v == "1" {
		cfg.NoColor = true
	}
}
