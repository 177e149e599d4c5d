// Package config handles configuration loading for lightcharts.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	Charts    ChartsConfig    `mapstructure:"charts"    yaml:"charts"`
	Datasets  DatasetsConfig  `mapstructure:"datasets"  yaml:"datasets"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// ChartsConfig holds default chart rendering parameters.
type ChartsConfig struct {
	Width   float64  `mapstructure:"width"   yaml:"width"`   // line/bar canvas width
	Height  float64  `mapstructure:"height"  yaml:"height"`  // line/bar canvas height
	Size    float64  `mapstructure:"size"    yaml:"size"`    // pie/radar canvas side
	Padding float64  `mapstructure:"padding" yaml:"padding"` // inner margin
	Palette []string `mapstructure:"palette" yaml:"palette"` // slice/bar color cycle
}

// DatasetsConfig holds the dataset store settings.
type DatasetsConfig struct {
	Dir   string `mapstructure:"dir"   yaml:"dir"`   // directory of JSON dataset files
	Watch bool   `mapstructure:"watch" yaml:"watch"` // reload on file changes
}

// DashboardConfig holds dashboard report settings.
type DashboardConfig struct {
	Title   string `mapstructure:"title"    yaml:"title"`
	FeedURL string `mapstructure:"feed_url" yaml:"feed_url"` // optional RSS/Atom activity source
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.lightcharts/config.yaml (home directory)
//  3. /etc/lightcharts/config.yaml (system)
//
// Environment variables override config file values.
// Format: LIGHTCHARTS_<SECTION>_<KEY>, e.g., LIGHTCHARTS_SERVER_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".lightcharts"))
	v.AddConfigPath("/etc/lightcharts")

	v.SetEnvPrefix("LIGHTCHARTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("LIGHTCHARTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	// Chart defaults
	v.SetDefault("charts.width", 600)
	v.SetDefault("charts.height", 300)
	v.SetDefault("charts.size", 240)
	v.SetDefault("charts.padding", 20)

	// Dataset defaults
	v.SetDefault("datasets.dir", "./datasets")
	v.SetDefault("datasets.watch", true)

	// Dashboard defaults
	v.SetDefault("dashboard.title", "HUNTIQ Dashboard")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
