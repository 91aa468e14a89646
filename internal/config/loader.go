// Package config provides configuration management for the pitwall simulator.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is used when no path is given
	DefaultConfigPath = "config/config.yaml"
	envPrefix         = "PITWALL"
)

// Load reads and parses the configuration from file and environment variables.
// Unset optional keys take their defaults. It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	SetDefaults(v)
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	SetDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// SetDefaults registers the default configuration values
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pitwall")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("simulation.trials", 10000)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 1)
	v.SetDefault("simulation.compound_policy", "strict")
	v.SetDefault("simulation.progress_interval_seconds", 2)
	v.SetDefault("simulation.adjustment.rain_penalty", 1.10)
	v.SetDefault("simulation.adjustment.soft_factor", 0.98)
	v.SetDefault("simulation.adjustment.medium_factor", 1.02)
	v.SetDefault("simulation.adjustment.hard_factor", 1.05)
	v.SetDefault("data_source.type", SourceTypeCSV)
	v.SetDefault("data_source.cache_enabled", true)
	v.SetDefault("data_source.cache_ttl_seconds", 3600)
	v.SetDefault("data_source.cache_dir", "")
	v.SetDefault("data_source.http.timeout_seconds", 30)
	v.SetDefault("data_source.http.max_retries", 3)
	v.SetDefault("data_source.http.rate_limit", 5.0)
	v.SetDefault("data_source.http.circuit_breaker_max", 5)
	v.SetDefault("metrics.enabled", false)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}
