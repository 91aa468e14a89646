// Package config provides configuration management for the pitwall simulator.
package config

import "time"

// Data source types
const (
	SourceTypeCSV      = "csv"
	SourceTypeHTTP     = "http"
	SourceTypePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Seasons    []SeasonConfig   `mapstructure:"seasons" validate:"required,min=1,dive"`
	DataSource DataSourceConfig `mapstructure:"data_source" validate:"required"`
	Database   *DatabaseConfig  `mapstructure:"database" validate:"omitempty"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SimulationConfig represents Monte Carlo simulation settings
type SimulationConfig struct {
	Trials                  int              `mapstructure:"trials" validate:"required,gt=0"`
	Seed                    int64            `mapstructure:"seed"`
	Workers                 int              `mapstructure:"workers" validate:"required,gt=0,lte=256"`
	CompoundPolicy          string           `mapstructure:"compound_policy" validate:"required,compoundpolicy"`
	ProgressIntervalSeconds int              `mapstructure:"progress_interval_seconds" validate:"gte=0"`
	Adjustment              AdjustmentConfig `mapstructure:"adjustment"`
}

// AdjustmentConfig overrides the lap time adjustment factors.
// Zero values fall back to the reference factors.
type AdjustmentConfig struct {
	RainPenalty  float64 `mapstructure:"rain_penalty" validate:"omitempty,gt=0"`
	SoftFactor   float64 `mapstructure:"soft_factor" validate:"omitempty,gt=0"`
	MediumFactor float64 `mapstructure:"medium_factor" validate:"omitempty,gt=0"`
	HardFactor   float64 `mapstructure:"hard_factor" validate:"omitempty,gt=0"`
}

// SeasonConfig describes where one reference season is loaded from
type SeasonConfig struct {
	ID          string `mapstructure:"id" validate:"required"`
	LapsPath    string `mapstructure:"laps_path"`
	WeatherPath string `mapstructure:"weather_path"`
	LapsURL     string `mapstructure:"laps_url" validate:"omitempty,url"`
	WeatherURL  string `mapstructure:"weather_url" validate:"omitempty,url"`
	Weather     string `mapstructure:"weather" validate:"omitempty,weather"`
}

// DataSourceConfig represents dataset loading configuration
type DataSourceConfig struct {
	Type            string           `mapstructure:"type" validate:"required,sourcetype"`
	CacheEnabled    bool             `mapstructure:"cache_enabled"`
	CacheTTLSeconds int              `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	CacheDir        string           `mapstructure:"cache_dir"`
	HTTP            HTTPSourceConfig `mapstructure:"http"`
}

// HTTPSourceConfig tunes the HTTP dataset client
type HTTPSourceConfig struct {
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path"`
	ListenAddr   string `mapstructure:"listen_addr" validate:"omitempty,hostname_port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the season cache TTL
func (c DataSourceConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SeasonIDs returns the configured season ids in order
func (c *Config) SeasonIDs() []string {
	ids := make([]string, 0, len(c.Seasons))
	for _, season := range c.Seasons {
		ids = append(ids, season.ID)
	}
	return ids
}
