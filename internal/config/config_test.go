package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	minimalConfigPath            = "testdata/minimal_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedErrorMsg             = "expected validation error, got nil"
	testDBPassword               = "TEST_DB_PASSWORD"
	expandedSecretValue          = "expanded_secret_value"
)

func loadValid(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	return cfg
}

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg := loadValid(t)

	if cfg.App.Name != "pitwall" {
		t.Errorf("expected app name 'pitwall', got '%s'", cfg.App.Name)
	}
	if cfg.Simulation.Trials != 5000 {
		t.Errorf("expected 5000 trials, got %d", cfg.Simulation.Trials)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Simulation.Seed)
	}
	if got := cfg.SeasonIDs(); len(got) != 2 || got[0] != "dutch-2021" || got[1] != "dutch-2022" {
		t.Errorf("unexpected season ids %v", got)
	}
	if cfg.Seasons[1].Weather != "RAIN" {
		t.Errorf("expected explicit RAIN weather, got '%s'", cfg.Seasons[1].Weather)
	}
	if cfg.Database == nil || cfg.Database.Port != 5432 {
		t.Errorf("expected database port 5432")
	}
}

// TestLoadConfigAppliesDefaults tests that unset keys take their defaults
func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := Load(minimalConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Simulation.Trials != 10000 {
		t.Errorf("expected default 10000 trials, got %d", cfg.Simulation.Trials)
	}
	if cfg.Simulation.Workers != 1 {
		t.Errorf("expected default 1 worker, got %d", cfg.Simulation.Workers)
	}
	if cfg.Simulation.CompoundPolicy != "strict" {
		t.Errorf("expected default strict policy, got '%s'", cfg.Simulation.CompoundPolicy)
	}
	if cfg.Simulation.Adjustment.RainPenalty != 1.10 {
		t.Errorf("expected default rain penalty 1.10, got %v", cfg.Simulation.Adjustment.RainPenalty)
	}
	if cfg.DataSource.Type != SourceTypeCSV {
		t.Errorf("expected csv data source, got '%s'", cfg.DataSource.Type)
	}
	if cfg.Database != nil {
		t.Errorf("expected no database block")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults apply without a file
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.App.Name != "pitwall" {
		t.Errorf("expected default app name, got '%s'", cfg.App.Name)
	}
}

// TestLoadConfigEnvironmentVariables tests environment overrides
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("PITWALL_SIMULATION_TRIALS", "777")

	cfg := loadValid(t)
	if cfg.Simulation.Trials != 777 {
		t.Errorf("expected env override 777, got %d", cfg.Simulation.Trials)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests ${VAR} expansion
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testDBPassword, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	if cfg.Database.Password != expandedSecretValue {
		t.Errorf("expected password '%s', got '%s'", expandedSecretValue, cfg.Database.Password)
	}
}

// TestValidateSuccess tests validating a valid configuration
func TestValidateSuccess(t *testing.T) {
	if err := Validate(loadValid(t)); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid environment", func(c *Config) { c.App.Environment = "invalid" }, "Environment"},
		{"invalid log level", func(c *Config) { c.App.LogLevel = "verbose" }, "LogLevel"},
		{"zero trials", func(c *Config) { c.Simulation.Trials = 0 }, "Trials"},
		{"invalid policy", func(c *Config) { c.Simulation.CompoundPolicy = "lenient" }, "strict, fallback"},
		{"invalid weather", func(c *Config) { c.Seasons[0].Weather = "FOG" }, "DRY, RAIN"},
		{"invalid source", func(c *Config) { c.DataSource.Type = "ftp" }, "csv, http, postgres"},
		{"no seasons", func(c *Config) { c.Seasons = nil }, "Seasons"},
		{"duplicate season", func(c *Config) { c.Seasons[1].ID = c.Seasons[0].ID }, "duplicate season"},
		{"missing laps path", func(c *Config) { c.Seasons[0].LapsPath = "" }, "laps_path"},
		{"http without url", func(c *Config) { c.DataSource.Type = SourceTypeHTTP }, "laps_url"},
		{"postgres without database", func(c *Config) {
			c.DataSource.Type = SourceTypePostgres
			c.Database = nil
		}, "database configuration"},
		{"production without ssl", func(c *Config) { c.App.Environment = "production" }, "SSL"},
		{"workers exceed trials", func(c *Config) {
			c.Simulation.Trials = 2
			c.Simulation.Workers = 4
		}, "workers"},
		{"negative factor", func(c *Config) { c.Simulation.Adjustment.SoftFactor = -1 }, "SoftFactor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal(expectedErrorMsg)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "staging"}}
	if !cfg.IsStaging() || cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("expected staging only")
	}
}

func TestOverlaySecrets(t *testing.T) {
	cfg := loadValid(t)
	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "from-aws"})

	if cfg.Database.Password != "from-aws" {
		t.Errorf("expected overlaid password, got '%s'", cfg.Database.Password)
	}
	if cfg.Database.User != "pitwall" {
		t.Errorf("expected user unchanged, got '%s'", cfg.Database.User)
	}

	cfg.Database = nil
	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "ignored"})
}

func TestCacheTTL(t *testing.T) {
	if got := (DataSourceConfig{CacheTTLSeconds: 90}).CacheTTL().Seconds(); got != 90 {
		t.Errorf("expected 90s, got %v", got)
	}
}

func TestMain(m *testing.M) {
	os.Unsetenv(testDBPassword)
	os.Exit(m.Run())
}
