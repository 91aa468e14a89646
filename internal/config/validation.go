// Package config provides configuration management for the pitwall simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Custom tags; registration only fails on an empty tag name
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("compoundpolicy", validateCompoundPolicy)
	_ = v.RegisterValidation("weather", validateWeather)
	_ = v.RegisterValidation("sourcetype", validateSourceType)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateCompoundPolicy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "strict", "fallback":
		return true
	default:
		return false
	}
}

func validateWeather(fl validator.FieldLevel) bool {
	switch strings.ToUpper(fl.Field().String()) {
	case "DRY", "RAIN":
		return true
	default:
		return false
	}
}

func validateSourceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case SourceTypeCSV, SourceTypeHTTP, SourceTypePostgres:
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Seasons))
	for _, season := range cfg.Seasons {
		if seen[season.ID] {
			return fmt.Errorf("duplicate season id %q", season.ID)
		}
		seen[season.ID] = true

		switch cfg.DataSource.Type {
		case SourceTypeCSV:
			if season.LapsPath == "" {
				return fmt.Errorf("season %q requires laps_path for the csv data source", season.ID)
			}
		case SourceTypeHTTP:
			if season.LapsURL == "" {
				return fmt.Errorf("season %q requires laps_url for the http data source", season.ID)
			}
		}
	}

	if cfg.DataSource.Type == SourceTypePostgres && cfg.Database == nil {
		return fmt.Errorf("database configuration is required for the postgres data source")
	}

	if cfg.IsProduction() && cfg.Database != nil && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	if cfg.Simulation.Workers > cfg.Simulation.Trials {
		return fmt.Errorf("workers (%d) cannot exceed trials (%d)", cfg.Simulation.Workers, cfg.Simulation.Trials)
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "compoundpolicy":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: strict, fallback\n", field)
		case "weather":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: DRY, RAIN\n", field)
		case "sourcetype":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: csv, http, postgres\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
