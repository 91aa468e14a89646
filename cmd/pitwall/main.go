// Package main provides the pitwall CLI for estimating race win probabilities.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "Monte Carlo race win probabilities from historical seasons",
	Long: `pitwall resamples historical seasons, adjusts each lap for weather and tyre
compound, and reports how often each driver posts the lowest mean lap time.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.AddCommand(newSimulateCmd(os.Stdout, os.Stderr))
	rootCmd.AddCommand(newValidateCmd(os.Stdout, os.Stderr))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfigWithSecrets loads configuration and overlays AWS secrets when enabled.
// Validation is left to the caller so flag overrides can be applied first.
func loadConfigWithSecrets(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("PITWALL_AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when PITWALL_AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return cfg, nil
}

// newCommandLogger builds the logger for a command. Logs go to stderr so that
// stdout carries only the report.
func newCommandLogger(cfg *config.Config, stderr io.Writer) *logrus.Logger {
	log := logger.NewLoggerWithOutput(cfg.App.LogLevel, stderr)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Debug("Configuration loaded")
	return log
}
