package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/datasource"
	"github.com/yourusername/pitwall/internal/service"
	"github.com/yourusername/pitwall/internal/simulation"
)

func newValidateCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:          "validate",
		Short:        "Validate configuration and load every season without simulating",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfigWithSecrets(ctx, configFile)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log := newCommandLogger(cfg, stderr)
			loaded, err := loadSeasons(ctx, cfg, log)
			if err != nil {
				return err
			}

			policy, err := simulation.ParseCompoundPolicy(cfg.Simulation.CompoundPolicy)
			if err != nil {
				return err
			}
			validator := service.NewSeasonValidator(policy == simulation.PolicyFallback, log)
			if err := validator.ValidatePool(datasource.Datasets(loaded)); err != nil {
				return fmt.Errorf("invalid season pool: %w", err)
			}

			for _, l := range loaded {
				fmt.Fprintf(stdout, "%s: %d laps, %d drivers, %s (%s)\n",
					l.Season.ID, len(l.Season.Laps), len(l.Season.Drivers()), l.Season.Weather, l.Source)
			}
			fmt.Fprintln(stdout, "Configuration OK")
			return nil
		},
	}
}
