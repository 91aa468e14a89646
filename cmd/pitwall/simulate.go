package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/datasource"
	"github.com/yourusername/pitwall/internal/health"
	"github.com/yourusername/pitwall/internal/logger"
	"github.com/yourusername/pitwall/internal/metrics"
	"github.com/yourusername/pitwall/internal/simulation"
)

type simulateOptions struct {
	trials         int
	seed           int64
	workers        int
	compoundPolicy string
	summary        bool
}

func newSimulateCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Run the win probability simulation",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulate(ctx, cmd, opts, stdout, stderr)
		},
	}

	cmd.Flags().IntVarP(&opts.trials, "trials", "n", simulation.DefaultTrials, "Number of trials")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Base random seed (0 seeds from the clock)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "Number of concurrent workers")
	cmd.Flags().StringVar(&opts.compoundPolicy, "compound-policy", "", "Unknown compound handling: strict or fallback")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print run metadata after the report")

	return cmd
}

// applyOverrides copies explicitly set flags over the loaded configuration
func (o *simulateOptions) applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("trials") {
		cfg.Simulation.Trials = o.trials
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = o.seed
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers = o.workers
	}
	if flags.Changed("compound-policy") {
		cfg.Simulation.CompoundPolicy = o.compoundPolicy
	}
}

func runSimulate(ctx context.Context, cmd *cobra.Command, opts *simulateOptions, stdout, stderr io.Writer) error {
	cfg, err := loadConfigWithSecrets(ctx, configFile)
	if err != nil {
		return err
	}
	opts.applyOverrides(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newCommandLogger(cfg, stderr)
	status := startStatusServer(ctx, cfg, log)

	loaded, err := loadSeasons(ctx, cfg, log)
	if err != nil {
		return err
	}
	if status != nil {
		status.SetCheck("seasons", fmt.Sprintf("%d loaded", len(loaded)))
		status.SetPhase(health.PhaseRunning)
	}

	simCfg, err := simulation.FromConfig(&cfg.Simulation)
	if err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	engine, err := simulation.NewEngine(simCfg, datasource.Datasets(loaded), log)
	if err != nil {
		return err
	}

	result, runErr := engine.Run(ctx)
	if status != nil {
		status.SetPhase(health.PhaseCompleted)
	}
	if result != nil {
		if runErr != nil {
			fmt.Fprintf(stdout, "Partial result: %d of %d trials completed\n", result.TrialsCompleted, result.TrialsRequested)
		}
		fmt.Fprint(stdout, simulation.GenerateConsoleReport(result))
		if opts.summary {
			fmt.Fprintln(stdout)
			fmt.Fprint(stdout, simulation.GenerateSummary(result))
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			log.WithError(err).Warn("Failed to write metrics textfile")
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("simulation interrupted: %w", runErr)
		}
		return fmt.Errorf("simulation failed: %w", runErr)
	}
	return nil
}

// startStatusServer serves status and metrics for the length of the run when
// a listen address is configured
func startStatusServer(ctx context.Context, cfg *config.Config, log *logrus.Logger) *health.Server {
	if !cfg.Metrics.Enabled {
		return nil
	}
	metrics.InitRegistry()
	if cfg.Metrics.ListenAddr == "" {
		return nil
	}

	server := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Addr:        cfg.Metrics.ListenAddr,
		Logger:      log,
		Metrics:     metrics.Handler(),
	})
	if err := server.Start(ctx); err != nil {
		log.WithError(err).Warn("Failed to start status server")
		return nil
	}
	return server
}

// loadSeasons loads every configured season through the configured source
func loadSeasons(ctx context.Context, cfg *config.Config, log *logrus.Logger) ([]*datasource.LoadedSeason, error) {
	source, cleanup, err := datasource.NewFactory(cfg, log).NewSeasonSource(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	log.WithFields(logrus.Fields{
		"source":  source.Name(),
		"seasons": cfg.SeasonIDs(),
	}).Debug("Loading seasons")

	loaded, err := datasource.LoadSeasons(ctx, source, cfg.Seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to load seasons: %w", err)
	}

	simLogger := logger.NewSimulationLogger(log, 0)
	for _, l := range loaded {
		simLogger.LogSeasonLoaded(
			l.Season.ID,
			l.Source,
			string(l.Season.Weather),
			len(l.Season.Laps),
			len(l.Season.Drivers()),
			l.SkippedLaps,
		)
	}
	return loaded, nil
}
