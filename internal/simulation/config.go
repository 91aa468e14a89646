package simulation

import (
	"fmt"
	"time"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/models"
)

// DefaultTrials is the trial count used when none is configured
const DefaultTrials = 10000

// Config holds the settings of one simulation run
type Config struct {
	Trials           int
	Seed             int64
	Workers          int
	ProgressInterval time.Duration
	Adjustment       AdjustmentModel
}

// FromConfig converts app config to simulation config
func FromConfig(cfg *config.SimulationConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("simulation config is required")
	}

	policy, err := ParseCompoundPolicy(cfg.CompoundPolicy)
	if err != nil {
		return Config{}, err
	}

	adjustment := DefaultAdjustmentModel()
	adjustment.Policy = policy
	if cfg.Adjustment.RainPenalty > 0 {
		adjustment.RainPenalty = cfg.Adjustment.RainPenalty
	}
	if cfg.Adjustment.SoftFactor > 0 {
		adjustment.SoftFactor = cfg.Adjustment.SoftFactor
	}
	if cfg.Adjustment.MediumFactor > 0 {
		adjustment.MediumFactor = cfg.Adjustment.MediumFactor
	}
	if cfg.Adjustment.HardFactor > 0 {
		adjustment.HardFactor = cfg.Adjustment.HardFactor
	}

	sim := Config{
		Trials:           cfg.Trials,
		Seed:             cfg.Seed,
		Workers:          cfg.Workers,
		ProgressInterval: time.Duration(cfg.ProgressIntervalSeconds) * time.Second,
		Adjustment:       adjustment,
	}
	if sim.Workers <= 0 {
		sim.Workers = 1
	}

	return sim, sim.Validate()
}

// Validate validates simulation parameters
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: got %d", models.ErrInvalidTrialCount, c.Trials)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	return c.Adjustment.Validate()
}
