// Package logger provides simulation-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultProgressInterval is how often progress lines are emitted at most
const DefaultProgressInterval = 2 * time.Second

// SimulationLogger provides dedicated logging for simulation runs.
type SimulationLogger struct {
	*logrus.Entry
	progress *rate.Sometimes
}

// NewSimulationLogger creates a new simulation logger.
// A non-positive interval uses DefaultProgressInterval.
func NewSimulationLogger(baseLogger *logrus.Logger, progressInterval time.Duration) *SimulationLogger {
	if progressInterval <= 0 {
		progressInterval = DefaultProgressInterval
	}
	return &SimulationLogger{
		Entry:    baseLogger.WithField("component", "simulation"),
		progress: &rate.Sometimes{First: 1, Interval: progressInterval},
	}
}

// WithRun returns a logger tagged with a run id.
func (sl *SimulationLogger) WithRun(runID string) *SimulationLogger {
	return &SimulationLogger{
		Entry:    sl.WithField("run_id", runID),
		progress: sl.progress,
	}
}

// LogRunStarted logs the start of a simulation run.
func (sl *SimulationLogger) LogRunStarted(trials, workers int, seed int64, seasons []string) {
	sl.WithFields(logrus.Fields{
		"trials":  trials,
		"workers": workers,
		"seed":    seed,
		"seasons": seasons,
	}).Info("Simulation started")
}

// LogProgress logs trial progress, throttled to one line per interval.
// Safe for concurrent use by workers.
func (sl *SimulationLogger) LogProgress(completed, total int) {
	sl.progress.Do(func() {
		pct := 0.0
		if total > 0 {
			pct = float64(completed) / float64(total) * 100
		}
		sl.WithFields(logrus.Fields{
			"completed": completed,
			"total":     total,
			"percent":   pct,
		}).Debug("Simulation progress")
	})
}

// LogRunCompleted logs a finished run.
func (sl *SimulationLogger) LogRunCompleted(trialsCompleted, drivers int, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"trials_completed": trialsCompleted,
		"winning_drivers":  drivers,
		"duration_ms":      duration.Milliseconds(),
	}).Info("Simulation completed")
}

// LogRunInterrupted logs a run stopped before all trials ran.
func (sl *SimulationLogger) LogRunInterrupted(trialsCompleted, trialsRequested int, err error) {
	sl.WithFields(logrus.Fields{
		"trials_completed": trialsCompleted,
		"trials_requested": trialsRequested,
		"error":            err.Error(),
	}).Warn("Simulation interrupted, partial tally kept")
}

// LogSeasonLoaded logs a loaded season dataset.
func (sl *SimulationLogger) LogSeasonLoaded(seasonID, source, weather string, laps, drivers, skipped int) {
	sl.WithFields(logrus.Fields{
		"season_id":    seasonID,
		"source":       source,
		"weather":      weather,
		"laps":         laps,
		"drivers":      drivers,
		"skipped_laps": skipped,
	}).Info("Season loaded")
}
