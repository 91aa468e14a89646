package models

import (
	"time"

	"github.com/google/uuid"
)

// TrialResult is the outcome of a single trial
type TrialResult struct {
	SeasonID string `json:"season_id"`
	Winner   string `json:"winner"`
}

// WinTally counts trial wins per driver
type WinTally map[string]int

// Record increments the winner's count
func (t WinTally) Record(winner string) {
	t[winner]++
}

// Merge adds every count of other into t
func (t WinTally) Merge(other WinTally) {
	for driver, wins := range other {
		t[driver] += wins
	}
}

// Total returns the sum of all counts
func (t WinTally) Total() int {
	total := 0
	for _, wins := range t {
		total += wins
	}
	return total
}

// Probabilities converts counts into win probabilities over trials.
// Drivers without wins are absent.
func (t WinTally) Probabilities(trials int) map[string]float64 {
	probabilities := make(map[string]float64, len(t))
	if trials <= 0 {
		return probabilities
	}
	for driver, wins := range t {
		if wins <= 0 {
			continue
		}
		probabilities[driver] = float64(wins) / float64(trials)
	}
	return probabilities
}

// SimulationResult is the aggregate output of a simulation run
type SimulationResult struct {
	RunID           uuid.UUID          `json:"run_id"`
	TrialsRequested int                `json:"trials_requested"`
	TrialsCompleted int                `json:"trials_completed"`
	Seed            int64              `json:"seed"`
	Workers         int                `json:"workers"`
	Tally           WinTally           `json:"tally"`
	Probabilities   map[string]float64 `json:"probabilities"`
	SeasonDraws     map[string]int     `json:"season_draws"`
	Duration        time.Duration      `json:"duration"`
}

// Partial reports whether the run stopped before all requested trials
func (r *SimulationResult) Partial() bool {
	return r.TrialsCompleted < r.TrialsRequested
}
