// Package metrics defines simulation-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Simulation counter vectors
var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation runs by status",
	}, []string{"status"})

	SeasonDrawsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "season_draws_total",
		Help:      "Total number of times each season was sampled",
	}, []string{"season"})
)

// Simulation histograms
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitwall",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// Simulation gauge vectors
var (
	DriverWinProbability = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pitwall",
		Name:      "driver_win_probability",
		Help:      "Win probability of each driver from the latest simulation run",
	}, []string{"driver"})
)

// RecordSimulationRun records a simulation run.
// status should be one of: "success", "failure", "interrupted"
func RecordSimulationRun(status string, durationSeconds float64, trials int) {
	SimulationRunsTotal.WithLabelValues(status).Inc()
	SimulationDuration.Observe(durationSeconds)
	SimulationTrialsTotal.Add(float64(trials))
}

// RecordSeasonDraws adds per-season draw counts.
func RecordSeasonDraws(draws map[string]int) {
	for season, count := range draws {
		SeasonDrawsTotal.WithLabelValues(season).Add(float64(count))
	}
}

// UpdateWinProbabilities replaces the driver win probability gauges.
func UpdateWinProbabilities(probabilities map[string]float64) {
	DriverWinProbability.Reset()
	for driver, probability := range probabilities {
		DriverWinProbability.WithLabelValues(driver).Set(probability)
	}
}
