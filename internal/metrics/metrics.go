// Package metrics provides the Prometheus registry for simulation runs.
package metrics

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "simulation_trials_total",
		Help:      "Total number of simulation trials executed",
	})
	SeasonLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "season_loads_total",
		Help:      "Total number of season dataset loads by source and status",
	}, []string{"source", "status"})
)

// Gauge metrics
var (
	SeasonCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pitwall",
		Name:      "season_cache_hit_ratio",
		Help:      "Hit ratio of the season dataset cache",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SimulationTrialsTotal)
		registry.MustRegister(SeasonLoadsTotal)
		registry.MustRegister(SeasonCacheHitRatio)

		// Register simulation metrics
		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(DriverWinProbability)
		registry.MustRegister(SeasonDrawsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry in the node exporter textfile format.
func WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// RecordSeasonLoad records a season dataset load.
// status should be one of: "success", "failure"
func RecordSeasonLoad(source, status string) {
	SeasonLoadsTotal.WithLabelValues(source, status).Inc()
}

// UpdateSeasonCacheHitRatio updates the season cache hit ratio gauge.
func UpdateSeasonCacheHitRatio(ratio float64) {
	SeasonCacheHitRatio.Set(ratio)
}
