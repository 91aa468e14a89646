package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordSimulationRun(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(SimulationRunsTotal.WithLabelValues("success"))
	trialsBefore := testutil.ToFloat64(SimulationTrialsTotal)

	RecordSimulationRun("success", 0.25, 1000)

	assert.Equal(t, before+1, testutil.ToFloat64(SimulationRunsTotal.WithLabelValues("success")))
	assert.Equal(t, trialsBefore+1000, testutil.ToFloat64(SimulationTrialsTotal))
}

func TestRecordSeasonDraws(t *testing.T) {
	before := testutil.ToFloat64(SeasonDrawsTotal.WithLabelValues("metrics-test"))
	RecordSeasonDraws(map[string]int{"metrics-test": 42})
	assert.Equal(t, before+42, testutil.ToFloat64(SeasonDrawsTotal.WithLabelValues("metrics-test")))
}

func TestUpdateWinProbabilitiesReplacesDrivers(t *testing.T) {
	UpdateWinProbabilities(map[string]float64{"VER": 0.6, "HAM": 0.4})
	assert.Equal(t, 2, testutil.CollectAndCount(DriverWinProbability))

	UpdateWinProbabilities(map[string]float64{"LEC": 1.0})
	assert.Equal(t, 1, testutil.CollectAndCount(DriverWinProbability))
	assert.Equal(t, 1.0, testutil.ToFloat64(DriverWinProbability.WithLabelValues("LEC")))
}

func TestSeasonLoadAndCacheMetrics(t *testing.T) {
	before := testutil.ToFloat64(SeasonLoadsTotal.WithLabelValues("csv", "success"))
	RecordSeasonLoad("csv", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(SeasonLoadsTotal.WithLabelValues("csv", "success")))

	UpdateSeasonCacheHitRatio(0.75)
	assert.Equal(t, 0.75, testutil.ToFloat64(SeasonCacheHitRatio))
}

func TestMetricsHandler(t *testing.T) {
	RecordSimulationRun("success", 0.1, 10)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pitwall_simulation_runs_total")
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pitwall.prom")
	RecordSimulationRun("success", 0.1, 10)

	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pitwall_simulation_trials_total")
}

func BenchmarkRecordSimulationRun(b *testing.B) {
	InitRegistry()
	for i := 0; i < b.N; i++ {
		RecordSimulationRun("success", 0.01, 1)
	}
}
