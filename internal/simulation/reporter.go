package simulation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/pitwall/internal/models"
)

// DriverProbability is one row of the report
type DriverProbability struct {
	Driver      string
	Wins        int
	Probability float64
}

// RankProbabilities orders drivers by probability descending, then driver ascending
func RankProbabilities(result *models.SimulationResult) []DriverProbability {
	if result == nil {
		return nil
	}
	rows := make([]DriverProbability, 0, len(result.Probabilities))
	for driver, probability := range result.Probabilities {
		rows = append(rows, DriverProbability{
			Driver:      driver,
			Wins:        result.Tally[driver],
			Probability: probability,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Probability != rows[j].Probability {
			return rows[i].Probability > rows[j].Probability
		}
		return rows[i].Driver < rows[j].Driver
	})
	return rows
}

// GenerateConsoleReport formats win probabilities, one line per driver
func GenerateConsoleReport(result *models.SimulationResult) string {
	var builder strings.Builder
	for _, row := range RankProbabilities(result) {
		builder.WriteString(fmt.Sprintf("%s: %.2f%% win probability\n", row.Driver, row.Probability*100))
	}
	return builder.String()
}

// GenerateSummary formats run metadata for terminal output
func GenerateSummary(result *models.SimulationResult) string {
	var builder strings.Builder
	builder.WriteString("Simulation Summary\n")
	builder.WriteString("==================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", result.RunID))
	builder.WriteString(fmt.Sprintf("Trials: %d/%d\n", result.TrialsCompleted, result.TrialsRequested))
	builder.WriteString(fmt.Sprintf("Seed: %d\n", result.Seed))
	builder.WriteString(fmt.Sprintf("Workers: %d\n", result.Workers))

	seasons := make([]string, 0, len(result.SeasonDraws))
	for id := range result.SeasonDraws {
		seasons = append(seasons, id)
	}
	sort.Strings(seasons)
	for _, id := range seasons {
		builder.WriteString(fmt.Sprintf("Season %s drawn: %d\n", id, result.SeasonDraws[id]))
	}
	return builder.String()
}
