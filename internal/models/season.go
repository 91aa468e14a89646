package models

import "sort"

// SeasonDataset holds the laps and weather of one reference race.
// Datasets are shared read-only by every trial of a simulation.
type SeasonDataset struct {
	ID      string      `db:"season_id" json:"season_id" validate:"required"`
	Laps    []LapRecord `json:"laps" validate:"required,min=1,dive"`
	Weather Weather     `db:"weather" json:"weather" validate:"required,oneof=DRY RAIN"`
}

// Drivers returns the distinct driver identifiers in ascending order
func (s *SeasonDataset) Drivers() []string {
	seen := make(map[string]struct{})
	for _, lap := range s.Laps {
		if lap.Driver == "" {
			continue
		}
		seen[lap.Driver] = struct{}{}
	}
	drivers := make([]string, 0, len(seen))
	for driver := range seen {
		drivers = append(drivers, driver)
	}
	sort.Strings(drivers)
	return drivers
}

// LapCounts returns the number of laps per driver
func (s *SeasonDataset) LapCounts() map[string]int {
	counts := make(map[string]int)
	for _, lap := range s.Laps {
		counts[lap.Driver]++
	}
	return counts
}
