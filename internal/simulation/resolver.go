package simulation

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/pitwall/internal/models"
)

// Resolver decides the winner of a trial drawn from a season
type Resolver interface {
	Resolve(season *models.SeasonDataset, adjuster Adjuster) (models.TrialResult, error)
}

// MeanLapResolver picks the driver with the lowest mean adjusted lap time.
// Exactly equal means resolve to the lexicographically smallest driver.
type MeanLapResolver struct{}

// NewMeanLapResolver creates a mean lap time resolver
func NewMeanLapResolver() *MeanLapResolver {
	return &MeanLapResolver{}
}

// Resolve implements Resolver
func (r *MeanLapResolver) Resolve(season *models.SeasonDataset, adjuster Adjuster) (models.TrialResult, error) {
	means, err := r.DriverMeans(season, adjuster)
	if err != nil {
		return models.TrialResult{}, err
	}

	drivers := make([]string, 0, len(means))
	for driver := range means {
		drivers = append(drivers, driver)
	}
	sort.Strings(drivers)

	winner := drivers[0]
	best := means[winner]
	for _, driver := range drivers[1:] {
		if means[driver] < best {
			winner = driver
			best = means[driver]
		}
	}

	return models.TrialResult{SeasonID: season.ID, Winner: winner}, nil
}

// DriverMeans returns each driver's mean adjusted lap time in seconds
func (r *MeanLapResolver) DriverMeans(season *models.SeasonDataset, adjuster Adjuster) (map[string]float64, error) {
	if season == nil || len(season.Laps) == 0 {
		return nil, seasonErr(season, models.ErrEmptySeason)
	}

	grouped := make(map[string][]float64)
	for _, lap := range season.Laps {
		if lap.Driver == "" {
			continue
		}
		adjusted, err := adjuster.Adjust(lap, season.Weather)
		if err != nil {
			var uce *models.UnknownCompoundError
			if errors.As(err, &uce) && uce.SeasonID == "" {
				enriched := *uce
				enriched.SeasonID = season.ID
				return nil, &enriched
			}
			return nil, err
		}
		grouped[adjusted.Driver] = append(grouped[adjusted.Driver], adjusted.AdjustedLapTime.Seconds())
	}
	if len(grouped) == 0 {
		return nil, seasonErr(season, models.ErrNoDrivers)
	}

	means := make(map[string]float64, len(grouped))
	for driver, times := range grouped {
		means[driver] = stat.Mean(times, nil)
	}
	return means, nil
}

func seasonErr(season *models.SeasonDataset, err error) error {
	id := ""
	if season != nil {
		id = season.ID
	}
	return &models.SeasonError{SeasonID: id, Err: err}
}
