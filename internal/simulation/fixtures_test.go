package simulation

import (
	"time"

	"github.com/yourusername/pitwall/internal/models"
)

func lap(driver string, number int, seconds float64, compound models.Compound) models.LapRecord {
	return models.LapRecord{
		Driver:    driver,
		LapNumber: number,
		LapTime:   time.Duration(seconds * float64(time.Second)),
		Compound:  compound,
	}
}

// seasonA is the X/Y fixture: X on SOFT at 100s, Y on HARD at 90s
func seasonA(weather models.Weather) *models.SeasonDataset {
	return &models.SeasonDataset{
		ID: "A",
		Laps: []models.LapRecord{
			lap("X", 1, 100, models.CompoundSoft),
			lap("X", 2, 100, models.CompoundSoft),
			lap("Y", 1, 90, models.CompoundHard),
			lap("Y", 2, 90, models.CompoundHard),
		},
		Weather: weather,
	}
}

// seasonB is won by X
func seasonB() *models.SeasonDataset {
	return &models.SeasonDataset{
		ID: "B",
		Laps: []models.LapRecord{
			lap("X", 1, 80, models.CompoundMedium),
			lap("Y", 1, 95, models.CompoundMedium),
		},
		Weather: models.WeatherDry,
	}
}

// fixedSource returns a fixed sequence of indices, wrapping around
type fixedSource struct {
	values []int
	calls  int
}

func (f *fixedSource) Intn(n int) int {
	v := f.values[f.calls%len(f.values)] % n
	f.calls++
	return v
}

// constantSampler always returns the same season
type constantSampler struct {
	season *models.SeasonDataset
}

func (s constantSampler) Sample(RandomSource) *models.SeasonDataset {
	return s.season
}
