package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWinTallyRecordAndMerge(t *testing.T) {
	a := WinTally{}
	a.Record("VER")
	a.Record("VER")
	a.Record("HAM")

	b := WinTally{"HAM": 2, "LEC": 1}
	a.Merge(b)

	assert.Equal(t, WinTally{"VER": 2, "HAM": 3, "LEC": 1}, a)
	assert.Equal(t, 6, a.Total())
}

func TestWinTallyProbabilities(t *testing.T) {
	tally := WinTally{"VER": 3, "HAM": 1, "BOT": 0}
	probabilities := tally.Probabilities(4)

	assert.Equal(t, map[string]float64{"VER": 0.75, "HAM": 0.25}, probabilities)
	assert.Empty(t, tally.Probabilities(0))
}

func TestSimulationResultPartial(t *testing.T) {
	assert.True(t, (&SimulationResult{TrialsRequested: 10, TrialsCompleted: 4}).Partial())
	assert.False(t, (&SimulationResult{TrialsRequested: 10, TrialsCompleted: 10}).Partial())
}

func TestSeasonDatasetDrivers(t *testing.T) {
	season := &SeasonDataset{
		ID: "s",
		Laps: []LapRecord{
			{Driver: "VER", LapTime: time.Second, Compound: CompoundSoft},
			{Driver: "ALO", LapTime: time.Second, Compound: CompoundSoft},
			{Driver: "VER", LapTime: time.Second, Compound: CompoundHard},
			{Driver: "", LapTime: time.Second, Compound: CompoundHard},
		},
		Weather: WeatherDry,
	}

	assert.Equal(t, []string{"ALO", "VER"}, season.Drivers())
	assert.Equal(t, 2, season.LapCounts()["VER"])
}

func TestParseCompound(t *testing.T) {
	c, ok := ParseCompound(" soft ")
	assert.True(t, ok)
	assert.Equal(t, CompoundSoft, c)

	c, ok = ParseCompound("intermediate")
	assert.True(t, ok)
	assert.Equal(t, CompoundIntermediate, c)

	c, ok = ParseCompound("test_unknown")
	assert.False(t, ok)
	assert.Equal(t, Compound("TEST_UNKNOWN"), c)
}

func TestParseWeather(t *testing.T) {
	w, ok := ParseWeather("rain")
	assert.True(t, ok)
	assert.True(t, w.IsRain())

	w, ok = ParseWeather("DRY")
	assert.True(t, ok)
	assert.False(t, w.IsRain())

	_, ok = ParseWeather("drizzle")
	assert.False(t, ok)
}

func TestErrorsUnwrap(t *testing.T) {
	err := &SeasonError{SeasonID: "2021", Err: ErrEmptySeason}
	assert.True(t, errors.Is(err, ErrEmptySeason))
	assert.Contains(t, err.Error(), "2021")

	uce := &UnknownCompoundError{SeasonID: "2022", Driver: "HAM", LapNumber: 3, Label: "HYPERSOFT"}
	assert.True(t, errors.Is(uce, ErrUnknownCompound))
	assert.Contains(t, uce.Error(), "HYPERSOFT")
	assert.Contains(t, uce.Error(), "season 2022")
}
