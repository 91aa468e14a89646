package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitwall/internal/models"
)

func validSeason(id string) *models.SeasonDataset {
	return &models.SeasonDataset{
		ID: id,
		Laps: []models.LapRecord{
			{Driver: "VER", LapNumber: 1, LapTime: 80 * time.Second, Compound: models.CompoundSoft},
			{Driver: "HAM", LapNumber: 1, LapTime: 81 * time.Second, Compound: models.CompoundMedium},
		},
		Weather: models.WeatherDry,
	}
}

func newTestValidator(allowUnknown bool) *SeasonValidator {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewSeasonValidator(allowUnknown, log)
}

func TestValidateSeasonSuccess(t *testing.T) {
	assert.NoError(t, newTestValidator(false).ValidateSeason(validSeason("2021")))
}

func TestValidateSeasonEmpty(t *testing.T) {
	v := newTestValidator(false)

	assert.ErrorIs(t, v.ValidateSeason(nil), models.ErrEmptySeason)

	season := validSeason("2021")
	season.Laps = nil
	assert.ErrorIs(t, v.ValidateSeason(season), models.ErrEmptySeason)
}

func TestValidateSeasonRejectsNonPositiveLapTime(t *testing.T) {
	v := newTestValidator(false)

	for _, lapTime := range []time.Duration{0, -time.Second} {
		season := validSeason("2021")
		season.Laps[1].LapTime = lapTime
		err := v.ValidateSeason(season)
		assert.ErrorIs(t, err, models.ErrInvalidLapTime)

		var seasonErr *models.SeasonError
		require.True(t, errors.As(err, &seasonErr))
		assert.Equal(t, "2021", seasonErr.SeasonID)
	}
}

func TestValidateSeasonMissingDriver(t *testing.T) {
	season := validSeason("2021")
	season.Laps[0].Driver = ""
	assert.ErrorIs(t, newTestValidator(false).ValidateSeason(season), models.ErrNoDrivers)
}

func TestValidateSeasonInvalidWeather(t *testing.T) {
	season := validSeason("2021")
	season.Weather = "FOG"
	assert.Error(t, newTestValidator(false).ValidateSeason(season))
}

func TestValidateSeasonUnknownCompound(t *testing.T) {
	season := validSeason("2022")
	season.Laps[1].Compound = "UNKNOWN"
	season.Laps[1].LapNumber = 9

	err := newTestValidator(false).ValidateSeason(season)
	var uce *models.UnknownCompoundError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, "2022", uce.SeasonID)
	assert.Equal(t, "HAM", uce.Driver)
	assert.Equal(t, 9, uce.LapNumber)

	assert.NoError(t, newTestValidator(true).ValidateSeason(season))
}

func TestValidatePool(t *testing.T) {
	v := newTestValidator(false)

	assert.ErrorIs(t, v.ValidatePool(nil), models.ErrEmptyPool)
	assert.NoError(t, v.ValidatePool([]*models.SeasonDataset{validSeason("2021"), validSeason("2022")}))
	assert.ErrorIs(t, v.ValidatePool([]*models.SeasonDataset{validSeason("2021"), validSeason("2021")}), ErrDuplicateSeason)
}
