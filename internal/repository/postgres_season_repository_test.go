package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitwall/internal/database"
	"github.com/yourusername/pitwall/internal/models"
)

func TestLapRowToLapRecord(t *testing.T) {
	soft := "soft"
	record := lapRow{Driver: "VER", LapNumber: 4, LapTimeMs: 80123.5, Compound: &soft}.toLapRecord()

	assert.Equal(t, "VER", record.Driver)
	assert.Equal(t, 4, record.LapNumber)
	assert.Equal(t, 80123500*time.Microsecond, record.LapTime)
	assert.Equal(t, models.CompoundSoft, record.Compound)

	record = lapRow{Driver: "HAM", LapNumber: 1, LapTimeMs: 1}.toLapRecord()
	assert.Equal(t, models.Compound(models.UnknownCompoundLabel), record.Compound)
}

func TestWeatherFromRainfall(t *testing.T) {
	assert.Equal(t, models.WeatherRain, weatherFromRainfall(true))
	assert.Equal(t, models.WeatherDry, weatherFromRainfall(false))
}

func TestPostgresSeasonRepositoryGetSeason(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := NewPostgresSeasonRepository(db)
	ctx := context.Background()

	pool := db.GetPool()
	_, err := pool.Exec(ctx, `INSERT INTO seasons (season_id, rainfall) VALUES ('repo-test', true) ON CONFLICT DO NOTHING`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO season_laps (season_id, driver, lap_number, lap_time_ms, compound) VALUES
		('repo-test', 'VER', 2, 80500, 'SOFT'),
		('repo-test', 'VER', 1, 81000, 'SOFT'),
		('repo-test', 'HAM', 1, NULL, 'HARD')`)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM season_laps WHERE season_id = 'repo-test'`)
		pool.Exec(ctx, `DELETE FROM seasons WHERE season_id = 'repo-test'`)
	})

	season, err := repo.GetSeason(ctx, "repo-test")
	require.NoError(t, err)
	assert.Equal(t, models.WeatherRain, season.Weather)
	require.Len(t, season.Laps, 2)
	assert.Equal(t, 1, season.Laps[0].LapNumber)

	_, err = repo.GetSeason(ctx, "missing-season")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
