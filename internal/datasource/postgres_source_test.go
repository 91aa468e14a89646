package datasource

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/models"
)

type memorySeasonRepository struct {
	seasons map[string]*models.SeasonDataset
}

func (r *memorySeasonRepository) GetSeason(ctx context.Context, seasonID string) (*models.SeasonDataset, error) {
	season, ok := r.seasons[seasonID]
	if !ok {
		return nil, fmt.Errorf("season %s: %w", seasonID, models.ErrNotFound)
	}
	copied := *season
	return &copied, nil
}

func (r *memorySeasonRepository) ListSeasonIDs(ctx context.Context) ([]string, error) {
	return []string{"2021", "2022"}, nil
}

func TestPostgresSourceLoadSeason(t *testing.T) {
	repo := &memorySeasonRepository{seasons: map[string]*models.SeasonDataset{
		"2021": {ID: "2021", Weather: models.WeatherDry},
	}}
	source := NewPostgresSource(repo, nil)

	loaded, err := source.LoadSeason(testContext(t), config.SeasonConfig{ID: "2021"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", loaded.Source)
	assert.Equal(t, models.WeatherDry, loaded.Season.Weather)

	loaded, err = source.LoadSeason(testContext(t), config.SeasonConfig{ID: "2021", Weather: "rain"})
	require.NoError(t, err)
	assert.Equal(t, models.WeatherRain, loaded.Season.Weather)
}

func TestPostgresSourceNotFoundListsSeasons(t *testing.T) {
	source := NewPostgresSource(&memorySeasonRepository{}, nil)

	_, err := source.LoadSeason(testContext(t), config.SeasonConfig{ID: "1999"})

	var sourceErr SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, ErrCodeNotFound, sourceErr.Code)
	assert.Contains(t, sourceErr.Message, "2021, 2022")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
