package datasource

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/models"
	"github.com/yourusername/pitwall/internal/repository"
)

// PostgresSource loads seasons stored in the seasons and season_laps tables
type PostgresSource struct {
	repo   repository.SeasonRepository
	logger *logrus.Logger
}

// NewPostgresSource creates a new database-backed season source
func NewPostgresSource(repo repository.SeasonRepository, logger *logrus.Logger) *PostgresSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &PostgresSource{repo: repo, logger: logger}
}

// Name returns the source name
func (s *PostgresSource) Name() string {
	return config.SourceTypePostgres
}

// LoadSeason implements SeasonSource
func (s *PostgresSource) LoadSeason(ctx context.Context, cfg config.SeasonConfig) (*LoadedSeason, error) {
	season, err := s.repo.GetSeason(ctx, cfg.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, NewSourceError(s.Name(), cfg.ID, ErrCodeNotFound, s.availableSeasons(ctx), err)
		}
		return nil, NewSourceError(s.Name(), cfg.ID, ErrCodeServerError, "failed to load season", err)
	}

	// An explicit flag in configuration overrides the stored rainfall
	if cfg.Weather != "" {
		if flag, ok := models.ParseWeather(cfg.Weather); ok {
			season.Weather = flag
		}
	}

	s.logger.WithFields(logrus.Fields{
		"season_id": cfg.ID,
		"laps":      len(season.Laps),
		"weather":   season.Weather,
	}).Debug("Loaded season from database")

	return &LoadedSeason{Season: season, Source: s.Name()}, nil
}

// availableSeasons lists stored season ids for not-found messages
func (s *PostgresSource) availableSeasons(ctx context.Context) string {
	ids, err := s.repo.ListSeasonIDs(ctx)
	if err != nil || len(ids) == 0 {
		return "season not stored"
	}
	return "season not stored, available: " + strings.Join(ids, ", ")
}
