package datasource

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/models"
)

// CSVSource loads seasons from lap and weather CSV files on disk
type CSVSource struct {
	logger *logrus.Logger
}

// NewCSVSource creates a new CSV file source
func NewCSVSource(logger *logrus.Logger) *CSVSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVSource{logger: logger}
}

// Name returns the source name
func (s *CSVSource) Name() string {
	return config.SourceTypeCSV
}

// LoadSeason implements SeasonSource
func (s *CSVSource) LoadSeason(ctx context.Context, cfg config.SeasonConfig) (*LoadedSeason, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lapsFile, err := os.Open(cfg.LapsPath)
	if err != nil {
		code := ErrCodeInvalidData
		if os.IsNotExist(err) {
			code = ErrCodeNotFound
		}
		return nil, NewSourceError(s.Name(), cfg.ID, code, "failed to open laps file", err)
	}
	defer lapsFile.Close()

	var weather io.Reader
	if cfg.WeatherPath != "" && cfg.Weather == "" {
		weatherFile, err := os.Open(cfg.WeatherPath)
		if err != nil {
			return nil, NewSourceError(s.Name(), cfg.ID, ErrCodeNotFound, "failed to open weather file", err)
		}
		defer weatherFile.Close()
		weather = weatherFile
	}

	loaded, err := buildSeason(cfg, lapsFile, weather)
	if err != nil {
		return nil, NewSourceError(s.Name(), cfg.ID, ErrCodeInvalidData, fmt.Sprintf("failed to parse %s", cfg.LapsPath), err)
	}
	loaded.Source = s.Name()

	s.logger.WithFields(logrus.Fields{
		"season_id":    cfg.ID,
		"laps_path":    cfg.LapsPath,
		"laps":         len(loaded.Season.Laps),
		"skipped_laps": loaded.SkippedLaps,
	}).Debug("Parsed season CSV")

	return loaded, nil
}

// buildSeason parses laps and weather into a season dataset
func buildSeason(cfg config.SeasonConfig, laps io.Reader, weather io.Reader) (*LoadedSeason, error) {
	records, skipped, err := ParseLapsCSV(laps)
	if err != nil {
		return nil, err
	}
	flag, err := resolveWeather(cfg.Weather, weather)
	if err != nil {
		return nil, err
	}
	return &LoadedSeason{
		Season: &models.SeasonDataset{
			ID:      cfg.ID,
			Laps:    records,
			Weather: flag,
		},
		SkippedLaps: skipped,
	}, nil
}
