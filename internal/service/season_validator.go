package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitwall/internal/models"
)

// ErrDuplicateSeason is returned when two pool entries share an id
var ErrDuplicateSeason = errors.New("duplicate season id")

// SeasonValidator checks season datasets before a simulation starts.
// The simulation itself never re-validates laps.
type SeasonValidator struct {
	validate              *validator.Validate
	allowUnknownCompounds bool
	logger                *logrus.Logger
}

// NewSeasonValidator creates a season validator. When allowUnknownCompounds
// is false, laps with unrecognized compound labels are rejected.
func NewSeasonValidator(allowUnknownCompounds bool, logger *logrus.Logger) *SeasonValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &SeasonValidator{
		validate:              validator.New(),
		allowUnknownCompounds: allowUnknownCompounds,
		logger:                logger,
	}
}

// ValidateSeason validates one season. Errors wrap the models sentinels.
func (v *SeasonValidator) ValidateSeason(season *models.SeasonDataset) error {
	if season == nil {
		return &models.SeasonError{Err: models.ErrEmptySeason}
	}
	if season.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if len(season.Laps) == 0 {
		return &models.SeasonError{SeasonID: season.ID, Err: models.ErrEmptySeason}
	}
	if _, ok := models.ParseWeather(string(season.Weather)); !ok {
		return &models.SeasonError{SeasonID: season.ID, Err: fmt.Errorf("invalid weather %q", season.Weather)}
	}

	for i, lap := range season.Laps {
		if lap.Driver == "" {
			return &models.SeasonError{SeasonID: season.ID, Err: fmt.Errorf("lap %d: %w", i, models.ErrNoDrivers)}
		}
		if lap.LapTime <= 0 {
			return &models.SeasonError{
				SeasonID: season.ID,
				Err:      fmt.Errorf("driver %s lap %d: %w, got %v", lap.Driver, lap.LapNumber, models.ErrInvalidLapTime, lap.LapTime),
			}
		}
		if !lap.Compound.IsKnown() {
			if !v.allowUnknownCompounds {
				return &models.UnknownCompoundError{
					SeasonID:  season.ID,
					Driver:    lap.Driver,
					LapNumber: lap.LapNumber,
					Label:     string(lap.Compound),
				}
			}
			v.logger.WithFields(logrus.Fields{
				"season_id":  season.ID,
				"driver":     lap.Driver,
				"lap_number": lap.LapNumber,
				"compound":   lap.Compound,
			}).Debug("Unknown compound will use the HARD factor")
		}
	}

	if err := v.validate.Struct(season); err != nil {
		return &models.SeasonError{SeasonID: season.ID, Err: fmt.Errorf("validation failed: %w", err)}
	}
	return nil
}

// ValidatePool validates every season of the reference pool and rejects
// duplicate ids.
func (v *SeasonValidator) ValidatePool(seasons []*models.SeasonDataset) error {
	if len(seasons) == 0 {
		return models.ErrEmptyPool
	}
	seen := make(map[string]bool, len(seasons))
	for _, season := range seasons {
		if err := v.ValidateSeason(season); err != nil {
			return err
		}
		if seen[season.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSeason, season.ID)
		}
		seen[season.ID] = true
	}
	return nil
}
