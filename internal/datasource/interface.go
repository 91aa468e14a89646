package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/metrics"
	"github.com/yourusername/pitwall/internal/models"
)

// SeasonSource loads one reference season from an external store
type SeasonSource interface {
	// LoadSeason loads the season described by cfg
	LoadSeason(ctx context.Context, cfg config.SeasonConfig) (*LoadedSeason, error)

	// Name returns the name of the data source
	Name() string
}

// LoadedSeason is a season dataset plus loading statistics
type LoadedSeason struct {
	Season      *models.SeasonDataset
	SkippedLaps int
	Source      string
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source   string // Data source name
	SeasonID string // Season being loaded
	Code     string // Error code (e.g., "invalid_data")
	Message  string // Error message
	Err      error  // Underlying error
}

func (e SourceError) Error() string {
	msg := e.Source + ": " + e.Code + ": season " + e.SeasonID + ": " + e.Message
	if e.Err != nil {
		return msg + " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeNetworkError = "network_error"
	ErrCodeServerError  = "server_error"
)

// Sentinel errors
var (
	ErrInvalidData   = errors.New("invalid data format")
	ErrMissingColumn = errors.New("missing required column")
	ErrBlankLapTime  = errors.New("blank lap time")
	ErrCircuitOpen   = errors.New("circuit breaker open")
)

// NewSourceError creates a new data source error
func NewSourceError(source, seasonID, code, message string, err error) SourceError {
	return SourceError{
		Source:   source,
		SeasonID: seasonID,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// LoadSeasons loads every configured season in order
func LoadSeasons(ctx context.Context, source SeasonSource, seasons []config.SeasonConfig) ([]*LoadedSeason, error) {
	loaded := make([]*LoadedSeason, 0, len(seasons))
	for _, cfg := range seasons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		season, err := source.LoadSeason(ctx, cfg)
		if err != nil {
			metrics.RecordSeasonLoad(source.Name(), "failure")
			return nil, err
		}
		metrics.RecordSeasonLoad(source.Name(), "success")
		loaded = append(loaded, season)
	}
	return loaded, nil
}

// Datasets extracts the season datasets from loaded seasons
func Datasets(loaded []*LoadedSeason) []*models.SeasonDataset {
	datasets := make([]*models.SeasonDataset, 0, len(loaded))
	for _, l := range loaded {
		datasets = append(datasets, l.Season)
	}
	return datasets
}
