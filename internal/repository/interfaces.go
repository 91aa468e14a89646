package repository

import (
	"context"

	"github.com/yourusername/pitwall/internal/models"
)

// SeasonRepository defines the interface for season data access
type SeasonRepository interface {
	GetSeason(ctx context.Context, seasonID string) (*models.SeasonDataset, error)
	ListSeasonIDs(ctx context.Context) ([]string, error)
}
