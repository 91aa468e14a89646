package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pitwall/internal/database"
	"github.com/yourusername/pitwall/internal/models"
)

// PostgresSeasonRepository implements SeasonRepository for PostgreSQL
type PostgresSeasonRepository struct {
	db *database.DB
}

// NewPostgresSeasonRepository creates a new season repository
func NewPostgresSeasonRepository(db *database.DB) SeasonRepository {
	return &PostgresSeasonRepository{db: db}
}

// lapRow mirrors one row of season_laps
type lapRow struct {
	Driver    string
	LapNumber int
	LapTimeMs float64
	Compound  *string
}

// GetSeason retrieves a season and all of its timed laps
func (r *PostgresSeasonRepository) GetSeason(ctx context.Context, seasonID string) (*models.SeasonDataset, error) {
	var rainfall bool
	err := r.db.GetPool().QueryRow(ctx,
		`SELECT rainfall FROM seasons WHERE season_id = $1`, seasonID,
	).Scan(&rainfall)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("season %s: %w", seasonID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query season: %w", err)
	}

	query := `
		SELECT driver, lap_number, lap_time_ms, compound
		FROM season_laps
		WHERE season_id = $1 AND lap_time_ms IS NOT NULL
		ORDER BY driver, lap_number
	`
	rows, err := r.db.GetPool().Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query season laps: %w", err)
	}
	defer rows.Close()

	var laps []models.LapRecord
	for rows.Next() {
		var row lapRow
		if err := rows.Scan(&row.Driver, &row.LapNumber, &row.LapTimeMs, &row.Compound); err != nil {
			return nil, fmt.Errorf("failed to scan season lap: %w", err)
		}
		laps = append(laps, row.toLapRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season laps: %w", err)
	}

	return &models.SeasonDataset{
		ID:      seasonID,
		Laps:    laps,
		Weather: weatherFromRainfall(rainfall),
	}, nil
}

// ListSeasonIDs returns every stored season id
func (r *PostgresSeasonRepository) ListSeasonIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.GetPool().Query(ctx, `SELECT season_id FROM seasons ORDER BY season_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect seasons: %w", err)
	}
	return ids, nil
}

func (row lapRow) toLapRecord() models.LapRecord {
	label := ""
	if row.Compound != nil {
		label = *row.Compound
	}
	if label == "" {
		label = models.UnknownCompoundLabel
	}
	compound, _ := models.ParseCompound(label)
	return models.LapRecord{
		Driver:    row.Driver,
		LapNumber: row.LapNumber,
		LapTime:   time.Duration(row.LapTimeMs * float64(time.Millisecond)),
		Compound:  compound,
	}
}

func weatherFromRainfall(rainfall bool) models.Weather {
	if rainfall {
		return models.WeatherRain
	}
	return models.WeatherDry
}
