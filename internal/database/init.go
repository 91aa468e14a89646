package database

import (
	"context"
	"fmt"

	"github.com/yourusername/pitwall/internal/config"
)

// RequiredTables are the tables the season repository reads
var RequiredTables = []string{"seasons", "season_laps"}

// Initialize creates a database connection pool and verifies the season schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range RequiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			db.Close()
			return nil, fmt.Errorf("table %s not found, apply the season schema first", table)
		}
	}

	return db, nil
}
