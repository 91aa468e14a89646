package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/pitwall/internal/config"
)

// TestConfigEnv names the environment variable pointing at a test config file
const TestConfigEnv = "PITWALL_TEST_CONFIG"

// SetupTestDB creates a test database connection, skipping the test when
// no test database is configured
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestConfigEnv)
	if path == "" {
		t.Skipf("Integration test - set %s to a config with a database block", TestConfigEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
