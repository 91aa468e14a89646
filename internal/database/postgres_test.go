package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/pitwall/internal/config"
)

func TestConnString(t *testing.T) {
	cs := ConnString(&config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "pitwall",
		User:     "reader",
		Password: "pw",
		SSLMode:  "require",
	})
	assert.Equal(t, "host=db.internal port=5433 user=reader password=pw dbname=pitwall sslmode=require", cs)
}

func TestNewDBRequiresConfig(t *testing.T) {
	_, err := NewDB(context.Background(), nil)
	assert.Error(t, err)
}

func TestDBHealthCheck(t *testing.T) {
	db := SetupTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.NoError(t, db.Ping(context.Background()))
}
