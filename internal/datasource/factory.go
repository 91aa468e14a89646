package datasource

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/database"
	"github.com/yourusername/pitwall/internal/repository"
)

// Factory creates SeasonSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewSeasonSource creates the configured SeasonSource. The returned cleanup
// releases any connection the source holds and is never nil.
func (f *Factory) NewSeasonSource(ctx context.Context) (SeasonSource, func(), error) {
	cleanup := func() {}

	var source SeasonSource
	switch f.config.DataSource.Type {
	case "", config.SourceTypeCSV:
		source = NewCSVSource(f.logger)

	case config.SourceTypeHTTP:
		client := NewRateLimitedHTTPClient(HTTPClientConfigFrom(f.config.DataSource.HTTP), f.logger)
		source = NewHTTPSource(client, f.logger)
		cleanup = func() { _ = client.Close() }

	case config.SourceTypePostgres:
		db, err := database.Initialize(ctx, f.config)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect season database: %w", err)
		}
		source = NewPostgresSource(repository.NewPostgresSeasonRepository(db), f.logger)
		cleanup = db.Close

	default:
		return nil, cleanup, fmt.Errorf("unknown data source type: %s", f.config.DataSource.Type)
	}

	if f.config.DataSource.CacheEnabled {
		ttl := f.config.DataSource.CacheTTL()
		dir := f.config.DataSource.CacheDir
		f.logger.WithFields(logrus.Fields{
			"ttl":       ttl,
			"cache_dir": dir,
		}).Debug("Season cache enabled")
		if dir != "" {
			source = NewPersistentCachedSource(source, ttl, dir, f.logger)
		} else {
			source = NewCachedSource(source, ttl)
		}
	}
	return source, cleanup, nil
}
