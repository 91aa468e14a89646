package datasource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitwall/internal/config"
)

// maxBodyBytes caps a downloaded CSV
const maxBodyBytes = 64 << 20

// HTTPSource loads season CSVs over HTTP
type HTTPSource struct {
	client *RateLimitedHTTPClient
	logger *logrus.Logger
}

// NewHTTPSource creates a new HTTP season source
func NewHTTPSource(client *RateLimitedHTTPClient, logger *logrus.Logger) *HTTPSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPSource{client: client, logger: logger}
}

// Name returns the source name
func (s *HTTPSource) Name() string {
	return config.SourceTypeHTTP
}

// LoadSeason implements SeasonSource
func (s *HTTPSource) LoadSeason(ctx context.Context, cfg config.SeasonConfig) (*LoadedSeason, error) {
	laps, err := s.fetch(ctx, cfg.ID, cfg.LapsURL)
	if err != nil {
		return nil, err
	}

	var weather io.Reader
	if cfg.WeatherURL != "" && cfg.Weather == "" {
		body, err := s.fetch(ctx, cfg.ID, cfg.WeatherURL)
		if err != nil {
			return nil, err
		}
		weather = bytes.NewReader(body)
	}

	loaded, err := buildSeason(cfg, bytes.NewReader(laps), weather)
	if err != nil {
		return nil, NewSourceError(s.Name(), cfg.ID, ErrCodeInvalidData, fmt.Sprintf("failed to parse %s", cfg.LapsURL), err)
	}
	loaded.Source = s.Name()
	return loaded, nil
}

func (s *HTTPSource) fetch(ctx context.Context, seasonID, url string) ([]byte, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, NewSourceError(s.Name(), seasonID, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewSourceError(s.Name(), seasonID, ErrCodeNotFound, url, nil)
	case resp.StatusCode >= 500:
		return nil, NewSourceError(s.Name(), seasonID, ErrCodeServerError, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400:
		return nil, NewSourceError(s.Name(), seasonID, ErrCodeInvalidData, fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, NewSourceError(s.Name(), seasonID, ErrCodeNetworkError, "failed to read body", err)
	}

	s.logger.WithFields(logrus.Fields{
		"season_id": seasonID,
		"url":       url,
		"bytes":     len(body),
	}).Debug("Fetched season data")
	return body, nil
}
