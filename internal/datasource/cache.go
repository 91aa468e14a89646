package datasource

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitwall/internal/config"
	"github.com/yourusername/pitwall/internal/metrics"
)

// CacheFileName is the file a persistent season cache is stored in
const CacheFileName = "seasons.gob"

func init() {
	gob.Register(&LoadedSeason{})
}

// CachedSource decorates a SeasonSource with a TTL cache. When dir is set
// the cache is read from and written back to dir so it survives across runs.
type CachedSource struct {
	source    SeasonSource
	cache     *cache.Cache
	ttl       time.Duration
	dir       string
	logger    *logrus.Logger
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewCachedSource wraps source with a cache holding seasons for ttl
func NewCachedSource(source SeasonSource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
		ttl:    ttl,
		logger: logrus.New(),
	}
}

// NewPersistentCachedSource wraps source with a cache stored under dir.
// An unreadable cache file is logged and the cache starts empty.
func NewPersistentCachedSource(source SeasonSource, ttl time.Duration, dir string, logger *logrus.Logger) *CachedSource {
	if logger == nil {
		logger = logrus.New()
	}

	items, err := readCacheFile(filepath.Join(dir, CacheFileName))
	if err != nil {
		logger.WithError(err).WithField("cache_dir", dir).Warn("Ignoring unreadable season cache")
		items = nil
	}
	if items == nil {
		items = make(map[string]cache.Item)
	}

	return &CachedSource{
		source: source,
		cache:  cache.NewFrom(ttl, ttl*2, items),
		ttl:    ttl,
		dir:    dir,
		logger: logger,
	}
}

// Name returns the wrapped source name
func (c *CachedSource) Name() string {
	return c.source.Name()
}

// LoadSeason returns the cached season when present, loading it otherwise.
// Failed loads are not cached.
func (c *CachedSource) LoadSeason(ctx context.Context, cfg config.SeasonConfig) (*LoadedSeason, error) {
	key := cacheKey(cfg)
	if item, found := c.cache.Get(key); found {
		if loaded, ok := item.(*LoadedSeason); ok {
			c.record(true)
			return loaded, nil
		}
	}
	c.record(false)

	loaded, err := c.source.LoadSeason(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, loaded, c.ttl)
	if err := c.persist(); err != nil {
		c.logger.WithError(err).WithField("cache_dir", c.dir).Warn("Failed to write season cache")
	}
	return loaded, nil
}

// Invalidate drops a cached season
func (c *CachedSource) Invalidate(cfg config.SeasonConfig) {
	c.cache.Delete(cacheKey(cfg))
	if err := c.persist(); err != nil {
		c.logger.WithError(err).WithField("cache_dir", c.dir).Warn("Failed to write season cache")
	}
}

// persist writes the unexpired entries to the cache file. It is a no-op
// for in-memory caches.
func (c *CachedSource) persist() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, CacheFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(c.cache.Items()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode season cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(c.dir, CacheFileName))
}

func readCacheFile(path string) (map[string]cache.Item, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items map[string]cache.Item
	if err := gob.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return items, nil
}

// Stats returns cache statistics
func (c *CachedSource) Stats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]interface{}{
		"hit_count":  c.hitCount,
		"miss_count": c.missCount,
		"hit_rate":   c.hitRate(),
		"size":       c.cache.ItemCount(),
	}
}

func (c *CachedSource) record(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hit {
		c.hitCount++
	} else {
		c.missCount++
	}
	metrics.UpdateSeasonCacheHitRatio(c.hitRate())
}

func (c *CachedSource) hitRate() float64 {
	total := c.hitCount + c.missCount
	if total == 0 {
		return 0
	}
	return float64(c.hitCount) / float64(total)
}

// cacheKey covers every field that changes what a load returns. Local files
// contribute their modification time so an edited file is reloaded.
func cacheKey(cfg config.SeasonConfig) string {
	return strings.Join([]string{
		cfg.ID,
		cfg.LapsPath, fileStamp(cfg.LapsPath),
		cfg.WeatherPath, fileStamp(cfg.WeatherPath),
		cfg.LapsURL, cfg.WeatherURL, cfg.Weather,
	}, "|")
}

func fileStamp(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(info.ModTime().UnixNano(), 10)
}
