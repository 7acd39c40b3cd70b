// Package cache provides an optional redis-backed cache for rendered export
// artifacts. All operations are nil-safe: with no redis configured the cache
// simply always misses.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trend-ops/trendradar-console/internal/config"
)

// artifactTTL bounds how long a rendered artifact may be served from cache.
const artifactTTL = 10 * time.Minute

// ExportCache caches rendered config.yaml and frequency_words.txt strings
// keyed by configuration id and its last update time, so stale entries age
// out naturally after any write.
type ExportCache struct {
	client *redis.Client
}

// New connects to redis when an address is configured. It returns a nil
// cache (which is valid to use) when redis is not configured or not
// reachable.
func New(ctx context.Context, cfg config.RedisConfig) (*ExportCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if errPing := client.Ping(ctx).Err(); errPing != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", errPing)
	}
	return &ExportCache{client: client}, nil
}

// key builds the cache key for one artifact of one configuration revision.
func key(artifact string, configID uint64, revision time.Time) string {
	return fmt.Sprintf("trendradar:export:%s:%d:%d", artifact, configID, revision.UTC().UnixNano())
}

// Get returns a cached artifact, or "" and false on a miss.
func (c *ExportCache) Get(ctx context.Context, artifact string, configID uint64, revision time.Time) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	value, errGet := c.client.Get(ctx, key(artifact, configID, revision)).Result()
	if errGet != nil {
		return "", false
	}
	return value, true
}

// Set stores a rendered artifact. Failures are ignored; the cache is an
// optimization, not a source of truth.
func (c *ExportCache) Set(ctx context.Context, artifact string, configID uint64, revision time.Time, value string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, key(artifact, configID, revision), value, artifactTTL)
}

// Close releases the redis connection.
func (c *ExportCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
