package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	errx "github.com/algotutor-core/server/internal/core/error"
	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const toolCachePrefix = "toolcache:"

// RedisDeterministicCache stores records as JSON strings keyed by the
// content-addressed key. No expiry is set: entries are treated as valid
// indefinitely.
type RedisDeterministicCache struct {
	rdb redis.Cmdable
}

func NewRedisDeterministicCache(rdb redis.Cmdable) *RedisDeterministicCache {
	return &RedisDeterministicCache{rdb: rdb}
}

func (c *RedisDeterministicCache) redisKey(namespace, query string) string {
	return toolCachePrefix + Key(namespace, query)
}

func (c *RedisDeterministicCache) Get(ctx context.Context, namespace, query string) (string, bool, error) {
	key := c.redisKey(namespace, query)
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to read tool cache entry")
		return "", false, errx.WrapRedis(err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// corrupt entry; treat as a miss so it gets rewritten
		logx.Warn().Err(err).Str("key", key).Msg("discarding unreadable tool cache entry")
		return "", false, nil
	}
	return rec.Answer, true, nil
}

func (c *RedisDeterministicCache) Put(ctx context.Context, namespace, query, answer string) error {
	rec := Record{
		Key:       Key(namespace, query),
		Query:     query,
		Answer:    answer,
		Source:    namespace,
		CreatedAt: time.Now(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal tool cache record: %w", err)
	}
	if err := c.rdb.Set(ctx, toolCachePrefix+rec.Key, b, 0).Err(); err != nil {
		logx.Error().Err(err).Str("key", rec.Key).Msg("failed to write tool cache entry")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ DeterministicCache = (*RedisDeterministicCache)(nil)
