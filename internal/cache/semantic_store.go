package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	errx "github.com/algotutor-core/server/internal/core/error"
	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// EntryStore is the append-only backing store for semantic cache entries.
// List returns every stored entry for the linear similarity scan.
type EntryStore interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}

// MemoryEntryStore keeps entries in process memory.
type MemoryEntryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryEntryStore() *MemoryEntryStore {
	return &MemoryEntryStore{}
}

func (s *MemoryEntryStore) Append(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryEntryStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

var _ EntryStore = (*MemoryEntryStore)(nil)

const semanticEntriesKey = "semcache:entries"

// RedisEntryStore appends JSON-encoded entries to a Redis list. RPUSH keeps
// insertion order, which the tie-break on CreatedAt relies on only loosely;
// each entry carries its own timestamp.
type RedisEntryStore struct {
	rdb redis.Cmdable
}

func NewRedisEntryStore(rdb redis.Cmdable) *RedisEntryStore {
	return &RedisEntryStore{rdb: rdb}
}

func (s *RedisEntryStore) Append(ctx context.Context, entry Entry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal semantic entry: %w", err)
	}
	if err := s.rdb.RPush(ctx, semanticEntriesKey, b).Err(); err != nil {
		logx.Error().Err(err).Msg("failed to append semantic cache entry")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisEntryStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.rdb.LRange(ctx, semanticEntriesKey, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Msg("failed to list semantic cache entries")
		return nil, errx.WrapRedis(err)
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		var e Entry
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			// skip unreadable rows rather than failing the whole scan
			logx.Warn().Err(err).Int("index", i).Msg("skipping unreadable semantic cache entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var _ EntryStore = (*RedisEntryStore)(nil)
