package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Namespaces distinguishing tool kinds so identical queries never collide
// across tools.
const (
	NamespaceWebSearch = "web_search"
	NamespaceDiagram   = "diagram"
)

// NormalizeQuery lower-cases and trims a query so formatting-only variants map
// to the same cache key.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Key derives the content-addressed cache key for a namespace and query.
// Identical normalized input always yields an identical key: the digest is a
// pure function with no time or salt component.
func Key(namespace, query string) string {
	sum := sha256.Sum256([]byte(NormalizeQuery(query)))
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Record is the stored shape of one deterministic cache entry.
type Record struct {
	Key       string    `json:"key"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// DeterministicCache is a content-addressed store for tool calls whose output
// is a pure function of input. Entries are valid indefinitely; concurrent
// writers racing on the same key are tolerated (last write wins, semantically
// idempotent since inputs are deterministic).
type DeterministicCache interface {
	Get(ctx context.Context, namespace, query string) (string, bool, error)
	Put(ctx context.Context, namespace, query, answer string) error
}

// MemoryDeterministicCache is the in-process implementation, used when Redis
// is not configured and by tests.
type MemoryDeterministicCache struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryDeterministicCache() *MemoryDeterministicCache {
	return &MemoryDeterministicCache{records: make(map[string]Record)}
}

func (c *MemoryDeterministicCache) Get(ctx context.Context, namespace, query string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[Key(namespace, query)]
	if !ok {
		return "", false, nil
	}
	return rec.Answer, true, nil
}

func (c *MemoryDeterministicCache) Put(ctx context.Context, namespace, query, answer string) error {
	key := Key(namespace, query)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[key] = Record{
		Key:       key,
		Query:     query,
		Answer:    answer,
		Source:    namespace,
		CreatedAt: time.Now(),
	}
	return nil
}

var _ DeterministicCache = (*MemoryDeterministicCache)(nil)
