package cache

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known strings to fixed vectors so similarity is fully
// controlled by the test.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

func TestSemanticCacheGetFindsBestMatch(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"what is a bst":       {1, 0, 0},
		"explain bsts to me":  {0.9, 0.1, 0},
		"what is quicksort":   {0, 1, 0},
		"explain binary tree": {0.95, 0.05, 0},
	}}
	c := NewSemanticCache(NewMemoryEntryStore(), emb)

	require.NoError(t, c.Put(ctx, "what is a bst", "a bst is a sorted tree"))
	require.NoError(t, c.Put(ctx, "what is quicksort", "quicksort partitions around a pivot"))

	got, err := c.Get(ctx, "explain binary tree", 0.7)
	require.NoError(t, err)
	require.Equal(t, MatchFound, got.Kind)
	assert.Equal(t, "a bst is a sorted tree", got.Entry.Answer)
	assert.Greater(t, got.Score, 0.7)
}

func TestSemanticCacheSelfSimilarity(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"what is a bst": {1, 0, 0},
	}}
	c := NewSemanticCache(NewMemoryEntryStore(), emb)

	// nothing stored: no match at any positive threshold
	got, err := c.Get(ctx, "what is a bst", 0.01)
	require.NoError(t, err)
	assert.Equal(t, MatchNone, got.Kind)

	require.NoError(t, c.Put(ctx, "what is a bst", "a bst is a sorted tree"))

	// a stored question matches itself at threshold 1.0 (self-similarity)
	got, err = c.Get(ctx, "what is a bst", 1.0)
	require.NoError(t, err)
	require.Equal(t, MatchFound, got.Kind)
	assert.Equal(t, "a bst is a sorted tree", got.Entry.Answer)
	assert.InDelta(t, 1.0, got.Score, 1e-9)
}

func TestSemanticCacheSelfSimilarityNonUnitVector(t *testing.T) {
	ctx := context.Background()
	// a non-basis embedding, where dot/(|v|·|v|) rounds below 1.0 without the
	// near-unit snap
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"how does dijkstra work": {0.3, 0.4, 0.5, 0.7},
	}}
	c := NewSemanticCache(NewMemoryEntryStore(), emb)

	require.NoError(t, c.Put(ctx, "how does dijkstra work", "dijkstra relaxes edges from a priority queue"))

	got, err := c.Get(ctx, "how does dijkstra work", 1.0)
	require.NoError(t, err)
	require.Equal(t, MatchFound, got.Kind)
	assert.Equal(t, "dijkstra relaxes edges from a priority queue", got.Entry.Answer)
	assert.Equal(t, 1.0, got.Score)
}

func TestSemanticCacheGetNoMatchBelowThreshold(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"what is a bst":    {1, 0, 0},
		"what is dijkstra": {0, 1, 0},
	}}
	c := NewSemanticCache(NewMemoryEntryStore(), emb)

	require.NoError(t, c.Put(ctx, "what is a bst", "a bst is a sorted tree"))

	got, err := c.Get(ctx, "what is dijkstra", 0.7)
	require.NoError(t, err)
	assert.Equal(t, MatchNone, got.Kind)
}

func TestSemanticCacheUnavailableWithoutEmbedder(t *testing.T) {
	ctx := context.Background()
	c := NewSemanticCache(NewMemoryEntryStore(), nil)

	got, err := c.Get(ctx, "anything", 0.7)
	require.NoError(t, err)
	assert.Equal(t, MatchUnavailable, got.Kind)

	// writes are silently dropped, never an error
	require.NoError(t, c.Put(ctx, "anything", "an answer"))
	store := NewMemoryEntryStore()
	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSemanticCacheUnavailableOnEmbedderFailure(t *testing.T) {
	ctx := context.Background()
	c := NewSemanticCache(NewMemoryEntryStore(), &fakeEmbedder{err: errors.New("quota exceeded")})

	got, err := c.Get(ctx, "anything", 0.7)
	require.NoError(t, err)
	assert.Equal(t, MatchUnavailable, got.Kind)

	// a failed embedding drops the write instead of surfacing the error
	require.NoError(t, c.Put(ctx, "anything", "an answer"))
}

func TestSemanticCacheTieBreaksByRecency(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{vectors: map[string][]float64{"q": {1, 0, 0}}}
	store := NewMemoryEntryStore()
	c := NewSemanticCache(store, emb)

	// identical embeddings, different timestamps
	older := Entry{Question: "q", Answer: "older", Embedding: []float64{1, 0, 0}, CreatedAt: time.Now().Add(-time.Hour)}
	newer := Entry{Question: "q", Answer: "newer", Embedding: []float64{1, 0, 0}, CreatedAt: time.Now()}
	require.NoError(t, store.Append(ctx, older))
	require.NoError(t, store.Append(ctx, newer))

	got, err := c.Get(ctx, "q", 0.9)
	require.NoError(t, err)
	require.Equal(t, MatchFound, got.Kind)
	assert.Equal(t, "newer", got.Entry.Answer)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 0}, []float64{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	// mismatched or degenerate vectors score 0, never panic
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{1, 0, 0}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 0}))
}

func TestCosineSimilaritySelfScoreIsExactlyOne(t *testing.T) {
	assert.Equal(t, 1.0, cosineSimilarity([]float64{0.3, 0.4, 0.5, 0.7}, []float64{0.3, 0.4, 0.5, 0.7}))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20000; i++ {
		v := make([]float64, 8)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		require.Equal(t, 1.0, cosineSimilarity(v, v), "vector %v", v)
		w := make([]float64, len(v))
		for j := range v {
			w[j] = -v[j]
		}
		require.Equal(t, -1.0, cosineSimilarity(v, w), "vector %v", v)
	}
}
