package cache

import (
	"context"
	"math"
	"time"

	logx "github.com/algotutor-core/server/pkg/logger"
	"gonum.org/v1/gonum/floats"
)

// EmbeddingProvider turns text into a fixed-length vector. Implementations may
// be unavailable; the semantic cache degrades gracefully when the provider is
// nil or failing.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Entry is one learned question/answer pair. Entries are immutable once
// written; updates create new entries, never mutate in place.
type Entry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Embedding []float64 `json:"embedding"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchKind tags the outcome of a semantic lookup so callers pattern-match on
// kind instead of catching faults.
type MatchKind int

const (
	// MatchFound means an entry at or above the threshold was found.
	MatchFound MatchKind = iota
	// MatchNone means no stored entry reached the threshold.
	MatchNone
	// MatchUnavailable means no embedding provider is configured; similarity
	// features are degraded, not broken.
	MatchUnavailable
)

// Lookup is the result of SemanticCache.Get.
type Lookup struct {
	Kind  MatchKind
	Entry Entry
	Score float64
}

// SemanticCache is a similarity-addressed store of question/answer pairs.
// Retrieval is a deliberate linear scan over all entries: O(n) per query is
// acceptable at the target corpus size, and the Get contract leaves room to
// swap in an ANN index later.
type SemanticCache struct {
	store    EntryStore
	embedder EmbeddingProvider
}

// NewSemanticCache builds a semantic cache over the given store. embedder may
// be nil, in which case Get reports MatchUnavailable and Put drops writes.
func NewSemanticCache(store EntryStore, embedder EmbeddingProvider) *SemanticCache {
	return &SemanticCache{store: store, embedder: embedder}
}

// Get scans all stored entries and returns the highest-scoring one at or
// above threshold. Ties break by score, then by most recent CreatedAt.
func (c *SemanticCache) Get(ctx context.Context, question string, threshold float64) (Lookup, error) {
	if c.embedder == nil {
		return Lookup{Kind: MatchUnavailable}, nil
	}

	queryVec, err := c.embedder.Embed(ctx, question)
	if err != nil {
		logx.Warn().Err(err).Msg("embedding failed; semantic lookup unavailable for this query")
		return Lookup{Kind: MatchUnavailable}, nil
	}

	entries, err := c.store.List(ctx)
	if err != nil {
		return Lookup{}, err
	}

	best := Lookup{Kind: MatchNone, Score: math.Inf(-1)}
	for _, e := range entries {
		score := cosineSimilarity(queryVec, e.Embedding)
		if score < threshold {
			continue
		}
		if score > best.Score || (score == best.Score && e.CreatedAt.After(best.Entry.CreatedAt)) {
			best = Lookup{Kind: MatchFound, Entry: e, Score: score}
		}
	}
	if best.Kind != MatchFound {
		return Lookup{Kind: MatchNone}, nil
	}
	return best, nil
}

// Put embeds the question and appends a new immutable entry. An embedding
// failure drops the write silently: the pair is treated as not valuable
// enough to learn, not as an error. Store failures are returned.
func (c *SemanticCache) Put(ctx context.Context, question, answer string) error {
	if c.embedder == nil {
		logx.Debug().Msg("no embedding provider; dropping semantic cache write")
		return nil
	}
	vec, err := c.embedder.Embed(ctx, question)
	if err != nil {
		logx.Debug().Err(err).Msg("embedding failed; dropping semantic cache write")
		return nil
	}
	return c.store.Append(ctx, Entry{
		Question:  question,
		Answer:    answer,
		Embedding: vec,
		CreatedAt: time.Now(),
	})
}

// cosineUnitEpsilon absorbs the rounding of dot/(|a|·|b|), which can leave
// identical vectors a few ulps shy of exact similarity. Without the snap,
// Get(question, 1.0) would miss the very entry Put just stored.
const cosineUnitEpsilon = 1e-9

// cosineSimilarity returns the normalized dot product of a and b in [-1, 1].
// Mismatched or zero-length vectors score 0 and therefore never match a
// positive threshold. Scores within cosineUnitEpsilon of ±1 snap to ±1.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := math.Sqrt(floats.Dot(a, a))
	nb := math.Sqrt(floats.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	score := floats.Dot(a, b) / (na * nb)
	switch {
	case score >= 1-cosineUnitEpsilon:
		return 1
	case score <= cosineUnitEpsilon-1:
		return -1
	}
	return score
}
