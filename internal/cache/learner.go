package cache

import (
	"context"

	logx "github.com/algotutor-core/server/pkg/logger"
)

// Learner is the only write path into the semantic cache: every Put goes
// through the value filter first. Learning is best-effort; failures are
// logged and swallowed so they can never fail a user-visible turn.
type Learner struct {
	filter ValueFilter
	cache  *SemanticCache
}

func NewLearner(filter ValueFilter, cache *SemanticCache) *Learner {
	return &Learner{filter: filter, cache: cache}
}

// Learn persists the pair when the filter accepts it. Returns whether a write
// was attempted and accepted; never returns an error.
func (l *Learner) Learn(ctx context.Context, question, answer string) bool {
	if l == nil || l.cache == nil {
		return false
	}
	if !l.filter.Accept(question, answer) {
		logx.Debug().Str("question", question).Msg("interaction not cached (below value filter)")
		return false
	}
	if err := l.cache.Put(ctx, question, answer); err != nil {
		logx.Warn().Err(err).Str("question", question).Msg("learning write failed (non-critical)")
		return false
	}
	logx.Debug().Str("question", question).Msg("learned from interaction")
	return true
}
