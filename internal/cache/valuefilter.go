package cache

import (
	"strings"
	"unicode/utf8"
)

// Default thresholds for the value filter. Heuristic policy, tunable, not an
// invariant.
const (
	DefaultMinQuestionLen = 10
	DefaultMinAnswerLen   = 50
)

// defaultRejectMarkers flags apology/error answers that should never be
// learned. Matched case-insensitively.
var defaultRejectMarkers = []string{"error", "sorry"}

// ValueFilter is the pure predicate gating what gets persisted into the
// semantic cache.
type ValueFilter struct {
	MinQuestionLen int
	MinAnswerLen   int
	RejectMarkers  []string
}

// DefaultValueFilter returns the filter with the standard policy.
func DefaultValueFilter() ValueFilter {
	return ValueFilter{
		MinQuestionLen: DefaultMinQuestionLen,
		MinAnswerLen:   DefaultMinAnswerLen,
		RejectMarkers:  defaultRejectMarkers,
	}
}

// Accept reports whether the question/answer pair is worth learning. Lengths
// count runes, not bytes, so multibyte questions are measured as written.
func (f ValueFilter) Accept(question, answer string) bool {
	if utf8.RuneCountInString(question) < f.MinQuestionLen {
		return false
	}
	if utf8.RuneCountInString(answer) < f.MinAnswerLen {
		return false
	}
	lower := strings.ToLower(answer)
	for _, marker := range f.RejectMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
