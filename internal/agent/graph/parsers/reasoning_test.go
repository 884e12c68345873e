package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractReasoning(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantReasoning string
		wantAnswer    string
	}{
		{
			name:          "reasoning then answer",
			content:       "<thinking>The user wants a definition.\nI should check the knowledge base.</thinking>\nA BST is a sorted tree.",
			wantReasoning: "The user wants a definition.\nI should check the knowledge base.",
			wantAnswer:    "A BST is a sorted tree.",
		},
		{
			name:          "no reasoning segment",
			content:       "A BST is a sorted tree.",
			wantReasoning: "",
			wantAnswer:    "A BST is a sorted tree.",
		},
		{
			name:          "unterminated tag left in place",
			content:       "<thinking>half a thought\nA BST is a sorted tree.",
			wantReasoning: "",
			wantAnswer:    "<thinking>half a thought\nA BST is a sorted tree.",
		},
		{
			name:          "empty content",
			content:       "",
			wantReasoning: "",
			wantAnswer:    "",
		},
		{
			name:          "only reasoning, empty answer",
			content:       "<thinking>no tool needed</thinking>",
			wantReasoning: "no tool needed",
			wantAnswer:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasoning, answer := ExtractReasoning(tt.content)
			assert.Equal(t, tt.wantReasoning, reasoning)
			assert.Equal(t, tt.wantAnswer, answer)
		})
	}
}

func TestStripReasoningRemovesAllSegments(t *testing.T) {
	content := "<thinking>first</thinking>Hello<thinking>second</thinking> world"
	assert.Equal(t, "Hello world", StripReasoning(content))
}

func TestExtractReasoningTruncatesPathologicalInput(t *testing.T) {
	content := "<thinking>x</thinking>" + strings.Repeat("a", 256*1024)
	reasoning, answer := ExtractReasoning(content)
	assert.Equal(t, "x", reasoning)
	assert.LessOrEqual(t, len(answer), 128*1024)
}

func TestReasoningLines(t *testing.T) {
	assert.Nil(t, ReasoningLines(""))
	assert.Equal(t,
		[]string{"step one", "step two"},
		ReasoningLines("  step one  \n\n\tstep two\n"))
}
