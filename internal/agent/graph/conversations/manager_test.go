package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/algotutor-core/server/internal/agent/repo"
)

func newTestManager(maxTurns int) *MessagesManager {
	return NewMessagesManager(
		repo.NewMemoryConversationRepository(),
		model.ConversationConfig{TTL: "15m", MaxTurns: maxTurns},
	)
}

func TestProcessUserMessageSavesAndReturnsHistory(t *testing.T) {
	ctx := context.Background()
	mm := newTestManager(20)

	history, err := mm.ProcessUserMessage(ctx, "s1", "What is a heap?")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, schema.User, history[0].Role)
	assert.Equal(t, "What is a heap?", history[0].Content)

	require.NoError(t, mm.SaveResponse(ctx, "s1", "A heap is a complete binary tree."))

	history, err = mm.ProcessUserMessage(ctx, "s1", "And a stack?")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "And a stack?", history[2].Content)
}

func TestProcessUserMessageTrimsToWindow(t *testing.T) {
	ctx := context.Background()
	mm := newTestManager(4)

	var history []*schema.Message
	var err error
	for i := 0; i < 10; i++ {
		history, err = mm.ProcessUserMessage(ctx, "s1", fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		require.NoError(t, mm.SaveResponse(ctx, "s1", fmt.Sprintf("answer %d", i)))
	}

	require.Len(t, history, 4, "context window holds the last N messages")
	// the newest user message is always last
	assert.Equal(t, "question 9", history[3].Content)
	assert.Equal(t, "answer 8", history[2].Content)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	mm := newTestManager(20)

	_, err := mm.ProcessUserMessage(ctx, "s1", "first session")
	require.NoError(t, err)

	history, err := mm.ProcessUserMessage(ctx, "s2", "second session")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "second session", history[0].Content)
}
