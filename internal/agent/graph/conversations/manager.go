package conversations

import (
	"context"

	"github.com/algotutor-core/server/internal/agent/model"

	"github.com/cloudwego/eino/schema"
)

type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// ProcessUserMessage saves the incoming user message and returns the recent
// conversation history (including the message just saved), trimmed to the
// configured turn window.
func (cm *MessagesManager) ProcessUserMessage(ctx context.Context, sessionID string, query string) ([]*schema.Message, error) {
	userMsg := schema.UserMessage(query)
	if err := cm.conversationRepo.AddMessage(ctx, sessionID, userMsg); err != nil {
		return nil, err
	}

	history, err := cm.conversationRepo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return trimTail(history.Messages, cm.maxTurns), nil
}

// SaveResponse persists the assistant's final answer for the session.
func (cm *MessagesManager) SaveResponse(ctx context.Context, sessionID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.AddMessage(ctx, sessionID, assistantMsg)
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
