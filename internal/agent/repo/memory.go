package repo

import (
	"context"
	"sync"

	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/cloudwego/eino/schema"
)

// MemoryConversationRepository keeps conversation history in process memory.
// Used when no Redis URL is configured and by tests. Histories are lost on
// restart; there is no TTL.
type MemoryConversationRepository struct {
	mu       sync.RWMutex
	sessions map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{sessions: make(map[string][]*schema.Message)}
}

func (r *MemoryConversationRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = append(r.sessions[sessionID], message)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(ctx context.Context, sessionID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.sessions[sessionID]
	msgs := make([]*schema.Message, len(src))
	copy(msgs, src)
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(ctx context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[sessionID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
