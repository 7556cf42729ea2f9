package advisor

import (
	"context"
	"sync"
	"time"

	"crop-compass/internal/domain"
)

const memoryStoreCap = 200

// MemoryStore keeps conversations in process memory. It backs the advisor
// when no Postgres pool is configured, so history is lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	chats map[int64][]domain.ConversationMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chats: make(map[int64][]domain.ConversationMessage)}
}

func (s *MemoryStore) AppendMessage(ctx context.Context, chatID int64, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.chats[chatID], domain.ConversationMessage{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if len(msgs) > memoryStoreCap {
		msgs = msgs[len(msgs)-memoryStoreCap:]
	}
	s.chats[chatID] = msgs
	return nil
}

func (s *MemoryStore) RecentMessages(ctx context.Context, chatID int64, limit int) ([]domain.ConversationMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.chats[chatID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.ConversationMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
