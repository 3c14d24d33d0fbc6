package memory

import (
	"context"
	"sync"

	"github.com/concilio-labs/concilio/internal/domain"
)

// ThreadStore keeps per-thread dialogue history in memory. Like FactStore it
// loses everything on restart.
type ThreadStore struct {
	mu       sync.RWMutex
	messages map[domain.ThreadKey][]*domain.ThreadMessage
}

func NewThreadStore() *ThreadStore {
	return &ThreadStore{
		messages: make(map[domain.ThreadKey][]*domain.ThreadMessage),
	}
}

func (s *ThreadStore) AppendMessage(_ context.Context, msg *domain.ThreadMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.ThreadKey] = append(s.messages[msg.ThreadKey], msg)
	return nil
}

func (s *ThreadStore) History(_ context.Context, key domain.ThreadKey) ([]*domain.ThreadMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[key]
	out := make([]*domain.ThreadMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
