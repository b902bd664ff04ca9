package mailshell

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MemoryMessageStore implements the MessageStore interface using memory as the storage medium
type MemoryMessageStore struct {
	mu       sync.RWMutex
	messages map[string]Message
	order    []string // Message IDs in arrival order
}

// NewMemoryMessageStore creates a new memory-based message store holding the given messages
func NewMemoryMessageStore(seed ...Message) *MemoryMessageStore {
	s := &MemoryMessageStore{
		messages: make(map[string]Message),
	}
	for _, msg := range seed {
		if msg.ID == "" {
			continue
		}
		if _, exists := s.messages[msg.ID]; !exists {
			s.order = append(s.order, msg.ID)
		}
		s.messages[msg.ID] = msg.clone()
	}
	return s
}

// ListMessages returns copies of all messages in arrival order
func (s *MemoryMessageStore) ListMessages(ctx context.Context) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]Message, 0, len(s.order))
	for _, id := range s.order {
		msgs = append(msgs, s.messages[id].clone())
	}
	return msgs, nil
}

// GetMessage retrieves a message by ID
func (s *MemoryMessageStore) GetMessage(ctx context.Context, messageID string) (Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, exists := s.messages[messageID]
	if !exists {
		return Message{}, fmt.Errorf("message %s: %w", messageID, ErrMessageNotFound)
	}
	return msg.clone(), nil
}

// SaveMessage inserts or replaces a message
func (s *MemoryMessageStore) SaveMessage(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		return errors.New("message must have an ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[msg.ID]; !exists {
		s.order = append(s.order, msg.ID)
	}
	s.messages[msg.ID] = msg.clone()
	return nil
}

// DeleteMessage deletes a message by ID
func (s *MemoryMessageStore) DeleteMessage(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[messageID]; !exists {
		return fmt.Errorf("message %s: %w", messageID, ErrMessageNotFound)
	}

	delete(s.messages, messageID)
	for i, id := range s.order {
		if id == messageID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
