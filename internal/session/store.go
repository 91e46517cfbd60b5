package session

import (
	"sync"

	"kgchat/internal/models"
)

// Store keeps one append-only message history per user identifier.
// Histories live for the process lifetime and are never reordered or
// truncated.
type Store struct {
	mu        sync.RWMutex
	histories map[string][]models.Message
}

func NewStore() *Store {
	return &Store{histories: make(map[string][]models.Message)}
}

// Append adds a message to the end of the user's history, creating the
// history on first use.
func (s *Store) Append(userID string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[userID] = append(s.histories[userID], msg)
}

// History returns a copy of the user's message sequence in append order.
// An unknown user yields an empty slice.
func (s *Store) History(userID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.histories[userID]
	cp := make([]models.Message, len(history))
	copy(cp, history)
	return cp
}
