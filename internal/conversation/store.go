// Package conversation keeps per-conversation turn history. The store is
// injected into the orchestrator so a persistent implementation can be
// swapped in without touching it.
package conversation

import (
	"errors"
	"sync"

	"github.com/sayedabdulkarim/sarim-ai/internal/model"
)

var ErrNotFound = errors.New("conversation not found")

// Store holds ordered turn history keyed by conversation id. Append
// creates a conversation lazily; History and Clear report ErrNotFound for
// unknown ids.
type Store interface {
	Append(id string, turns ...model.Turn)
	History(id string) ([]model.Turn, error)
	Clear(id string) error
}

// MemoryStore is the in-process Store. The lock is held only around
// history mutation, never around generation, so turns land in completion
// order.
type MemoryStore struct {
	mu            sync.Mutex
	conversations map[string][]model.Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]model.Turn)}
}

func (s *MemoryStore) Append(id string, turns ...model.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = append(s.conversations[id], turns...)
}

func (s *MemoryStore) History(id string) ([]model.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(s.conversations, id)
	return nil
}
