package store

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps the flags in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	state map[string]bool
}

// NewMemoryStore returns a store seeded with a copy of initial.
func NewMemoryStore(initial map[string]bool) *MemoryStore {
	s := &MemoryStore{state: make(map[string]bool, len(initial))}
	maps.Copy(s.state, initial)
	return s
}

func (s *MemoryStore) Load(_ context.Context) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.state), nil
}

func (s *MemoryStore) Save(_ context.Context, state map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = maps.Clone(state)
	if s.state == nil {
		s.state = map[string]bool{}
	}
	return nil
}
