package notes

import "sync"

// Store keeps processed notes in memory by ID.
type Store struct {
	mu    sync.RWMutex
	items map[string]Notes
}

func NewStore() *Store {
	return &Store{items: make(map[string]Notes)}
}

func (s *Store) Put(n Notes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[n.ID] = n
}

func (s *Store) Get(id string) (Notes, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.items[id]
	return n, ok
}
