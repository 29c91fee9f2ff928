package tokenstore

import "sync"

// MemoryStore keeps tokens for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens Tokens
}

// NewMemoryStore creates a store, optionally seeded with tokens.
func NewMemoryStore(seed ...Tokens) *MemoryStore {
	s := &MemoryStore{}
	if len(seed) > 0 {
		s.tokens = seed[0]
	}
	return s
}

func (s *MemoryStore) Load() (Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, nil
}

func (s *MemoryStore) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	return nil
}

func (s *MemoryStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.Access = access
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	return nil
}
