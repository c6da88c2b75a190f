package storage

import (
	"context"
	"sync"

	"challenges-backend/game"
)

// MemoryStore is the default in-process store. Suitable for development and
// tests; state does not survive a restart.
type MemoryStore struct {
	mu         sync.RWMutex
	games      map[string]*game.State
	signatures map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:      make(map[string]*game.State),
		signatures: make(map[string]int64),
	}
}

// GetGame returns a copy of the stored game state.
func (s *MemoryStore) GetGame(_ context.Context, id string) (*game.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

// PutGame stores a copy of the game state.
func (s *MemoryStore) PutGame(_ context.Context, id string, state *game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *state
	s.games[id] = &cp
	return nil
}

// LookupSignature returns the challenge ID recorded for a signature.
func (s *MemoryStore) LookupSignature(_ context.Context, signature string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.signatures[signature]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

// RecordSignature remembers that a signature produced a challenge record.
func (s *MemoryStore) RecordSignature(_ context.Context, signature string, challengeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signatures[signature] = challengeID
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }
