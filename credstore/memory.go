package credstore

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store for tests and embedded consumers.
// It satisfies the same atomicity contract as RedisStore but does not
// survive a restart.
type MemoryStore struct {
	mu  sync.RWMutex
	rec Record
	set bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored record.
func (s *MemoryStore) Save(_ context.Context, creds Credentials, identity []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := make([]byte, len(identity))
	copy(blob, identity)
	s.rec = Record{Credentials: creds, Identity: blob}
	s.set = true
	return nil
}

// Load returns a copy of the stored record, or a zero Record when empty.
func (s *MemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return Record{}, nil
	}
	blob := make([]byte, len(s.rec.Identity))
	copy(blob, s.rec.Identity)
	return Record{Credentials: s.rec.Credentials, Identity: blob}, nil
}

// Clear empties the store. Clearing an empty store is a no-op.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = Record{}
	s.set = false
	return nil
}
