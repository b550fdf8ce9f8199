package blob

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	ok   bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Seed pre-loads the store, e.g. with a corrupt blob.
func (s *MemoryStore) Seed(data []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.ok = true
	s.mu.Unlock()
}

func (s *MemoryStore) Load(ctx context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.ok = true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
