package session

import (
	"context"
	"errors"
	"sync"
)

// ErrStoreClosed is returned by any operation on a closed store.
var ErrStoreClosed = errors.New("session store closed")

// MemoryStore is a map-backed [Store]. Nothing survives the process; it
// exists for tests and for callers that explicitly want a session scoped to
// one run.
type MemoryStore struct {
	mu     sync.RWMutex
	slots  map[string][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Read(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	data, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Write(ctx context.Context, slot string, data []byte) error {
	return s.WriteAll(ctx, map[string][]byte{slot: data})
}

func (s *MemoryStore) WriteAll(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	for slot, data := range values {
		if data == nil {
			delete(s.slots, slot)
			continue
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		s.slots[slot] = cp
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.slots = nil
	return nil
}
