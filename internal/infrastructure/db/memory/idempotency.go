package memory

import (
	"context"
	"sync"

	"github.com/univadmin/records-system/internal/core/ports"
)

// IdempotencyStore keeps idempotency keys in a map. Entries never expire.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]ports.IdempotencyEntry
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]ports.IdempotencyEntry)}
}

func (s *IdempotencyStore) Reserve(_ context.Context, key, fingerprint string) (ports.IdempotencyEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e, false, nil
	}
	e := ports.IdempotencyEntry{Fingerprint: fingerprint}
	s.entries[key] = e
	return e, true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key, fingerprint, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = ports.IdempotencyEntry{Fingerprint: fingerprint, ResourceID: id}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
