package memory

import (
	"context"
	"sync"
)

// CounterStore is a mutex-guarded sequence per scope.
type CounterStore struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewCounterStore() *CounterStore {
	return &CounterStore{seqs: make(map[string]int64)}
}

// Next increments and returns the sequence for scope, starting at 1.
func (s *CounterStore) Next(_ context.Context, scope string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[scope]++
	return s.seqs[scope], nil
}
