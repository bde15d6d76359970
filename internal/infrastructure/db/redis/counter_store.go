package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CounterStore implements ports.CounterStore with INCR, which Redis executes
// atomically. Key format: idseq:<scope>
type CounterStore struct {
	client *redis.Client
}

func NewCounterStore(client *redis.Client) *CounterStore {
	return &CounterStore{client: client}
}

// Next increments the scope's sequence and returns the new value.
func (s *CounterStore) Next(ctx context.Context, scope string) (int64, error) {
	n, err := s.client.Incr(ctx, "idseq:"+scope).Result()
	if err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", scope, err)
	}
	return n, nil
}
