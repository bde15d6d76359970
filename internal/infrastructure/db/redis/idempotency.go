package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/univadmin/records-system/internal/core/ports"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore implements ports.IdempotencyStore backed by Redis.
// Key format: idem:<namespace>:<client key>
// Value format: <fingerprint>|<resource id>, with an empty id while the
// first request is in flight.
type IdempotencyStore struct {
	client    *redis.Client
	namespace string
}

// NewIdempotencyStore creates a store whose keys are scoped to namespace
// (e.g. "users").
func NewIdempotencyStore(client *redis.Client, namespace string) *IdempotencyStore {
	return &IdempotencyStore{client: client, namespace: namespace}
}

// Reserve claims key with SETNX. A key that expires between the SETNX and
// the GET is claimed on the second attempt.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, fingerprint string) (ports.IdempotencyEntry, bool, error) {
	k := s.key(key)
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, encodeEntry(fingerprint, ""), idempotencyTTL).Result()
		if err != nil {
			return ports.IdempotencyEntry{}, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return ports.IdempotencyEntry{Fingerprint: fingerprint}, true, nil
		}

		raw, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return ports.IdempotencyEntry{}, false, fmt.Errorf("idempotency lookup: %w", err)
		}
		return decodeEntry(raw), false, nil
	}
	return ports.IdempotencyEntry{}, false, fmt.Errorf("idempotency reserve: key %q kept expiring", key)
}

// Complete records id under key for idempotencyTTL.
func (s *IdempotencyStore) Complete(ctx context.Context, key, fingerprint, id string) error {
	if err := s.client.Set(ctx, s.key(key), encodeEntry(fingerprint, id), idempotencyTTL).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return fmt.Sprintf("idem:%s:%s", s.namespace, k)
}

func encodeEntry(fingerprint, id string) string {
	return fingerprint + "|" + id
}

func decodeEntry(raw string) ports.IdempotencyEntry {
	fp, id, _ := strings.Cut(raw, "|")
	return ports.IdempotencyEntry{Fingerprint: fp, ResourceID: id}
}
