package ports

import "context"

// IdempotencyEntry is what a client-supplied key currently maps to.
// ResourceID is empty while the first request is still in flight.
type IdempotencyEntry struct {
	Fingerprint string
	ResourceID  string
}

// IdempotencyStore reserves client-supplied keys and remembers which
// resource each one produced.
type IdempotencyStore interface {
	// Reserve atomically claims key for a request with fingerprint. If the
	// key is already taken it returns the existing entry and false.
	Reserve(ctx context.Context, key, fingerprint string) (IdempotencyEntry, bool, error)
	// Complete records the resource produced under a reserved key.
	Complete(ctx context.Context, key, fingerprint, id string) error
	// Release drops a reservation whose request failed.
	Release(ctx context.Context, key string) error
}
