package ports

import "context"

// CounterStore hands out monotonically increasing sequence values per scope.
// Next must be atomic: concurrent callers never observe the same value.
type CounterStore interface {
	Next(ctx context.Context, scope string) (int64, error)
}
