package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/univadmin/records-system/internal/api/metrics"
	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
)

// userIDWidth is the zero-padded width of the numeric suffix: S-00001.
const userIDWidth = 5

// IdentityAllocator issues role-prefixed sequential user identifiers backed
// by an atomic counter per role.
type IdentityAllocator struct {
	counters ports.CounterStore
	backend  string
	log      zerolog.Logger
}

// NewIdentityAllocator allocates from counters. backend names the counter
// store in metrics (mongo, redis or memory).
func NewIdentityAllocator(counters ports.CounterStore, backend string, log zerolog.Logger) *IdentityAllocator {
	return &IdentityAllocator{counters: counters, backend: backend, log: log}
}

// Generate returns the next identifier for role.
func (a *IdentityAllocator) Generate(ctx context.Context, role domain.Role) (string, error) {
	if !role.Valid() {
		return "", domain.NewValidationError("role", "must be one of student, faculty, admin")
	}

	n, err := a.counters.Next(ctx, CounterScope(role))
	if err != nil {
		metrics.IDAllocationsTotal.WithLabelValues(string(role), a.backend, "error").Inc()
		return "", fmt.Errorf("allocate user id: %w", err)
	}
	metrics.IDAllocationsTotal.WithLabelValues(string(role), a.backend, "ok").Inc()

	id := FormatUserID(role, n)
	a.log.Debug().Str("role", string(role)).Str("user_id", id).Msg("user id allocated")
	return id, nil
}

// CounterScope is the counter key used for role.
func CounterScope(role domain.Role) string {
	return "user:" + string(role)
}

// FormatUserID renders n as <prefix>-<zero padded n>. Values wider than
// userIDWidth keep all their digits.
func FormatUserID(role domain.Role, n int64) string {
	return fmt.Sprintf("%s-%0*d", role.IDPrefix(), userIDWidth, n)
}
