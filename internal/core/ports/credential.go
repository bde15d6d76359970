package ports

import (
	"context"

	"github.com/univadmin/records-system/internal/core/domain"
)

// PasswordHasher abstracts the one-way password hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// IdentityAllocator issues external user identifiers.
type IdentityAllocator interface {
	Generate(ctx context.Context, role domain.Role) (string, error)
}
