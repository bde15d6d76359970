package ports

import (
	"context"
	"time"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

// UserRepository defines persistence operations for user accounts.
// Read methods other than FindCredentials never populate PasswordHash.
type UserRepository interface {
	// Create stores u as-is; PasswordHash must already be hashed.
	// An identifier collision returns domain.ErrUserExists.
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context, filter query.Filter, page query.PageOptions) ([]*domain.User, int64, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindCredentials returns the fields needed to authenticate id.
	FindCredentials(ctx context.Context, id string) (*domain.Credentials, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	// SetPassword replaces the stored hash and clears needsPasswordChange.
	SetPassword(ctx context.Context, id, hash string, changedAt time.Time) error
	Delete(ctx context.Context, id string) (*domain.User, error)
}
