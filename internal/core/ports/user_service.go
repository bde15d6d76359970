package ports

import (
	"context"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

// CreateUserInput carries the data for a new account. Password may be empty,
// in which case the configured default password is applied.
type CreateUserInput struct {
	Role     domain.Role
	Password string
	Profile  domain.ProfileLinks
	// IdempotencyKey, when set, makes retries of the same request return the
	// account created by the first attempt.
	IdempotencyKey string
}

// UpdateUserInput is a partial update; nil fields are untouched.
type UpdateUserInput struct {
	NeedsPasswordChange *bool
	Profile             *domain.ProfileLinks
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context, filter query.Filter, page query.PageOptions) (*query.Result[*domain.User], error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
