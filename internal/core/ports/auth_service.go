package ports

import (
	"context"

	"github.com/univadmin/records-system/internal/core/domain"
)

// LoginResult is returned after a successful login.
type LoginResult struct {
	AccessToken         string
	NeedsPasswordChange bool
	User                *domain.Credentials
}

type AuthService interface {
	Login(ctx context.Context, id, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
}
