package memory

import (
	"context"
	"sync"
	"time"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

// UserRepository implements ports.UserRepository in memory.
type UserRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; exists {
		return domain.ErrUserExists
	}
	clone := *u
	r.byID[u.ID] = &clone
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepository) List(_ context.Context, filter query.Filter, page query.PageOptions) ([]*domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, public(r.byID[id]))
	}
	items, total := window(all, filter, page, userFields)
	return items, total, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return public(u), nil
}

func (r *UserRepository) FindCredentials(_ context.Context, id string) (*domain.Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Credentials{
		ID:                  u.ID,
		Role:                u.Role,
		PasswordHash:        u.PasswordHash,
		NeedsPasswordChange: u.NeedsPasswordChange,
	}, nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.NeedsPasswordChange != nil {
		u.NeedsPasswordChange = *patch.NeedsPasswordChange
	}
	if patch.Profile != nil {
		u.Profile = *patch.Profile
	}
	u.UpdatedAt = time.Now().UTC()
	return public(u), nil
}

func (r *UserRepository) SetPassword(_ context.Context, id, hash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.NeedsPasswordChange = false
	u.PasswordChangedAt = &changedAt
	u.UpdatedAt = changedAt
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return public(u), nil
}

// public copies u without its password hash.
func public(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	if u.PasswordChangedAt != nil {
		t := *u.PasswordChangedAt
		clone.PasswordChangedAt = &t
	}
	return &clone
}

func userFields(u *domain.User) map[string]any {
	return map[string]any{
		"id":                  u.ID,
		"role":                string(u.Role),
		"needsPasswordChange": u.NeedsPasswordChange,
		"createdAt":           u.CreatedAt,
		"updatedAt":           u.UpdatedAt,
	}
}
