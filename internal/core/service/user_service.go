package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/univadmin/records-system/internal/api/metrics"
	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/query"
)

// UserListSpec is the filter whitelist of GET /users.
var UserListSpec = query.ListSpec{
	Filters: map[string]query.Kind{
		"id":                  query.String,
		"role":                query.String,
		"needsPasswordChange": query.Bool,
	},
	Search: []string{"id"},
	Sorts:  []string{"id", "role", "updatedAt"},
}

// UserService implements ports.UserService.
type UserService struct {
	repo            ports.UserRepository
	ids             ports.IdentityAllocator
	hasher          ports.PasswordHasher
	idempotency     ports.IdempotencyStore
	defaultPassword string
	logger          zerolog.Logger
}

// NewUserService wires the user use cases. idempotency may be nil, in which
// case Idempotency-Key values are ignored.
func NewUserService(
	repo ports.UserRepository,
	ids ports.IdentityAllocator,
	hasher ports.PasswordHasher,
	idempotency ports.IdempotencyStore,
	defaultPassword string,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		repo:            repo,
		ids:             ids,
		hasher:          hasher,
		idempotency:     idempotency,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// Create allocates an identifier, hashes the password (or the configured
// default, flagging the account for a forced change) and stores the account.
// A request carrying an Idempotency-Key reserves the key before any
// identifier is allocated; a retry with the same body gets the original
// account back.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domain.NewValidationError("role", "must be one of student, faculty, admin")
	}
	if err := input.Profile.Validate(input.Role); err != nil {
		return nil, err
	}

	password, needsChange := input.Password, false
	if password == "" {
		password, needsChange = s.defaultPassword, true
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required when no default password is configured")
	}

	fingerprint := createFingerprint(input)
	existing, claimed, err := s.claim(ctx, input.IdempotencyKey, fingerprint)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user, err := s.create(ctx, input, password, needsChange)
	if err != nil {
		if claimed {
			if rerr := s.idempotency.Release(ctx, input.IdempotencyKey); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if claimed {
		if err := s.idempotency.Complete(ctx, input.IdempotencyKey, fingerprint, user.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to record idempotency key")
		}
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(input.Role), strconv.FormatBool(needsChange)).Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", string(input.Role)).Bool("default_password", needsChange).Msg("user created")

	created := *user
	created.PasswordHash = ""
	return &created, nil
}

func (s *UserService) create(ctx context.Context, input ports.CreateUserInput, password string, needsChange bool) (*domain.User, error) {
	id, err := s.ids.Generate(ctx, input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:                  id,
		Role:                input.Role,
		PasswordHash:        hash,
		NeedsPasswordChange: needsChange,
		Profile:             input.Profile,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if !needsChange {
		user.PasswordChangedAt = &now
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to create user")
		return nil, err
	}
	return user, nil
}

// claim reserves key for this request. It returns the account a previous
// request created under key, or claimed=true when the caller owns the key
// and must Complete or Release it. Store outages fall back to a plain
// create.
func (s *UserService) claim(ctx context.Context, key, fingerprint string) (*domain.User, bool, error) {
	if key == "" || s.idempotency == nil {
		return nil, false, nil
	}

	entry, reserved, err := s.idempotency.Reserve(ctx, key, fingerprint)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency store unavailable, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}

	if entry.Fingerprint != fingerprint {
		return nil, false, domain.NewValidationError("Idempotency-Key", "was already used with a different request")
	}
	if entry.ResourceID == "" {
		return nil, false, domain.ErrRequestInFlight
	}

	existing, err := s.repo.FindByID(ctx, entry.ResourceID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// the account was deleted since; the key is taken over by this request
		s.logger.Warn().Str("idempotency_key", key).Str("user_id", entry.ResourceID).Msg("idempotent user vanished, creating anyway")
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.logger.Info().Str("idempotency_key", key).Str("user_id", existing.ID).Msg("idempotent replay")
	return existing, false, nil
}

// createFingerprint identifies the body of a create request without the
// plaintext password.
func createFingerprint(input ports.CreateUserInput) string {
	h := sha256.New()
	for _, part := range []string{
		string(input.Role),
		input.Profile.Student,
		input.Profile.Faculty,
		input.Profile.Admin,
		strconv.FormatBool(input.Password != ""),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// List returns one page of users matching filter.
func (s *UserService) List(ctx context.Context, filter query.Filter, page query.PageOptions) (*query.Result[*domain.User], error) {
	page = page.Normalize()

	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &query.Result[*domain.User]{Meta: query.NewMeta(page, total), Data: items}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. Profile links are re-validated against
// the stored role.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	if input.Profile != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := input.Profile.Validate(current.Role); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, domain.UserPatch{
		NeedsPasswordChange: input.NeedsPasswordChange,
		Profile:             input.Profile,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return deleted, nil
}
