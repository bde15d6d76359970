package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/univadmin/records-system/internal/api/metrics"
	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
)

// AuthService implements login and password change.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, hasher: hasher, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login checks id/password and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, id, password string) (*ports.LoginResult, error) {
	id = strings.TrimSpace(id)
	if id == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	creds, err := s.IsUserExist(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if !s.IsPasswordMatched(password, creds.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		s.logger.Warn().Str("user_id", id).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(creds)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	creds.PasswordHash = ""
	return &ports.LoginResult{
		AccessToken:         token,
		NeedsPasswordChange: creds.NeedsPasswordChange,
		User:                creds,
	}, nil
}

// ChangePassword verifies oldPassword, then stores the hash of newPassword
// and clears the forced-change flag.
func (s *AuthService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.NewValidationError("newPassword", "is required")
	}
	if newPassword == oldPassword {
		return domain.NewValidationError("newPassword", "must differ from the old password")
	}

	creds, err := s.IsUserExist(ctx, id)
	if err != nil {
		return err
	}
	if !s.IsPasswordMatched(oldPassword, creds.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.SetPassword(ctx, id, hash, time.Now().UTC()); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("password changed")
	return nil
}

// IsUserExist loads the credential projection of id.
func (s *AuthService) IsUserExist(ctx context.Context, id string) (*domain.Credentials, error) {
	return s.repo.FindCredentials(ctx, id)
}

// IsPasswordMatched compares a candidate password with a stored hash.
func (s *AuthService) IsPasswordMatched(given, saved string) bool {
	return s.hasher.Verify(given, saved)
}

func (s *AuthService) generateToken(creds *domain.Credentials) (string, error) {
	claims := jwt.MapClaims{
		"id":   creds.ID,
		"role": string(creds.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
