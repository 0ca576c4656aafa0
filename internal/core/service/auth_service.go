package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/auth"
	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

// AuthService implements signup, login, and token resolution.
type AuthService struct {
	repo   ports.UserRepository
	cache  ports.UserCache // optional, may be nil
	codec  *auth.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, cache ports.UserCache, codec *auth.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, cache: cache, codec: codec, logger: logger}
}

// Signup creates a new user with role USER. The email must not already be
// registered (case-sensitive exact match).
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.PublicUser, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created.Public(), nil
}

// Login verifies the credentials and issues a bearer token bound to the
// user's id. A missing account and a wrong password return the same
// ErrInvalidCredentials so account existence is never leaked.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user.Public(), nil
}

// Resolve verifies the token and looks up its subject. A valid token whose
// subject no longer exists yields ErrUnknownSubject, distinct from token
// invalidity even though both surface as unauthorized at the HTTP boundary.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.PublicUser, error) {
	subjectID, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, subjectID); ok {
			return user.Public(), nil
		}
	}

	user, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user.Public(), nil
}

// ListUsers returns the public projection of every user. Intended for the
// admin surface only; authorization happens at the route guard.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.PublicUser, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
