package ports

import (
	"context"

	"github.com/seedx/support-backend/internal/core/domain"
)

// AuthService orchestrates signup, login, and bearer-token resolution.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error)
	Resolve(ctx context.Context, token string) (*domain.PublicUser, error)
}
