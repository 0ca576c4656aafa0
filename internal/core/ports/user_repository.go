package ports

import (
	"context"

	"github.com/seedx/support-backend/internal/core/domain"
)

// UserRepository defines the interface for user persistence (the directory).
// Email uniqueness is enforced by the implementation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
}

// UserCache is an optional read-through cache for resolved users, consulted
// on the authenticated hot path before hitting the repository. Entries are
// evicted by TTL only; no operation mutates a stored user.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
}
