package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// cachedUser mirrors domain.User including the password hash, which the
// User JSON tags deliberately drop. The hash stays inside Redis only; the
// restored User is never serialized outward without the Public projection.
type cachedUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCache caches resolved users so token resolution on the authenticated
// hot path avoids a directory lookup per request. Entries expire after
// cacheTTL; a stale window that long is acceptable because tokens
// themselves outlive it.
type UserCache struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewUserCache(client *redis.Client, logger zerolog.Logger) *UserCache {
	return &UserCache{client: client, logger: logger}
}

// Get returns the cached user, or (nil, false) on a miss or any Redis
// error. Cache failures never fail a request.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("user cache read failed")
		}
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		c.logger.Warn().Err(err).Msg("user cache entry corrupt")
		return nil, false
	}
	return &domain.User{
		ID:           cu.ID,
		Name:         cu.Name,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		Role:         domain.Role(cu.Role),
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}, true
}

func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, cacheTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("user cache write failed")
	}
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
