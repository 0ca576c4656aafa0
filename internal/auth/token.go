// Package auth holds the credential primitives: the bcrypt password hasher
// and the JWT token codec. Both are pure given their configuration and safe
// for concurrent use.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seedx/support-backend/internal/core/domain"
)

// TokenCodec signs and verifies compact bearer tokens carrying a single
// subject claim. The secret is loaded once at startup and never rotated.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

const defaultTTL = 60 * time.Minute

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue produces a signed token for subjectID expiring after the configured
// TTL.
func (tc *TokenCodec) Issue(subjectID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subjectID,
		"exp": time.Now().Add(tc.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Verify checks the token signature and expiry and returns the subject id
// exactly as issued. It returns domain.ErrExpiredToken for an expired token
// and domain.ErrInvalidToken for any other defect (bad signature, malformed
// structure, missing subject claim).
func (tc *TokenCodec) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}
