package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/ports"
)

// UserContextKey is the echo context key under which the authentication
// gate stores the resolved user (*domain.PublicUser).
const UserContextKey = "current_user"

// openPathPrefixes lists paths that pass through the gate untouched:
// signup, login, API docs, health probes, and the metrics endpoint.
var openPathPrefixes = []string{
	"/auth/signup",
	"/auth/login",
	"/docs",
	"/health",
	"/metrics",
}

// Auth is the authentication gate. For open paths the request passes
// through with no identity attached. All other paths require an
// Authorization header of the form "Bearer <token>"; the token is resolved
// to a user which is bound into the request context. Every resolution
// failure surfaces as a plain 401 — the subtype (expired, invalid, unknown
// subject) is for logs only.
func Auth(resolver ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isOpenPath(c.Request().URL.Path) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			// The scheme is case-sensitive: only "Bearer <token>" passes.
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token resolution failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func isOpenPath(path string) bool {
	for _, p := range openPathPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
