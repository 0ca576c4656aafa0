package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seedx/support-backend/internal/core/domain"
)

// RequireRole enforces that the gate bound a user carrying the required
// role. Applied at the route level, after Auth has run.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.PublicUser)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if user.Role != required {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
