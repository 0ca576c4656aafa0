package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/seedx/support-backend/internal/api/middleware"
	"github.com/seedx/support-backend/internal/core/domain"
)

// currentUser extracts the user bound by the authentication gate. Calling
// it on a request that never passed the gate (an open path without a token)
// yields ErrNotAuthenticated, which the error handler maps to 401.
func currentUser(c echo.Context) (*domain.PublicUser, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.PublicUser)
	if !ok || user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}
