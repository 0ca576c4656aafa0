package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seedx/support-backend/internal/core/domain"
)

// UserLister is the slice of the auth service the admin surface needs.
type UserLister interface {
	ListUsers(ctx context.Context) ([]*domain.PublicUser, error)
}

// AdminHandler exposes the admin-only user directory listing.
type AdminHandler struct {
	users UserLister
}

func NewAdminHandler(users UserLister) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns every registered user's public projection.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
