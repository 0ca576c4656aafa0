package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seedx/support-backend/internal/core/ports"
)

// TicketHandler handles HTTP requests for ticket operations.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

type createTicketRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// List returns the caller's tickets.
//
// @Summary      List own tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Ticket
// @Failure      401  {object}  map[string]string
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Create opens a new support ticket owned by the caller.
//
// @Summary      Create a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  domain.Ticket
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ticket)
}

// Get returns a single ticket the caller owns.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_id  path      string  true  "Ticket id"
// @Success      200        {object}  domain.Ticket
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /tickets/{ticket_id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), user.ID, c.Param("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}
