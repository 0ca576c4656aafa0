package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seedx/support-backend/internal/core/ports"
)

// MessageHandler handles HTTP requests for a ticket's conversation.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type createMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create appends a user message to a ticket the caller owns.
//
// @Summary      Post a message on a ticket
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_id  path      string                true  "Ticket id"
// @Param        body       body      createMessageRequest  true  "Message content"
// @Success      201        {object}  domain.Message
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /tickets/{ticket_id}/messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Add(c.Request().Context(), user.ID, c.Param("ticket_id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List returns the ticket's messages in creation-time order.
//
// @Summary      List messages on a ticket
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_id  path      string  true  "Ticket id"
// @Success      200        {array}   domain.Message
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /tickets/{ticket_id}/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.List(c.Request().Context(), user.ID, c.Param("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}
