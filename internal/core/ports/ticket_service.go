package ports

import (
	"context"

	"github.com/seedx/support-backend/internal/core/domain"
)

// CreateTicketInput carries the user-supplied fields of a new ticket.
type CreateTicketInput struct {
	Title       string
	Description string
}

// TicketService exposes ticket operations with ownership enforcement.
type TicketService interface {
	Create(ctx context.Context, userID string, input CreateTicketInput) (*domain.Ticket, error)
	List(ctx context.Context, userID string) ([]*domain.Ticket, error)
	// Get returns the ticket only when it exists and is owned by userID:
	// domain.ErrTicketNotFound when absent, domain.ErrForbidden when owned
	// by someone else.
	Get(ctx context.Context, userID, ticketID string) (*domain.Ticket, error)
}
