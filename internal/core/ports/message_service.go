package ports

import (
	"context"

	"github.com/seedx/support-backend/internal/core/domain"
)

// MessageService exposes conversation operations on a ticket the caller owns.
type MessageService interface {
	Add(ctx context.Context, userID, ticketID, content string) (*domain.Message, error)
	// List returns the ticket's messages in strict creation-time order.
	List(ctx context.Context, userID, ticketID string) ([]*domain.Message, error)
}
