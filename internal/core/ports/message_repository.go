package ports

import (
	"context"

	"github.com/seedx/support-backend/internal/core/domain"
)

// MessageRepository defines the interface for message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	ListByTicket(ctx context.Context, ticketID string) ([]*domain.Message, error)
}
