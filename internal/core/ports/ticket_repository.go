package ports

import (
	"context"

	"github.com/seedx/support-backend/internal/core/domain"
)

// TicketRepository defines the interface for ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error)
}
