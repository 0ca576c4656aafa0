package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

// TicketService implements ticket operations with a single ownership policy:
// 404 only when the ticket does not exist, 403 whenever it exists but
// belongs to someone else.
type TicketService struct {
	repo   ports.TicketRepository
	logger zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, logger: logger}
}

func (s *TicketService) Create(ctx context.Context, userID string, input ports.CreateTicketInput) (*domain.Ticket, error) {
	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketOpen,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create ticket")
		return nil, err
	}

	s.logger.Info().Str("ticket_id", created.ID).Str("user_id", userID).Msg("ticket created")
	return created, nil
}

func (s *TicketService) List(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TicketService) Get(ctx context.Context, userID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return ticket, nil
}
