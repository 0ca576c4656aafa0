package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

// MessageService implements the conversation on a ticket. Every operation
// verifies the caller owns the ticket before touching messages.
type MessageService struct {
	tickets  ports.TicketRepository
	messages ports.MessageRepository
}

func NewMessageService(tickets ports.TicketRepository, messages ports.MessageRepository) *MessageService {
	return &MessageService{tickets: tickets, messages: messages}
}

func (s *MessageService) Add(ctx context.Context, userID, ticketID, content string) (*domain.Message, error) {
	if err := s.checkOwnership(ctx, userID, ticketID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		Content:   content,
		IsAI:      false,
		TicketID:  ticketID,
		AuthorID:  userID,
		CreatedAt: time.Now().UTC(),
	}
	return s.messages.Create(ctx, msg)
}

func (s *MessageService) List(ctx context.Context, userID, ticketID string) ([]*domain.Message, error) {
	if err := s.checkOwnership(ctx, userID, ticketID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	SortChronological(msgs)
	return msgs, nil
}

func (s *MessageService) checkOwnership(ctx context.Context, userID, ticketID string) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}

// SortChronological orders messages by creation time regardless of the
// order the repository returned them in.
func SortChronological(msgs []*domain.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
