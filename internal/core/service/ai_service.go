package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

// AIService relays an AI-generated reply for a ticket as an incremental
// stream. It owns the Validating phase (ticket fetch, ownership check,
// history fetch) and the Forwarding phase (prompt build, upstream call,
// chunk fan-out). The transport layer consumes the chunk channel.
type AIService struct {
	tickets     ports.TicketRepository
	messages    ports.MessageRepository
	client      ports.AIClient
	transcripts ports.TranscriptRecorder // optional, may be nil
	logger      zerolog.Logger
}

func NewAIService(tickets ports.TicketRepository, messages ports.MessageRepository, client ports.AIClient, transcripts ports.TranscriptRecorder, logger zerolog.Logger) *AIService {
	return &AIService{
		tickets:     tickets,
		messages:    messages,
		client:      client,
		transcripts: transcripts,
		logger:      logger,
	}
}

// Stream validates ownership, then opens the upstream call and returns the
// chunk channel. Validation failures return synchronously before any
// upstream connection is made. The chunk channel closes on clean
// completion; a mid-stream failure is delivered on the error channel.
// Cancelling ctx (client disconnect) aborts the upstream call.
func (s *AIService) Stream(ctx context.Context, userID, ticketID string) (<-chan string, <-chan error, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if ticket.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}

	history, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	SortChronological(history)

	prompt := BuildPrompt(ticket, history)
	upstream, upstreamErrs := s.client.StreamCompletion(ctx, prompt)

	out := make(chan string)
	errs := make(chan error, 1)
	go s.relay(ctx, ticket.ID, upstream, upstreamErrs, out, errs)

	return out, errs, nil
}

func (s *AIService) relay(ctx context.Context, ticketID string, upstream <-chan string, upstreamErrs <-chan error, out chan<- string, errs chan<- error) {
	defer close(out)

	var transcript strings.Builder
	for chunk := range upstream {
		select {
		case out <- chunk:
			transcript.WriteString(chunk)
		case <-ctx.Done():
			s.logger.Debug().Str("ticket_id", ticketID).Msg("client disconnected, aborting stream")
			return
		}
	}

	if err, ok := <-upstreamErrs; ok && err != nil {
		s.logger.Error().Err(err).Str("ticket_id", ticketID).Msg("upstream stream failed")
		errs <- err
		return
	}

	// A cancelled stream can end with a drained, closed channel; only a
	// stream that truly completed records its transcript.
	if ctx.Err() != nil {
		return
	}
	if s.transcripts != nil && transcript.Len() > 0 {
		s.transcripts.Record(ticketID, transcript.String())
	}
}

const promptPreamble = "You are a helpful customer support assistant."

// BuildPrompt concatenates the fixed preamble, the ticket's title and
// description, and each history message labeled by author class in
// chronological order, followed by the cue for the assistant's turn.
func BuildPrompt(ticket *domain.Ticket, history []*domain.Message) string {
	lines := []string{
		promptPreamble,
		fmt.Sprintf("Ticket Title: %s", ticket.Title),
		fmt.Sprintf("Description: %s", ticket.Description),
		"Conversation so far:",
	}
	for _, msg := range history {
		label := "User"
		if msg.IsAI {
			label = "AI"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, msg.Content))
	}
	lines = append(lines, "AI:")
	return strings.Join(lines, "\n")
}
