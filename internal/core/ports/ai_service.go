package ports

import "context"

// AIClient is the upstream streaming completion backend. StreamCompletion
// opens one long-lived call and delivers incremental chunks on the returned
// channel in arrival order. The chunk channel is closed when upstream
// signals completion; a failure is delivered on the error channel instead.
// Cancelling ctx aborts the upstream call and releases its connection.
type AIClient interface {
	StreamCompletion(ctx context.Context, prompt string) (<-chan string, <-chan error)
}

// TranscriptRecorder accepts the full text of a completed AI reply for
// asynchronous persistence into the ticket's conversation.
type TranscriptRecorder interface {
	Record(ticketID, content string)
}

// AIService validates ownership and relays an AI-generated reply for a
// ticket as an incremental stream.
type AIService interface {
	// Stream fails before any upstream call with domain.ErrTicketNotFound
	// or domain.ErrForbidden. On success the chunk channel carries the
	// reply incrementally; the error channel reports a mid-stream failure.
	Stream(ctx context.Context, userID, ticketID string) (<-chan string, <-chan error, error)
}
