package domain

import "time"

// Message is one turn in a ticket's conversation, authored either by a
// human user or by the AI assistant.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsAI      bool      `json:"is_ai"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
