package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

func TestTicketService_Create(t *testing.T) {
	repo := newStubTicketRepo()
	svc := NewTicketService(repo, zerolog.Nop())

	ticket, err := svc.Create(context.Background(), "user-a", ports.CreateTicketInput{
		Title:       "VPN down",
		Description: "Cannot connect since this morning",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if ticket.ID == "" {
		t.Fatalf("expected generated id")
	}
	if ticket.Status != domain.TicketOpen {
		t.Fatalf("expected status open, got %s", ticket.Status)
	}
	if ticket.UserID != "user-a" {
		t.Fatalf("expected owner user-a, got %s", ticket.UserID)
	}
}

func TestTicketService_Get_OwnershipPolicy(t *testing.T) {
	repo := newStubTicketRepo()
	seedTicket(repo, "t1", "user-a")
	svc := NewTicketService(repo, zerolog.Nop())

	if _, err := svc.Get(context.Background(), "user-a", "t1"); err != nil {
		t.Fatalf("owner fetch failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-b", "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-a", "missing"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketService_List_OnlyOwn(t *testing.T) {
	repo := newStubTicketRepo()
	seedTicket(repo, "t1", "user-a")
	seedTicket(repo, "t2", "user-b")
	svc := NewTicketService(repo, zerolog.Nop())

	tickets, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != "t1" {
		t.Fatalf("expected only t1, got %v", tickets)
	}
}
