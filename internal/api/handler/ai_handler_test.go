package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/api/middleware"
	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/service"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	r.tickets[t.ID] = t
	return t, nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	if t, ok := r.tickets[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTicketNotFound
}

func (r *fakeTicketRepo) ListByUser(_ context.Context, _ string) ([]*domain.Ticket, error) {
	return nil, nil
}

type fakeMessageRepo struct{}

func (r *fakeMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	return m, nil
}

func (r *fakeMessageRepo) ListByTicket(_ context.Context, _ string) ([]*domain.Message, error) {
	return nil, nil
}

type scriptedAIClient struct {
	calls  int
	chunks []string
}

func (c *scriptedAIClient) StreamCompletion(ctx context.Context, _ string) (<-chan string, <-chan error) {
	c.calls++
	chunks := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)
		for _, chunk := range c.chunks {
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return chunks, errs
}

func newStreamContext(t *testing.T, user *domain.PublicUser, ticketID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets/"+ticketID+"/ai-response", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("ticket_id")
	c.SetParamValues(ticketID)
	if user != nil {
		c.Set(middleware.UserContextKey, user)
	}
	return c, rec
}

func TestAIHandler_Stream_EmitsFrames(t *testing.T) {
	tickets := &fakeTicketRepo{tickets: map[string]*domain.Ticket{
		"t1": {ID: "t1", Title: "Broken", Description: "Very", UserID: "user-a", CreatedAt: time.Now()},
	}}
	client := &scriptedAIClient{chunks: []string{"Hello", "World"}}
	svc := service.NewAIService(tickets, &fakeMessageRepo{}, client, nil, zerolog.Nop())
	h := NewAIHandler(svc)

	c, rec := newStreamContext(t, &domain.PublicUser{ID: "user-a", Role: domain.RoleUser}, "t1")

	if err := h.Stream(c); err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	want := "data: {\"content\":\"Hello\"}\n\ndata: {\"content\":\"World\"}\n\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected frames:\n%q\nwant:\n%q", rec.Body.String(), want)
	}
}

func TestAIHandler_Stream_ForbiddenBeforeUpstream(t *testing.T) {
	tickets := &fakeTicketRepo{tickets: map[string]*domain.Ticket{
		"t1": {ID: "t1", UserID: "user-a"},
	}}
	client := &scriptedAIClient{chunks: []string{"never"}}
	svc := service.NewAIService(tickets, &fakeMessageRepo{}, client, nil, zerolog.Nop())
	h := NewAIHandler(svc)

	c, rec := newStreamContext(t, &domain.PublicUser{ID: "user-b", Role: domain.RoleUser}, "t1")

	if err := h.Stream(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("upstream called for a forbidden request")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("forbidden request wrote to the stream: %q", rec.Body.String())
	}
}

func TestAIHandler_Stream_Unauthenticated(t *testing.T) {
	svc := service.NewAIService(&fakeTicketRepo{tickets: map[string]*domain.Ticket{}}, &fakeMessageRepo{}, &scriptedAIClient{}, nil, zerolog.Nop())
	h := NewAIHandler(svc)

	c, _ := newStreamContext(t, nil, "t1")

	if err := h.Stream(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
