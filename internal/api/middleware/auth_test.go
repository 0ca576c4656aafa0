package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
)

type stubResolver struct {
	user *domain.PublicUser
	err  error
}

func (s *stubResolver) Signup(context.Context, string, string, string) (*domain.PublicUser, error) {
	panic("not used")
}

func (s *stubResolver) Login(context.Context, string, string) (string, *domain.PublicUser, error) {
	panic("not used")
}

func (s *stubResolver) Resolve(context.Context, string) (*domain.PublicUser, error) {
	return s.user, s.err
}

func TestAuth_OpenPathPassesWithoutIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(&stubResolver{err: domain.ErrInvalidToken}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(UserContextKey) != nil {
			t.Fatalf("open path must not bind an identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubResolver{}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()

	// The scheme must be exactly "Bearer"; case variants are rejected too.
	for _, header := range []string{"Token abc", "bearer abc", "BEARER abc", "Bearerabc"} {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		resolved := false
		mw := Auth(&stubResolver{user: &domain.PublicUser{ID: "u"}, err: nil}, zerolog.Nop())
		handler := mw(func(c echo.Context) error {
			resolved = true
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rec.Code)
		}
		if resolved {
			t.Fatalf("%q: should not reach next", header)
		}
	}
}

func TestAuth_ValidTokenBindsIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.Header.Set("Authorization", "Bearer some-valid-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolved := &domain.PublicUser{ID: "user-1", Email: "a@example.com", Role: domain.RoleUser}
	mw := Auth(&stubResolver{user: resolved}, zerolog.Nop())

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserContextKey).(*domain.PublicUser)
		if !ok || user.ID != "user-1" {
			t.Fatalf("bound identity wrong: %#v", c.Get(UserContextKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_ResolutionFailuresAllLookAlike(t *testing.T) {
	e := echo.New()
	failures := []error{domain.ErrInvalidToken, domain.ErrExpiredToken, domain.ErrUnknownSubject}

	var bodies []string
	for _, failure := range failures {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := Auth(&stubResolver{err: failure}, zerolog.Nop())
		handler := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", failure, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}

	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Fatalf("resolution failure subtypes leak to the client: %q vs %q", b, bodies[0])
		}
	}
}
