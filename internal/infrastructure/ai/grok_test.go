package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
)

func drain(t *testing.T, chunks <-chan string, errs <-chan error) ([]string, error) {
	t.Helper()
	var got []string
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				select {
				case err := <-errs:
					return got, err
				case <-time.After(time.Second):
					return got, nil
				}
			}
			got = append(got, chunk)
		case <-time.After(5 * time.Second):
			t.Fatalf("stream did not finish")
		}
	}
}

func TestClient_StreamCompletion(t *testing.T) {
	var gotAuth string
	var gotBody completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: Hello\n")
		_, _ = io.WriteString(w, "\n")
		_, _ = io.WriteString(w, "data: World\n")
		_, _ = io.WriteString(w, "data: [DONE]\n")
		_, _ = io.WriteString(w, "data: AfterDone\n")
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, zerolog.Nop())
	chunks, errs := client.StreamCompletion(context.Background(), "say hi")

	got, err := drain(t, chunks, errs)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	if len(got) != 2 || got[0] != "Hello" || got[1] != "World" {
		t.Fatalf("expected [Hello World], got %v", got)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotBody.Prompt != "say hi" || !gotBody.Stream {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestClient_StreamCompletion_ForwardsBareLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "raw line\n")
		_, _ = io.WriteString(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL, zerolog.Nop())
	chunks, errs := client.StreamCompletion(context.Background(), "p")

	got, err := drain(t, chunks, errs)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	if len(got) != 1 || got[0] != "raw line" {
		t.Fatalf("expected bare line forwarded, got %v", got)
	}
}

func TestClient_StreamCompletion_EmptyDataPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "data: \n")
		_, _ = io.WriteString(w, "\n")
		_, _ = io.WriteString(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL, zerolog.Nop())
	chunks, errs := client.StreamCompletion(context.Background(), "p")

	got, err := drain(t, chunks, errs)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("expected one empty chunk, got %v", got)
	}
}

func TestClient_StreamCompletion_LongLine(t *testing.T) {
	long := strings.Repeat("a", 128*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "data: "+long+"\n")
		_, _ = io.WriteString(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL, zerolog.Nop())
	chunks, errs := client.StreamCompletion(context.Background(), "p")

	got, err := drain(t, chunks, errs)
	if err != nil {
		t.Fatalf("long chunk aborted the stream: %v", err)
	}
	if len(got) != 1 || got[0] != long {
		t.Fatalf("long chunk not forwarded intact (got %d chunks)", len(got))
	}
}

func TestClient_StreamCompletion_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL, zerolog.Nop())
	chunks, errs := client.StreamCompletion(context.Background(), "p")

	got, err := drain(t, chunks, errs)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("no chunks expected on failure, got %v", got)
	}
}

func TestClient_StreamCompletion_Cancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "data: first\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient("k", srv.URL, zerolog.Nop())
	chunks, errs := client.StreamCompletion(ctx, "p")

	select {
	case chunk := <-chunks:
		if chunk != "first" {
			t.Fatalf("expected first chunk, got %q", chunk)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("first chunk never arrived")
	}

	cancel()

	select {
	case _, ok := <-chunks:
		if ok {
			t.Fatalf("expected closed channel after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("stream did not stop after cancel")
	}
	if err := <-errs; err != nil {
		t.Fatalf("cancellation must not surface an error, got %v", err)
	}
}
