// Package ai implements the upstream streaming completion client.
package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"

	// maxLineBytes bounds a single upstream line. The bufio default of 64KB
	// is too small for large completion chunks and would abort the stream
	// mid-flight with a token-too-long error.
	maxLineBytes = 1 << 20
)

// Client streams completions from a Grok-style HTTP backend. The response
// is consumed line by line: lines prefixed "data:" carry payload, the
// "[DONE]" sentinel ends the stream, any other non-empty line is forwarded
// raw.
type Client struct {
	apiKey  string
	baseURL string
	// httpc has no overall timeout: stream duration is unbounded and
	// driven by upstream production rate. Cancellation comes from the
	// request context only.
	httpc  *http.Client
	logger zerolog.Logger
}

func NewClient(apiKey, baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 0},
		logger:  logger,
	}
}

type completionRequest struct {
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// StreamCompletion opens one long-lived streaming call and delivers chunks
// on the returned channel in arrival order. The chunk channel closes when
// the stream ends; at most one error is delivered on the error channel
// before that. Cancelling ctx aborts the call and releases the connection.
func (c *Client) StreamCompletion(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		body, err := json.Marshal(completionRequest{Prompt: prompt, Stream: true})
		if err != nil {
			errs <- fmt.Errorf("%w: encode request: %v", domain.ErrUpstream, err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			errs <- fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
			return
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errs <- fmt.Errorf("%w: %v", domain.ErrUpstream, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errs <- fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := scanner.Text()

			// A "data:" line is always a chunk, even with an empty payload.
			// Bare empty lines are frame separators and carry nothing.
			var chunk string
			if strings.HasPrefix(line, dataPrefix) {
				chunk = strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
				if chunk == doneSentinel {
					return
				}
			} else {
				if line == "" {
					continue
				}
				chunk = line
			}

			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			errs <- fmt.Errorf("%w: read stream: %v", domain.ErrUpstream, err)
		}
	}()

	return chunks, errs
}
