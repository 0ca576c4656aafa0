package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seedx/support-backend/internal/api/metrics"
	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

// AIHandler serves the AI response stream as server-sent events.
type AIHandler struct {
	service ports.AIService
}

func NewAIHandler(service ports.AIService) *AIHandler {
	return &AIHandler{service: service}
}

type streamFrame struct {
	Content string `json:"content"`
}

// Stream relays the AI reply for a ticket as an event stream.
//
// Frames are emitted as they arrive, one "data: {...}\n\n" block per chunk,
// flushed immediately. Headers are written lazily on the first frame so a
// pre-stream failure still gets a clean error response; once the response
// is committed, a failure can only be signaled by closing the stream.
//
// @Summary      Stream an AI-generated reply for a ticket
// @Tags         ai
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        ticket_id  path  string  true  "Ticket id"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /tickets/{ticket_id}/ai-response [get]
func (h *AIHandler) Stream(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	start := time.Now()

	chunks, errs, err := h.service.Stream(ctx, user.ID, c.Param("ticket_id"))
	if err != nil {
		metrics.AIStreamsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	w := c.Response()
	committed := false
	commit := func() {
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		committed = true
	}

	defer func() {
		if committed {
			metrics.AIStreamDuration.Observe(time.Since(start).Seconds())
		}
	}()

	for {
		select {
		case <-ctx.Done():
			metrics.AIStreamsTotal.WithLabelValues("cancelled").Inc()
			return nil

		case chunk, ok := <-chunks:
			if !ok {
				// Producer done: an error queued before close wins over
				// a clean completion.
				select {
				case err := <-errs:
					if err != nil {
						return h.fail(committed, err)
					}
				default:
				}
				metrics.AIStreamsTotal.WithLabelValues("completed").Inc()
				return nil
			}

			if !committed {
				commit()
			}
			payload, err := json.Marshal(streamFrame{Content: chunk})
			if err != nil {
				return h.fail(committed, fmt.Errorf("%w: encode frame: %v", domain.ErrUpstream, err))
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				metrics.AIStreamsTotal.WithLabelValues("cancelled").Inc()
				return nil
			}
			w.Flush()
			metrics.AIStreamChunksTotal.Inc()

		case err := <-errs:
			if err != nil {
				return h.fail(committed, err)
			}
		}
	}
}

// fail terminates a broken stream. Before the response is committed the
// error propagates to the central handler for a clean 502; after commit the
// stream simply closes, an inherent limitation of event-stream responses.
func (h *AIHandler) fail(committed bool, err error) error {
	metrics.AIStreamsTotal.WithLabelValues("failed").Inc()
	if committed {
		return nil
	}
	return err
}
