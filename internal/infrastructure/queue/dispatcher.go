package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type transcriptJob struct {
	ticketID string
	content  string
}

// Dispatcher persists completed AI transcripts asynchronously so the
// streaming path never blocks on the message store. Jobs are routed to a
// fixed set of workers by consistent hashing on the ticket id, guaranteeing
// per-ticket message ordering.
type Dispatcher struct {
	workers  []chan transcriptJob
	messages ports.MessageRepository
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, messages ports.MessageRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan transcriptJob, numWorkers),
		messages: messages,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan transcriptJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues a completed AI reply for persistence on the ticket's
// conversation. Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(ticketID, content string) {
	d.workers[d.shardIndex(ticketID)] <- transcriptJob{ticketID: ticketID, content: content}
}

// shardIndex maps a ticket id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ticketID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ticketID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan transcriptJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			msg := &domain.Message{
				ID:        uuid.NewString(),
				Content:   job.content,
				IsAI:      true,
				TicketID:  job.ticketID,
				CreatedAt: time.Now().UTC(),
			}
			if _, err := d.messages.Create(ctx, msg); err != nil {
				d.log.Error().Err(err).
					Str("ticket_id", job.ticketID).
					Int("worker_id", id).
					Msg("transcript persistence failed")
			}
		}
	}
}
