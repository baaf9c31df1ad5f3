// Package activity emits best-effort activity events for audit consumers.
package activity

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
	"github.com/jwalitptl/pawcare-api/pkg/metrics"
)

// Notifier accepts activity events without reporting delivery failures.
type Notifier interface {
	Notify(ctx context.Context, event model.ActivityEvent)
}

// Event builds an activity event for user.
func Event(user uuid.UUID, description string) model.ActivityEvent {
	return model.ActivityEvent{
		UserID:      user,
		Description: description,
		OccurredAt:  time.Now(),
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, model.ActivityEvent) {}

// Nop discards every event.
func Nop() Notifier {
	return nopNotifier{}
}

type Config struct {
	QueueSize    int
	WriteTimeout time.Duration
}

// OutboxNotifier queues events in memory and writes them to the outbox
// from a single background goroutine.
type OutboxNotifier struct {
	repo    repository.OutboxRepository
	queue   chan model.ActivityEvent
	timeout time.Duration
	logger  *logger.Logger
	metrics *metrics.Metrics

	startOnce sync.Once
	done      chan struct{}

	// mu guards closed; Notify holds it for reading so no send can race the final flush.
	mu     sync.RWMutex
	closed bool
}

func NewOutboxNotifier(repo repository.OutboxRepository, cfg Config, logger *logger.Logger, metrics *metrics.Metrics) *OutboxNotifier {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &OutboxNotifier{
		repo:    repo,
		queue:   make(chan model.ActivityEvent, cfg.QueueSize),
		timeout: cfg.WriteTimeout,
		logger:  logger,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

// Notify enqueues event and never blocks. A full queue or a stopped
// notifier drops it.
func (n *OutboxNotifier) Notify(_ context.Context, event model.ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.metrics.ActivityDropped.Inc()
		n.logger.Warn("Activity notifier stopped, dropping event",
			"user", event.UserID.String(),
			"description", event.Description)
		return
	}

	select {
	case n.queue <- event:
	default:
		n.metrics.ActivityDropped.Inc()
		n.logger.Warn("Activity queue full, dropping event",
			"user", event.UserID.String(),
			"description", event.Description)
	}
}

// Start drains the queue until ctx is cancelled, then flushes what is left.
func (n *OutboxNotifier) Start(ctx context.Context) {
	n.startOnce.Do(func() {
		go n.run(ctx)
	})
}

// Wait blocks until the drain loop has exited.
func (n *OutboxNotifier) Wait() {
	<-n.done
}

func (n *OutboxNotifier) run(ctx context.Context) {
	defer close(n.done)
	for {
		select {
		case <-ctx.Done():
			n.mu.Lock()
			n.closed = true
			n.mu.Unlock()
			n.flush()
			return
		case event := <-n.queue:
			n.write(event)
		}
	}
}

func (n *OutboxNotifier) flush() {
	for {
		select {
		case event := <-n.queue:
			n.write(event)
		default:
			return
		}
	}
}

func (n *OutboxNotifier) write(event model.ActivityEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.metrics.ActivityDropped.Inc()
		n.logger.Error(err, "Failed to marshal activity event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	err = n.repo.Create(ctx, &model.OutboxEvent{
		EventType: model.ActivityEventType,
		Payload:   payload,
	})
	if err != nil {
		n.metrics.ActivityDropped.Inc()
		n.logger.Error(err, "Failed to store activity event",
			"user", event.UserID.String(),
			"description", event.Description)
	}
}
