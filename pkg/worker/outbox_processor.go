package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
	"github.com/jwalitptl/pawcare-api/pkg/messaging"
	"github.com/jwalitptl/pawcare-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	Retention     time.Duration

	// MaxDeliveries bounds the failed delivery rounds before an event is marked failed.
	MaxDeliveries int

	// RetryBackoff is the delay before the first redelivery; it doubles per round.
	RetryBackoff time.Duration

	// ClaimLease is how long a processing claim holds before another worker may take it.
	ClaimLease time.Duration

	// Channel overrides the broker channel; empty publishes on the event type.
	Channel string
}

type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
	sleep   func(time.Duration)
	now     func() time.Time
}

const maxBackoffShift = 10

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) (*OutboxProcessor, error) {
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		return nil, fmt.Errorf("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay < 0 {
		return nil, fmt.Errorf("RetryDelay must not be negative")
	}
	if config.MaxDeliveries <= 0 {
		return nil, fmt.Errorf("MaxDeliveries must be greater than 0")
	}
	if config.RetryBackoff < 0 {
		return nil, fmt.Errorf("RetryBackoff must not be negative")
	}
	if config.ClaimLease <= 0 {
		return nil, fmt.Errorf("ClaimLease must be greater than 0")
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: metrics,
		sleep:   time.Sleep,
		now:     time.Now,
	}, nil
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		}
	}
}

// ProcessBatch claims one batch of deliverable events and publishes them.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.ClaimPending(ctx, p.config.BatchSize, p.now().Add(-p.config.ClaimLease))
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("claim_pending_events", "error").Inc()
		return fmt.Errorf("failed to claim pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("claim_pending_events", "success").Inc()

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error(err, "Failed to process event",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
			continue
		}
	}

	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	channel := p.config.Channel
	if channel == "" {
		channel = event.EventType
	}
	msg := messaging.Message{
		ID:      event.ID.String(),
		Type:    event.EventType,
		Payload: event.Payload,
	}

	err := p.retry(event.EventType, func() error {
		return p.broker.Publish(ctx, channel, msg)
	})

	if err != nil {
		p.recordFailure(ctx, event, err)
		return err
	}

	p.metrics.OutboxEventsProcessed.Inc()
	if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil, nil); err != nil {
		p.logger.Error(err, "Failed to update event status", "event_id", event.ID.String())
		return err
	}

	return nil
}

// recordFailure schedules another delivery round with backoff, or marks the
// event failed once its delivery budget is spent.
func (p *OutboxProcessor) recordFailure(ctx context.Context, event *model.OutboxEvent, cause error) {
	errStr := cause.Error()
	status := model.OutboxStatusFailed
	var retryAt *time.Time

	if event.RetryCount+1 < p.config.MaxDeliveries {
		status = model.OutboxStatusRetry
		at := p.now().Add(p.backoff(event.RetryCount))
		retryAt = &at
		p.logger.Warn("Outbox delivery failed, rescheduling",
			"event_id", event.ID.String(),
			"retry_count", event.RetryCount+1,
			"retry_at", at.Format(time.RFC3339))
	} else {
		p.metrics.OutboxEventsFailed.Inc()
	}

	if err := p.repo.UpdateStatus(ctx, event.ID, status, &errStr, retryAt); err != nil {
		p.logger.Error(err, "Failed to update event status", "event_id", event.ID.String())
	}
}

func (p *OutboxProcessor) backoff(round int) time.Duration {
	if round > maxBackoffShift {
		round = maxBackoffShift
	}
	return p.config.RetryBackoff * time.Duration(1<<uint(round))
}

func (p *OutboxProcessor) retry(eventType string, fn func() error) error {
	var err error
	for i := 0; i < p.config.RetryAttempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < p.config.RetryAttempts-1 {
			p.metrics.OutboxRetries.WithLabelValues(eventType).Inc()
			p.sleep(p.config.RetryDelay)
		}
	}
	return err
}
