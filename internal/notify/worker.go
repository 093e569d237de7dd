package notify

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

// Dispatcher drains the notification outbox on an interval and publishes each
// event. Events that keep failing are parked as dead after MaxAttempts.
type Dispatcher struct {
	outboxRepo   portsrepo.OutboxRepository
	publisher    Publisher
	logger       *slog.Logger
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
}

// DispatcherOptions tunes the dispatcher loop. Zero values fall back to
// defaults.
type DispatcherOptions struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

func NewDispatcher(outboxRepo portsrepo.OutboxRepository, publisher Publisher, logger *slog.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	return &Dispatcher{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		logger:       logger,
		pollInterval: opts.PollInterval,
		batchSize:    opts.BatchSize,
		maxAttempts:  opts.MaxAttempts,
	}
}

// Start runs the dispatch loop until the context is canceled.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	d.logger.Info("notification dispatcher started",
		"pollInterval", d.pollInterval, "batchSize", d.batchSize)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			d.drainOnce(ctx)
		}
	}
}

// drainOnce publishes one batch of pending events.
func (d *Dispatcher) drainOnce(ctx context.Context) {
	events, err := d.outboxRepo.ListPendingEvents(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("failed to fetch pending outbox events", "error", err)
		return
	}
	for _, event := range events {
		if err := d.publisher.Publish(ctx, event.Topic, event.Payload); err != nil {
			attempts := event.Attempts + 1
			dead := attempts >= d.maxAttempts
			if dead {
				d.logger.Error("outbox event exhausted retries",
					"eventID", event.EventID, "topic", event.Topic, "attempts", attempts)
			} else {
				d.logger.Warn("failed to publish outbox event, will retry",
					"eventID", event.EventID, "topic", event.Topic, "attempts", attempts, "error", err)
			}
			if err := d.outboxRepo.MarkFailed(ctx, event.EventID, attempts, dead); err != nil {
				d.logger.Error("failed to mark outbox event failed", "eventID", event.EventID, "error", err)
			}
			continue
		}
		if err := d.outboxRepo.MarkPublished(ctx, event.EventID); err != nil {
			// The event will be re-published on the next pass; subscribers
			// must tolerate duplicate balance updates.
			d.logger.Error("failed to mark outbox event published", "eventID", event.EventID, "error", err)
		}
	}
}
