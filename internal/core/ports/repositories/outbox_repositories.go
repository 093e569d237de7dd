package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// OutboxRepository defines storage for outbound notification events.
type OutboxRepository interface {
	EnqueueEvents(ctx context.Context, events []domain.OutboxEvent) error
	// ListPendingEvents returns up to limit events eligible for delivery,
	// oldest first.
	ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, eventID string) error
	// MarkFailed bumps the attempt counter; when dead is true the event is
	// parked and never retried.
	MarkFailed(ctx context.Context, eventID string, attempts int, dead bool) error
}
