package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

type PgxOutboxRepository struct {
	BaseRepository
}

// newPgxOutboxRepository creates a new repository for outbound notification
// events.
func newPgxOutboxRepository(pool *pgxpool.Pool) portsrepo.OutboxRepository {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OutboxRepository = (*PgxOutboxRepository)(nil)

func (r *PgxOutboxRepository) EnqueueEvents(ctx context.Context, events []domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	query := `
		INSERT INTO outbox_events (event_id, topic, payload, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	return r.withTx(ctx, func(tx pgx.Tx) error {
		for _, e := range events {
			_, err := tx.Exec(ctx, query, e.EventID, e.Topic, e.Payload, e.Status, e.Attempts, e.CreatedAt)
			if err != nil {
				return apperrors.NewAppError(500, "failed to enqueue outbox event", err)
			}
		}
		return nil
	})
}

// ListPendingEvents returns up to limit deliverable events oldest first.
// Failed events stay eligible until the dispatcher parks them as dead.
func (r *PgxOutboxRepository) ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	query := `
		SELECT event_id, topic, payload, status, attempts, created_at, published_at
		FROM outbox_events
		WHERE status IN ($1, $2)
		ORDER BY created_at
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, domain.OutboxPending, domain.OutboxFailed, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pending outbox events", err)
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(&e.EventID, &e.Topic, &e.Payload, &e.Status, &e.Attempts, &e.CreatedAt, &e.PublishedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outbox event row", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate outbox event rows", err)
	}
	return events, nil
}

func (r *PgxOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	query := `
		UPDATE outbox_events
		SET status = $2, published_at = now()
		WHERE event_id = $1;
	`
	if _, err := r.Pool.Exec(ctx, query, eventID, domain.OutboxPublished); err != nil {
		return apperrors.NewAppError(500, "failed to mark outbox event published", err)
	}
	return nil
}

func (r *PgxOutboxRepository) MarkFailed(ctx context.Context, eventID string, attempts int, dead bool) error {
	status := domain.OutboxFailed
	if dead {
		status = domain.OutboxDead
	}
	query := `
		UPDATE outbox_events
		SET status = $2, attempts = $3
		WHERE event_id = $1;
	`
	if _, err := r.Pool.Exec(ctx, query, eventID, status, attempts); err != nil {
		return apperrors.NewAppError(500, "failed to mark outbox event failed", err)
	}
	return nil
}
