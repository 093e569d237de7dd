package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit
// trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (entry_id, list_id, username, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID, entry.ListID, entry.Username, entry.Action, entry.Details, entry.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit entry", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditEntriesByList(ctx context.Context, listID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT entry_id, list_id, username, action, details, created_at
		FROM audit_entries
		WHERE list_id = $1
		ORDER BY created_at DESC, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, listID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit entries for list "+listID, err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.EntryID, &e.ListID, &e.Username, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate audit entry rows", err)
	}
	return entries, nil
}
