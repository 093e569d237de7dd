package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// AuditRepository defines the append-only audit trail storage.
type AuditRepository interface {
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error
	// ListAuditEntriesByList returns entries newest first.
	ListAuditEntriesByList(ctx context.Context, listID string) ([]domain.AuditEntry, error)
}
