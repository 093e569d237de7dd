package services

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// AuditSvcFacade records and serves the per-list audit trail.
type AuditSvcFacade interface {
	// Record appends one entry. It is best-effort from the caller's point of
	// view: a failed append is logged but never fails the mutation that
	// already committed.
	Record(ctx context.Context, listID, username, action, details string)
	ListForList(ctx context.Context, username, listID string) ([]domain.AuditEntry, error)
}
