package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
)

// auditService writes and serves the append-only per-list audit trail.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditRepository, authorizer portssvc.ListAuthorizerSvc) portssvc.AuditSvcFacade {
	return &auditService{
		BaseService: BaseService{ListAuthorizer: authorizer},
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends one entry. The calling mutation has already committed, so a
// failed append is logged rather than propagated.
func (s *auditService) Record(ctx context.Context, listID, username, action, details string) {
	entry := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ListID:    listID,
		Username:  username,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := s.auditRepo.AppendAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit entry",
			slog.String("list_id", listID),
			slog.String("action", action))
	}
}

// ListForList returns the list's audit entries, newest first.
func (s *auditService) ListForList(ctx context.Context, username, listID string) ([]domain.AuditEntry, error) {
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.ListAuditEntriesByList(ctx, listID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries", slog.String("list_id", listID))
		return nil, err
	}
	if entries == nil {
		return []domain.AuditEntry{}, nil
	}
	return entries, nil
}
