package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
)

// deletionService coordinates consensus-gated list deletion. A list with more
// than one registered member is only destroyed after every other member
// explicitly approves; one rejection is final.
type deletionService struct {
	BaseService
	deletionRepo portsrepo.DeletionRepository
	listRepo     portsrepo.ListRepository
	auditSvc     portssvc.AuditSvcFacade
}

// NewDeletionService creates a new deletion consensus service.
func NewDeletionService(
	deletionRepo portsrepo.DeletionRepository,
	listRepo portsrepo.ListRepository,
	auditSvc portssvc.AuditSvcFacade,
	authorizer portssvc.ListAuthorizerSvc,
) portssvc.DeletionSvcFacade {
	return &deletionService{
		BaseService:  BaseService{ListAuthorizer: authorizer},
		deletionRepo: deletionRepo,
		listRepo:     listRepo,
		auditSvc:     auditSvc,
	}
}

var _ portssvc.DeletionSvcFacade = (*deletionService)(nil)

// RequestDeletion starts a consensus round, or deletes immediately when the
// list has at most one registered member.
func (s *deletionService) RequestDeletion(ctx context.Context, username, listID string) (*domain.DeletionRequest, bool, error) {
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, false, err
	}

	memberships, err := s.listRepo.ListMemberships(ctx, listID)
	if err != nil {
		return nil, false, err
	}

	if len(memberships) <= 1 {
		if err := s.listRepo.DeleteList(ctx, listID); err != nil {
			s.LogError(ctx, err, "Failed to delete single-member list", slog.String("list_id", listID))
			return nil, false, err
		}
		s.LogInfo(ctx, "List deleted without consensus",
			slog.String("list_id", listID),
			slog.String("user_id", username))
		return nil, true, nil
	}

	if existing, err := s.deletionRepo.FindPendingRequestForList(ctx, listID); err == nil && existing != nil {
		return nil, false, apperrors.NewConflictError("a deletion request is already pending for this list")
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now()
	request := domain.DeletionRequest{
		RequestID:   uuid.NewString(),
		ListID:      listID,
		RequestedBy: username,
		Status:      domain.DeletionPending,
		CreatedAt:   now,
	}

	var approvals []domain.DeletionApproval
	for _, m := range memberships {
		if m.Username == username {
			continue
		}
		approvals = append(approvals, domain.DeletionApproval{
			ApprovalID: uuid.NewString(),
			RequestID:  request.RequestID,
			Username:   m.Username,
			CreatedAt:  now,
		})
	}

	if len(approvals) == 0 {
		// Requester is the only membership holder but the membership list had
		// more than one row; should not happen with unique memberships.
		return nil, false, fmt.Errorf("%w: no members left to approve deletion", apperrors.ErrValidation)
	}

	if err := s.deletionRepo.CreateDeletionRequest(ctx, request, approvals); err != nil {
		s.LogError(ctx, err, "Failed to create deletion request", slog.String("list_id", listID))
		return nil, false, err
	}

	s.auditSvc.Record(ctx, listID, username, "deletion_requested", "")
	s.LogInfo(ctx, "Deletion consensus started",
		slog.String("list_id", listID),
		slog.String("request_id", request.RequestID),
		slog.Int("approvals_needed", len(approvals)))
	return &request, false, nil
}

// Approve records one member's vote. The repository runs the whole vote in one
// transaction against a locked request row, so exactly one vote can finalize
// approval and the cascade delete commits with the status flip.
func (s *deletionService) Approve(ctx context.Context, username, requestID string, approved bool) (portsrepo.VoteOutcome, error) {
	request, err := s.deletionRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return "", err
	}

	outcome, err := s.deletionRepo.RecordVote(ctx, requestID, username, approved)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record deletion vote", slog.String("request_id", requestID))
		}
		return "", err
	}

	switch outcome {
	case portsrepo.VoteApproved:
		// The list and its audit trail are gone; only the process log remains.
		s.LogInfo(ctx, "Deletion approved unanimously, list destroyed",
			slog.String("list_id", request.ListID),
			slog.String("request_id", requestID))
	case portsrepo.VoteRejected:
		s.auditSvc.Record(ctx, request.ListID, username, "deletion_rejected", "")
		s.LogInfo(ctx, "Deletion rejected",
			slog.String("list_id", request.ListID),
			slog.String("request_id", requestID))
	default:
		s.auditSvc.Record(ctx, request.ListID, username, "deletion_vote", "approved")
	}

	return outcome, nil
}

// GetStatus returns the pending deletion request for the list with its votes.
func (s *deletionService) GetStatus(ctx context.Context, username, listID string) (*domain.DeletionRequest, []domain.DeletionApproval, error) {
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, nil, err
	}
	request, err := s.deletionRepo.FindPendingRequestForList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	approvals, err := s.deletionRepo.ListApprovals(ctx, request.RequestID)
	if err != nil {
		return nil, nil, err
	}
	return request, approvals, nil
}
