package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// VoteOutcome is the consensus state after one vote has been recorded.
type VoteOutcome string

const (
	// VotePending means the vote was recorded but approvals are still missing.
	VotePending VoteOutcome = "pending"
	// VoteApproved means this vote completed unanimous approval and the list
	// was destroyed in the same transaction.
	VoteApproved VoteOutcome = "approved"
	// VoteRejected means this vote rejected the request; rejection is final.
	VoteRejected VoteOutcome = "rejected"
)

// DeletionRepository defines persistence operations for the deletion
// consensus records.
type DeletionRepository interface {
	// CreateDeletionRequest persists the request and one approval placeholder
	// per member other than the requester in a single transaction.
	CreateDeletionRequest(ctx context.Context, request domain.DeletionRequest, approvals []domain.DeletionApproval) error
	FindRequestByID(ctx context.Context, requestID string) (*domain.DeletionRequest, error)
	FindPendingRequestForList(ctx context.Context, listID string) (*domain.DeletionRequest, error)
	ListApprovals(ctx context.Context, requestID string) ([]domain.DeletionApproval, error)
	// RecordVote runs the whole vote inside one transaction: it locks the
	// request row, rejects votes on terminal requests (apperrors.ErrConflict)
	// and votes without a placeholder (apperrors.ErrNotFound), stores the vote,
	// and either rejects the request, keeps it pending, or — when this vote is
	// the last missing approval — flips it to approved and cascade-deletes the
	// list before committing. No two transactions can both finalize approval.
	RecordVote(ctx context.Context, requestID, username string, approved bool) (VoteOutcome, error)
}
