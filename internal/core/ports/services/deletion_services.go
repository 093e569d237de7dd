package services

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

// DeletionSvcFacade is the Deletion Consensus Coordinator surface.
type DeletionSvcFacade interface {
	// RequestDeletion starts a consensus round. When the list has at most one
	// registered member the list is destroyed immediately and deleted is true
	// with a nil request.
	RequestDeletion(ctx context.Context, username, listID string) (request *domain.DeletionRequest, deleted bool, err error)
	// Approve records one member's vote and returns the resulting consensus
	// state.
	Approve(ctx context.Context, username, requestID string, approved bool) (portsrepo.VoteOutcome, error)
	// GetStatus returns the pending request for the list, if any, with its
	// per-member votes.
	GetStatus(ctx context.Context, username, listID string) (*domain.DeletionRequest, []domain.DeletionApproval, error)
}
