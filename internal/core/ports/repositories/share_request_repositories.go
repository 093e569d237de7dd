package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// ShareRequestRepository defines persistence operations for list invitations.
type ShareRequestRepository interface {
	// CreateShareRequest inserts a pending request. Returns an error matching
	// apperrors.ErrConflict when a pending request for the same (list, to_user)
	// pair already exists.
	CreateShareRequest(ctx context.Context, request domain.ShareRequest) error
	FindShareRequestByID(ctx context.Context, requestID string) (*domain.ShareRequest, error)
	// RespondShareRequest flips a pending request to a terminal status and, on
	// accept, inserts the membership record in the same transaction. Returns an
	// error matching apperrors.ErrConflict when the request is already
	// terminal.
	RespondShareRequest(ctx context.Context, requestID string, status domain.ShareRequestStatus, membership *domain.Membership) error
	ListShareRequestsForUser(ctx context.Context, toUser string, onlyPending bool) ([]domain.ShareRequest, error)
	ListSentShareRequests(ctx context.Context, fromUser string) ([]domain.ShareRequest, error)
}
