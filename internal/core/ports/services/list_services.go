package services

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
	"github.com/splitsum/splitsum_app/internal/dto"
)

// ListAuthorizerSvc checks that a user may act on a list. Implemented by the
// list service and consumed by every other list-scoped service.
type ListAuthorizerSvc interface {
	// AuthorizeMember returns an error matching apperrors.ErrForbidden when
	// the user is neither the creator of the list nor a member of it.
	AuthorizeMember(ctx context.Context, username, listID string) error
}

// ListSvcFacade defines the Membership Ledger operations.
type ListSvcFacade interface {
	ListAuthorizerSvc

	CreateList(ctx context.Context, creator string, req dto.CreateListRequest) (*domain.List, error)
	GetList(ctx context.Context, username, listID string) (*domain.List, []domain.Membership, error)
	ListAccessibleLists(ctx context.Context, username string) ([]domain.List, error)
	RenameList(ctx context.Context, username, listID, name string) (*domain.List, error)

	ShareList(ctx context.Context, fromUser, listID string, req dto.ShareListRequest) (*domain.ShareRequest, error)
	RespondToShareRequest(ctx context.Context, username, requestID string, accept bool) (*domain.ShareRequest, error)
	ListShareRequestsForUser(ctx context.Context, username string, onlyPending bool) ([]domain.ShareRequest, error)
	ListSentShareRequests(ctx context.Context, username string) ([]domain.ShareRequest, error)

	RemoveParticipant(ctx context.Context, actingUser, listID, username string) error
}
