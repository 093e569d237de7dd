package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// ListReader exposes the read side of list and membership storage.
type ListReader interface {
	FindListByID(ctx context.Context, listID string) (*domain.List, error)
	// ListAccessibleLists returns every list the user created or holds a
	// membership record for.
	ListAccessibleLists(ctx context.Context, username string) ([]domain.List, error)
	ListMemberships(ctx context.Context, listID string) ([]domain.Membership, error)
	FindMembership(ctx context.Context, listID, username string) (*domain.Membership, error)
}

// ListRepository defines persistence operations for lists and their
// registered memberships.
type ListRepository interface {
	ListReader
	// CreateList persists the list, its initial memberships and its initial
	// share requests in a single transaction.
	CreateList(ctx context.Context, list domain.List, memberships []domain.Membership, invites []domain.ShareRequest) error
	RenameList(ctx context.Context, listID, name, updatedBy string) error
	// DeleteList removes the list; expenses, memberships, share requests,
	// deletion consensus records and audit entries cascade with it.
	DeleteList(ctx context.Context, listID string) error
	AddMembership(ctx context.Context, membership domain.Membership) error
	RemoveMembership(ctx context.Context, listID, username string) error
}
