package services

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// BalanceSvcFacade is the Balance Engine surface.
type BalanceSvcFacade interface {
	// ComputeForList computes net balances and settlement transfers from the
	// list's active expenses.
	ComputeForList(ctx context.Context, username, listID string) (*domain.BalanceResult, error)
	// ComputeForUser computes over the union of every list the user can
	// access.
	ComputeForUser(ctx context.Context, username string) (*domain.BalanceResult, error)
	// EnqueueListUpdate recomputes the list's balances and enqueues one
	// outbox notification per registered member. Mutating services call it
	// after their transaction commits.
	EnqueueListUpdate(ctx context.Context, listID string) error
}
