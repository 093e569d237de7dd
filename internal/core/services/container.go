package services

import (
	"context"

	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
)

// NewServiceProvider wires the repositories into the full service graph. The
// list service doubles as the list authorizer for every list-scoped service.
func NewServiceProvider(repos *portsrepo.RepositoryProvider) *portssvc.ServiceProvider {
	userSvc := NewUserService(repos.User)

	// The audit and balance services authorize through the list service; it
	// is created afterwards, so they receive the authorizer via a late-bound
	// holder.
	holder := &authorizerHolder{}
	auditSvc := NewAuditService(repos.Audit, holder)
	balanceSvc := NewBalanceService(repos.Expense, repos.List, repos.Outbox, holder)

	listSvc := NewListService(repos.List, repos.Share, repos.User, balanceSvc, auditSvc)
	holder.authorizer = listSvc

	expenseSvc := NewExpenseService(repos.Expense, balanceSvc, auditSvc, listSvc)
	deletionSvc := NewDeletionService(repos.Delete, repos.List, auditSvc, listSvc)
	catalogSvc := NewCatalogService(repos.Catalog)

	return &portssvc.ServiceProvider{
		User:    userSvc,
		List:    listSvc,
		Expense: expenseSvc,
		Balance: balanceSvc,
		Delete:  deletionSvc,
		Audit:   auditSvc,
		Catalog: catalogSvc,
	}
}

// authorizerHolder breaks the construction cycle between the list service and
// the services it authorizes.
type authorizerHolder struct {
	authorizer portssvc.ListAuthorizerSvc
}

var _ portssvc.ListAuthorizerSvc = (*authorizerHolder)(nil)

func (h *authorizerHolder) AuthorizeMember(ctx context.Context, username, listID string) error {
	if h.authorizer == nil {
		return nil
	}
	return h.authorizer.AuthorizeMember(ctx, username, listID)
}
