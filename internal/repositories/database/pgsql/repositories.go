package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		User:    newPgxUserRepository(pool),
		List:    newPgxListRepository(pool),
		Share:   newPgxShareRequestRepository(pool),
		Expense: newPgxExpenseRepository(pool),
		Delete:  newPgxDeletionRepository(pool),
		Audit:   newPgxAuditRepository(pool),
		Catalog: newPgxCatalogRepository(pool),
		Outbox:  newPgxOutboxRepository(pool),
	}
}
