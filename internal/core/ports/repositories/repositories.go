package repositories

// RepositoryProvider aggregates every repository the service container needs.
type RepositoryProvider struct {
	User    UserRepository
	List    ListRepository
	Share   ShareRequestRepository
	Expense ExpenseRepository
	Delete  DeletionRepository
	Audit   AuditRepository
	Catalog CatalogRepository
	Outbox  OutboxRepository
}
