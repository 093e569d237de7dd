package services

// ServiceProvider aggregates every service facade for handler registration.
type ServiceProvider struct {
	User    UserSvcFacade
	List    ListSvcFacade
	Expense ExpenseSvcFacade
	Balance BalanceSvcFacade
	Delete  DeletionSvcFacade
	Audit   AuditSvcFacade
	Catalog CatalogSvcFacade
}
