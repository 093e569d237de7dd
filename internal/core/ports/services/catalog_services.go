package services

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// CatalogSvcFacade manages the payer and category pickers.
type CatalogSvcFacade interface {
	CreatePayer(ctx context.Context, username, name string) (*domain.Payer, error)
	ListPayers(ctx context.Context, username string) ([]domain.Payer, error)
	DeletePayer(ctx context.Context, username, payerID string) error

	CreateCategory(ctx context.Context, username, name string, listID *string) (*domain.Category, error)
	ListCategories(ctx context.Context, username string) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, username, categoryID string) error
}
