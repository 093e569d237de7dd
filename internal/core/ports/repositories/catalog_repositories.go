package repositories

import (
	"context"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// CatalogRepository defines persistence for the payer and category pickers.
type CatalogRepository interface {
	SavePayer(ctx context.Context, payer domain.Payer) error
	ListPayersByUser(ctx context.Context, username string) ([]domain.Payer, error)
	DeletePayer(ctx context.Context, payerID string) error

	SaveCategory(ctx context.Context, category domain.Category) error
	ListCategoriesByUser(ctx context.Context, username string) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
