package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
)

// catalogService manages the saved payer names and category labels users pick
// from when entering expenses.
type catalogService struct {
	BaseService
	catalogRepo portsrepo.CatalogRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo portsrepo.CatalogRepository) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) CreatePayer(ctx context.Context, username, name string) (*domain.Payer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: payer name must not be empty", apperrors.ErrValidation)
	}
	payer := domain.Payer{
		PayerID:  uuid.NewString(),
		Name:     name,
		Username: username,
	}
	if err := s.catalogRepo.SavePayer(ctx, payer); err != nil {
		s.LogError(ctx, err, "Failed to save payer", slog.String("user_id", username))
		return nil, err
	}
	return &payer, nil
}

func (s *catalogService) ListPayers(ctx context.Context, username string) ([]domain.Payer, error) {
	payers, err := s.catalogRepo.ListPayersByUser(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payers", slog.String("user_id", username))
		return nil, err
	}
	return payers, nil
}

func (s *catalogService) DeletePayer(ctx context.Context, username, payerID string) error {
	if err := s.catalogRepo.DeletePayer(ctx, payerID); err != nil {
		return err
	}
	s.LogDebug(ctx, "Payer deleted", slog.String("payer_id", payerID), slog.String("user_id", username))
	return nil
}

func (s *catalogService) CreateCategory(ctx context.Context, username, name string, listID *string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", apperrors.ErrValidation)
	}
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
		Username:   username,
		ListID:     listID,
	}
	if err := s.catalogRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("user_id", username))
		return nil, err
	}
	return &category, nil
}

func (s *catalogService) ListCategories(ctx context.Context, username string) ([]domain.Category, error) {
	categories, err := s.catalogRepo.ListCategoriesByUser(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", username))
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, username, categoryID string) error {
	if err := s.catalogRepo.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	s.LogDebug(ctx, "Category deleted", slog.String("category_id", categoryID), slog.String("user_id", username))
	return nil
}
