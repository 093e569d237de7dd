package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for the payer and category
// pickers.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepository {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepository = (*PgxCatalogRepository)(nil)

func (r *PgxCatalogRepository) SavePayer(ctx context.Context, payer domain.Payer) error {
	query := `
		INSERT INTO payers (payer_id, name, username)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, payer.PayerID, payer.Name, payer.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("payer " + payer.Name + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save payer", err)
	}
	return nil
}

func (r *PgxCatalogRepository) ListPayersByUser(ctx context.Context, username string) ([]domain.Payer, error) {
	query := `SELECT payer_id, name, username FROM payers WHERE username = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payers for "+username, err)
	}
	defer rows.Close()

	var payers []domain.Payer
	for rows.Next() {
		var p domain.Payer
		if err := rows.Scan(&p.PayerID, &p.Name, &p.Username); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payer row", err)
		}
		payers = append(payers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payer rows", err)
	}
	return payers, nil
}

func (r *PgxCatalogRepository) DeletePayer(ctx context.Context, payerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM payers WHERE payer_id = $1;`, payerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payer "+payerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payer " + payerID + " not found")
	}
	return nil
}

func (r *PgxCatalogRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, username, list_id)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, category.CategoryID, category.Name, category.Username, category.ListID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("category " + category.Name + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save category", err)
	}
	return nil
}

func (r *PgxCatalogRepository) ListCategoriesByUser(ctx context.Context, username string) ([]domain.Category, error) {
	query := `SELECT category_id, name, username, list_id FROM categories WHERE username = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories for "+username, err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Username, &c.ListID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate category rows", err)
	}
	return categories, nil
}

func (r *PgxCatalogRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete category "+categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + categoryID + " not found")
	}
	return nil
}
