package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expenses and their
// trash records. Payer and participants are stored as JSONB.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, list_id, payer, amount, description, category, expense_date, participants, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ExpenseID, &e.ListID, &e.Payer, &e.Amount,
		&e.Description, &e.Category, &e.Date, &e.Participants,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return insertExpense(ctx, r.Pool, expense)
}

func insertExpense(ctx context.Context, db execer, e domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := db.Exec(ctx, query,
		e.ExpenseID, e.ListID, e.Payer, e.Amount, e.Description, e.Category,
		e.Date, e.Participants,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+e.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET payer = $2, amount = $3, description = $4, category = $5,
		    expense_date = $6, participants = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID, expense.Payer, expense.Amount, expense.Description,
		expense.Category, expense.Date, expense.Participants,
		expense.LastUpdatedAt, expense.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense " + expense.ExpenseID + " not found")
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	e, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	return e, nil
}

func (r *PgxExpenseRepository) ListExpensesByList(ctx context.Context, listID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE list_id = $1
		ORDER BY expense_date DESC, expense_id;
	`
	return r.queryExpenses(ctx, query, listID)
}

func (r *PgxExpenseRepository) ListExpensesByDate(ctx context.Context, listID string, from, to time.Time) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE list_id = $1 AND expense_date >= $2 AND expense_date <= $3
		ORDER BY expense_date DESC, expense_id;
	`
	return r.queryExpenses(ctx, query, listID, from, to)
}

func (r *PgxExpenseRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list expenses", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate expense rows", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SoftDeleteExpense(ctx context.Context, expenseID string, trash domain.TrashedExpense) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO trashed_expenses (trash_id, original_id, list_id, payer, amount, description, category, expense_date, participants, deleted_by, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err := tx.Exec(ctx, insert,
			trash.TrashID, trash.OriginalID, trash.ListID, trash.Payer,
			trash.Amount, trash.Description, trash.Category, trash.Date,
			trash.Participants, trash.DeletedBy, trash.DeletedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert trash record for expense "+expenseID, err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("expense " + expenseID + " not found")
		}
		return nil
	})
}

func (r *PgxExpenseRepository) FindTrashedByID(ctx context.Context, trashID string) (*domain.TrashedExpense, error) {
	query := `
		SELECT trash_id, original_id, list_id, payer, amount, description, category, expense_date, participants, deleted_by, deleted_at
		FROM trashed_expenses
		WHERE trash_id = $1;
	`
	var t domain.TrashedExpense
	err := r.Pool.QueryRow(ctx, query, trashID).Scan(
		&t.TrashID, &t.OriginalID, &t.ListID, &t.Payer, &t.Amount,
		&t.Description, &t.Category, &t.Date, &t.Participants,
		&t.DeletedBy, &t.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("trashed expense " + trashID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find trashed expense "+trashID, err)
	}
	return &t, nil
}

func (r *PgxExpenseRepository) RestoreExpense(ctx context.Context, trashID string, restored domain.Expense) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := insertExpense(ctx, tx, restored); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM trashed_expenses WHERE trash_id = $1;`, trashID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete trash record "+trashID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("trashed expense " + trashID + " not found")
		}
		return nil
	})
}

func (r *PgxExpenseRepository) ListTrashedByUser(ctx context.Context, username string) ([]domain.TrashedExpense, error) {
	query := `
		SELECT t.trash_id, t.original_id, t.list_id, t.payer, t.amount, t.description, t.category, t.expense_date, t.participants, t.deleted_by, t.deleted_at
		FROM trashed_expenses t
		JOIN expense_lists l ON l.list_id = t.list_id
		LEFT JOIN list_memberships m ON m.list_id = t.list_id AND m.username = $1
		WHERE l.created_by = $1 OR m.username IS NOT NULL
		ORDER BY t.deleted_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list trashed expenses for "+username, err)
	}
	defer rows.Close()

	var trashed []domain.TrashedExpense
	for rows.Next() {
		var t domain.TrashedExpense
		err := rows.Scan(&t.TrashID, &t.OriginalID, &t.ListID, &t.Payer,
			&t.Amount, &t.Description, &t.Category, &t.Date, &t.Participants,
			&t.DeletedBy, &t.DeletedAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trashed expense row", err)
		}
		trashed = append(trashed, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate trashed expense rows", err)
	}
	return trashed, nil
}
