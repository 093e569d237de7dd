package repositories

import (
	"context"
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// ExpenseReader exposes the read side of expense storage; the Balance Engine
// depends on nothing else.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesByList(ctx context.Context, listID string) ([]domain.Expense, error)
	ListExpensesByDate(ctx context.Context, listID string, from, to time.Time) ([]domain.Expense, error)
}

// ExpenseRepository defines persistence operations for expenses and their
// soft-deleted counterparts.
type ExpenseRepository interface {
	ExpenseReader
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	// SoftDeleteExpense inserts the trash record and removes the active
	// expense in a single transaction.
	SoftDeleteExpense(ctx context.Context, expenseID string, trash domain.TrashedExpense) error
	FindTrashedByID(ctx context.Context, trashID string) (*domain.TrashedExpense, error)
	// RestoreExpense inserts the recreated expense and removes the trash
	// record in a single transaction.
	RestoreExpense(ctx context.Context, trashID string, restored domain.Expense) error
	ListTrashedByUser(ctx context.Context, username string) ([]domain.TrashedExpense, error)
}
