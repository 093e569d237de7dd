package services

import (
	"context"
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
	"github.com/splitsum/splitsum_app/internal/dto"
)

// ExpenseSvcFacade defines expense ingestion, soft deletion and trash
// operations.
type ExpenseSvcFacade interface {
	AddExpense(ctx context.Context, username string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, username, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, username, expenseID string) error
	RestoreExpense(ctx context.Context, username, trashID string) (*domain.Expense, error)

	ListExpenses(ctx context.Context, username, listID string) ([]domain.Expense, error)
	ListExpensesByDate(ctx context.Context, username, listID string, from, to time.Time) ([]domain.Expense, error)
	ListTrash(ctx context.Context, username string) ([]domain.TrashedExpense, error)
}
