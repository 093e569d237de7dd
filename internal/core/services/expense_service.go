package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
)

// expenseService handles expense ingestion, soft deletion into trash, and
// restoration. Every successful mutation triggers a balance recompute and
// notification fan-out for the affected list.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	balanceSvc  portssvc.BalanceSvcFacade
	auditSvc    portssvc.AuditSvcFacade
}

// NewExpenseService creates a new expense service with the provided
// dependencies.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepository,
	balanceSvc portssvc.BalanceSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	authorizer portssvc.ListAuthorizerSvc,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: BaseService{ListAuthorizer: authorizer},
		expenseRepo: expenseRepo,
		balanceSvc:  balanceSvc,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// validateExpenseInput enforces the ingestion invariants: positive amount,
// well-formed payer, non-empty well-formed unique participant set.
func validateExpenseInput(payer domain.Participant, amount decimal.Decimal, participants []domain.Participant) error {
	if err := payer.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	return domain.ValidateParticipants(participants)
}

// AddExpense validates and persists a new expense on the list.
func (s *expenseService) AddExpense(ctx context.Context, username string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	payer := req.Payer.ToDomainParticipant()
	participants := dto.ToDomainParticipants(req.Participants)
	if err := validateExpenseInput(payer, req.Amount, participants); err != nil {
		return nil, err
	}

	if err := s.AuthorizeMember(ctx, username, req.ListID); err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		ListID:       req.ListID,
		Payer:        payer,
		Amount:       req.Amount,
		Description:  req.Description,
		Category:     req.Category,
		Date:         req.ParsedDate(),
		Participants: participants,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     username,
			LastUpdatedAt: now,
			LastUpdatedBy: username,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("list_id", req.ListID))
		return nil, err
	}

	s.auditSvc.Record(ctx, req.ListID, username, "expense_added", expense.Description)
	s.notify(ctx, req.ListID)
	return &expense, nil
}

// UpdateExpense replaces the mutable fields of an existing expense.
func (s *expenseService) UpdateExpense(ctx context.Context, username, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	payer := req.Payer.ToDomainParticipant()
	participants := dto.ToDomainParticipants(req.Participants)
	if err := validateExpenseInput(payer, req.Amount, participants); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeMember(ctx, username, expense.ListID); err != nil {
		return nil, err
	}

	expense.Payer = payer
	expense.Amount = req.Amount
	expense.Description = req.Description
	expense.Category = req.Category
	expense.Date = req.ParsedDate()
	expense.Participants = participants
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = username

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.auditSvc.Record(ctx, expense.ListID, username, "expense_updated", expense.Description)
	s.notify(ctx, expense.ListID)
	return expense, nil
}

// DeleteExpense soft-deletes the expense into the trash.
func (s *expenseService) DeleteExpense(ctx context.Context, username, expenseID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeMember(ctx, username, expense.ListID); err != nil {
		return err
	}

	trash := domain.TrashedExpense{
		TrashID:      uuid.NewString(),
		OriginalID:   expense.ExpenseID,
		ListID:       expense.ListID,
		Payer:        expense.Payer,
		Amount:       expense.Amount,
		Description:  expense.Description,
		Category:     expense.Category,
		Date:         expense.Date,
		Participants: expense.Participants,
		DeletedBy:    username,
		DeletedAt:    time.Now(),
	}

	if err := s.expenseRepo.SoftDeleteExpense(ctx, expenseID, trash); err != nil {
		s.LogError(ctx, err, "Failed to soft-delete expense", slog.String("expense_id", expenseID))
		return err
	}

	s.auditSvc.Record(ctx, expense.ListID, username, "expense_deleted", expense.Description)
	s.notify(ctx, expense.ListID)
	return nil
}

// RestoreExpense recreates an active expense from the trash with a new id.
func (s *expenseService) RestoreExpense(ctx context.Context, username, trashID string) (*domain.Expense, error) {
	trash, err := s.expenseRepo.FindTrashedByID(ctx, trashID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeMember(ctx, username, trash.ListID); err != nil {
		return nil, err
	}

	now := time.Now()
	restored := domain.Expense{
		ExpenseID:    uuid.NewString(),
		ListID:       trash.ListID,
		Payer:        trash.Payer,
		Amount:       trash.Amount,
		Description:  trash.Description,
		Category:     trash.Category,
		Date:         trash.Date,
		Participants: trash.Participants,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     username,
			LastUpdatedAt: now,
			LastUpdatedBy: username,
		},
	}

	if err := s.expenseRepo.RestoreExpense(ctx, trashID, restored); err != nil {
		s.LogError(ctx, err, "Failed to restore expense", slog.String("trash_id", trashID))
		return nil, err
	}

	s.auditSvc.Record(ctx, trash.ListID, username, "expense_restored", restored.Description)
	s.notify(ctx, trash.ListID)
	return &restored, nil
}

// ListExpenses returns the list's active expenses.
func (s *expenseService) ListExpenses(ctx context.Context, username, listID string) ([]domain.Expense, error) {
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesByList(ctx, listID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("list_id", listID))
		return nil, err
	}
	return expenses, nil
}

// ListExpensesByDate returns the list's active expenses inside [from, to].
func (s *expenseService) ListExpensesByDate(ctx context.Context, username, listID string, from, to time.Time) ([]domain.Expense, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesByDate(ctx, listID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses by date", slog.String("list_id", listID))
		return nil, err
	}
	return expenses, nil
}

// ListTrash returns the expenses the user has soft-deleted.
func (s *expenseService) ListTrash(ctx context.Context, username string) ([]domain.TrashedExpense, error) {
	trash, err := s.expenseRepo.ListTrashedByUser(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trash", slog.String("user_id", username))
		return nil, err
	}
	return trash, nil
}

// notify enqueues the balance fan-out after a committed mutation. Failures are
// logged and never surfaced: the mutation already succeeded.
func (s *expenseService) notify(ctx context.Context, listID string) {
	if err := s.balanceSvc.EnqueueListUpdate(ctx, listID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to enqueue balance update", slog.String("list_id", listID))
	}
}
