package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// dateLayout is the wire format for expense dates.
const dateLayout = "2006-01-02"

// --- Expense DTOs ---

// CreateExpenseRequest defines data for adding an expense to a list.
type CreateExpenseRequest struct {
	ListID       string               `json:"listID" binding:"required"`
	Payer        ParticipantPayload   `json:"payer" binding:"required"`
	Amount       decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Date         string               `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Participants []ParticipantPayload `json:"participants" binding:"required,min=1,dive"`
}

// ParsedDate returns the expense date, defaulting to now when omitted.
func (r CreateExpenseRequest) ParsedDate() time.Time {
	if r.Date == "" {
		return time.Now()
	}
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Now()
	}
	return d
}

// UpdateExpenseRequest defines data for editing an existing expense.
type UpdateExpenseRequest struct {
	Payer        ParticipantPayload   `json:"payer" binding:"required"`
	Amount       decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Date         string               `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Participants []ParticipantPayload `json:"participants" binding:"required,min=1,dive"`
}

// ParsedDate returns the expense date, defaulting to now when omitted.
func (r UpdateExpenseRequest) ParsedDate() time.Time {
	if r.Date == "" {
		return time.Now()
	}
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Now()
	}
	return d
}

// ExpenseResponse defines data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string               `json:"expenseID"`
	ListID       string               `json:"listID"`
	Payer        ParticipantPayload   `json:"payer"`
	Amount       decimal.Decimal      `json:"amount"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Date         string               `json:"date"`
	Participants []ParticipantPayload `json:"participants"`
	CreatedBy    string               `json:"createdBy"`
}

// ToExpenseResponse converts domain.Expense to DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		ListID:       e.ListID,
		Payer:        ToParticipantPayload(e.Payer),
		Amount:       e.Amount,
		Description:  e.Description,
		Category:     e.Category,
		Date:         e.Date.Format(dateLayout),
		Participants: ToParticipantPayloads(e.Participants),
		CreatedBy:    e.CreatedBy,
	}
}

// ListExpensesResponse wraps a list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToListExpensesResponse converts a slice of domain.Expense to DTO.
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: out}
}

// TrashedExpenseResponse defines data returned for a soft-deleted expense.
type TrashedExpenseResponse struct {
	TrashID      string               `json:"trashID"`
	OriginalID   string               `json:"originalID"`
	ListID       string               `json:"listID"`
	Payer        ParticipantPayload   `json:"payer"`
	Amount       decimal.Decimal      `json:"amount"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Date         string               `json:"date"`
	Participants []ParticipantPayload `json:"participants"`
	DeletedAt    time.Time            `json:"deletedAt"`
}

// ToTrashedExpenseResponse converts domain.TrashedExpense to DTO.
func ToTrashedExpenseResponse(t *domain.TrashedExpense) TrashedExpenseResponse {
	return TrashedExpenseResponse{
		TrashID:      t.TrashID,
		OriginalID:   t.OriginalID,
		ListID:       t.ListID,
		Payer:        ToParticipantPayload(t.Payer),
		Amount:       t.Amount,
		Description:  t.Description,
		Category:     t.Category,
		Date:         t.Date.Format(dateLayout),
		Participants: ToParticipantPayloads(t.Participants),
		DeletedAt:    t.DeletedAt,
	}
}

// ListTrashResponse wraps a user's trashed expenses.
type ListTrashResponse struct {
	Trash []TrashedExpenseResponse `json:"trash"`
}

// ToListTrashResponse converts a slice of domain.TrashedExpense to DTO.
func ToListTrashResponse(trash []domain.TrashedExpense) ListTrashResponse {
	out := make([]TrashedExpenseResponse, len(trash))
	for i := range trash {
		out[i] = ToTrashedExpenseResponse(&trash[i])
	}
	return ListTrashResponse{Trash: out}
}
