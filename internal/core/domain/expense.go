package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single shared cost belonging to exactly one list. The payer is
// credited the full amount and every participant (payer included, when listed)
// is debited an equal share.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`
	ListID       string          `json:"listID"`
	Payer        Participant     `json:"payer"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Date         time.Time       `json:"date"`
	Participants []Participant   `json:"participants"` // ordered, unique
	AuditFields
}

// TrashedExpense is the soft-deleted counterpart of an Expense. Restoring it
// creates a fresh Expense with a new id; OriginalID is kept for display only.
type TrashedExpense struct {
	TrashID      string          `json:"trashID"`
	OriginalID   string          `json:"originalID"`
	ListID       string          `json:"listID"`
	Payer        Participant     `json:"payer"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Date         time.Time       `json:"date"`
	Participants []Participant   `json:"participants"`
	DeletedBy    string          `json:"deletedBy"`
	DeletedAt    time.Time       `json:"deletedAt"`
}
