package dto

import (
	"github.com/shopspring/decimal"
	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- Balance DTOs ---

// BalanceResultResponse is the serialized Balance Engine output. Map keys are
// the canonical tagged identity form ("registered:anna").
type BalanceResultResponse struct {
	ListID     string                                `json:"listID,omitempty"`
	Balances   map[string]decimal.Decimal            `json:"balances"`
	Settlement map[string]map[string]decimal.Decimal `json:"settlement"`
}

// ToBalanceResultResponse converts domain.BalanceResult to DTO.
func ToBalanceResultResponse(r *domain.BalanceResult) BalanceResultResponse {
	balances := make(map[string]decimal.Decimal, len(r.Balances))
	for p, amount := range r.Balances {
		balances[p.Key()] = amount
	}
	settlement := make(map[string]map[string]decimal.Decimal, len(r.Settlement))
	for from, row := range r.Settlement {
		inner := make(map[string]decimal.Decimal, len(row))
		for to, amount := range row {
			inner[to.Key()] = amount
		}
		settlement[from.Key()] = inner
	}
	return BalanceResultResponse{
		ListID:     r.ListID,
		Balances:   balances,
		Settlement: settlement,
	}
}
