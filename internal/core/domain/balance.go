package domain

import "github.com/shopspring/decimal"

// NetBalances maps each participant identity to its signed net balance:
// credits as payer minus debits as cost-sharer. The values sum to zero for any
// well-formed expense set.
type NetBalances map[Participant]decimal.Decimal

// Settlement maps debtor -> creditor -> amount owed. Amounts are strictly
// positive and rounded to two decimal places; zero pairs are omitted.
type Settlement map[Participant]map[Participant]decimal.Decimal

// BalanceResult is the Balance Engine output for one list (or the union of a
// user's accessible lists when ListID is empty).
type BalanceResult struct {
	ListID     string      `json:"listID,omitempty"`
	Balances   NetBalances `json:"-"`
	Settlement Settlement  `json:"-"`
}

// Transfer is one settlement edge in flattened form.
type Transfer struct {
	From   Participant     `json:"from"`
	To     Participant     `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Transfers flattens the settlement mapping. Iteration order is not
// guaranteed; callers needing a stable order sort themselves.
func (s Settlement) Transfers() []Transfer {
	var out []Transfer
	for from, row := range s {
		for to, amount := range row {
			out = append(out, Transfer{From: from, To: to, Amount: amount})
		}
	}
	return out
}
