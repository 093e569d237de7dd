package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
)

// settleTolerance is the residual below which a balance counts as settled.
var settleTolerance = decimal.NewFromFloat(0.01)

// balanceService computes net balances and settlement transfers from the
// expense store. It is read-only apart from enqueuing notification events.
type balanceService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
	listRepo    portsrepo.ListReader
	outboxRepo  portsrepo.OutboxRepository
}

// NewBalanceService creates a new balance service with the provided
// dependencies.
func NewBalanceService(
	expenseRepo portsrepo.ExpenseReader,
	listRepo portsrepo.ListReader,
	outboxRepo portsrepo.OutboxRepository,
	authorizer portssvc.ListAuthorizerSvc,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService: BaseService{ListAuthorizer: authorizer},
		expenseRepo: expenseRepo,
		listRepo:    listRepo,
		outboxRepo:  outboxRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeForList computes the balance result for a single list.
func (s *balanceService) ComputeForList(ctx context.Context, username, listID string) (*domain.BalanceResult, error) {
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, err
	}
	return s.computeList(ctx, listID)
}

// ComputeForUser computes over the union of every list the user can access.
func (s *balanceService) ComputeForUser(ctx context.Context, username string) (*domain.BalanceResult, error) {
	lists, err := s.listRepo.ListAccessibleLists(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accessible lists", slog.String("user_id", username))
		return nil, err
	}

	var expenses []domain.Expense
	for _, l := range lists {
		listExpenses, err := s.expenseRepo.ListExpensesByList(ctx, l.ListID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list expenses", slog.String("list_id", l.ListID))
			return nil, err
		}
		expenses = append(expenses, listExpenses...)
	}

	return s.compute(ctx, "", expenses)
}

// EnqueueListUpdate recomputes the list's balances and writes one outbox
// event per registered member. Called by mutating services after their
// transaction commits; failures here are logged, not surfaced, so delivery
// problems never fail a committed mutation.
func (s *balanceService) EnqueueListUpdate(ctx context.Context, listID string) error {
	result, err := s.computeList(ctx, listID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute balances for notification", slog.String("list_id", listID))
		return err
	}

	recipients, err := s.listRecipients(ctx, listID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve notification recipients", slog.String("list_id", listID))
		return err
	}

	payload, err := json.Marshal(dto.ToBalanceResultResponse(result))
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode balance payload", err)
	}

	now := time.Now()
	events := make([]domain.OutboxEvent, 0, len(recipients))
	for _, username := range recipients {
		events = append(events, domain.OutboxEvent{
			EventID:   uuid.NewString(),
			Topic:     fmt.Sprintf("%s:%s", username, listID),
			Payload:   payload,
			Status:    domain.OutboxPending,
			CreatedAt: now,
		})
	}
	if len(events) == 0 {
		return nil
	}

	if err := s.outboxRepo.EnqueueEvents(ctx, events); err != nil {
		s.LogError(ctx, err, "Failed to enqueue balance notifications", slog.String("list_id", listID))
		return err
	}

	s.LogDebug(ctx, "Balance notifications enqueued",
		slog.String("list_id", listID),
		slog.Int("recipients", len(events)))
	return nil
}

// listRecipients returns every registered member of the list, creator
// included even when not a member, deduplicated.
func (s *balanceService) listRecipients(ctx context.Context, listID string) ([]string, error) {
	list, err := s.listRepo.FindListByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.listRepo.ListMemberships(ctx, listID)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{list.CreatedBy: {}}
	recipients := []string{list.CreatedBy}
	for _, m := range memberships {
		if _, dup := seen[m.Username]; dup {
			continue
		}
		seen[m.Username] = struct{}{}
		recipients = append(recipients, m.Username)
	}
	return recipients, nil
}

func (s *balanceService) computeList(ctx context.Context, listID string) (*domain.BalanceResult, error) {
	expenses, err := s.expenseRepo.ListExpensesByList(ctx, listID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("list_id", listID))
		return nil, err
	}
	return s.compute(ctx, listID, expenses)
}

func (s *balanceService) compute(ctx context.Context, listID string, expenses []domain.Expense) (*domain.BalanceResult, error) {
	balances := computeNetBalances(expenses)
	settlement, err := reduceSettlement(balances)
	if err != nil {
		s.LogError(ctx, err, "Settlement reduction failed", slog.String("list_id", listID))
		return nil, err
	}

	return &domain.BalanceResult{
		ListID:     listID,
		Balances:   balances,
		Settlement: settlement,
	}, nil
}

// computeNetBalances credits each expense's full amount to the payer and
// debits an equal share to every participant (the payer included when
// listed). The resulting balances sum to zero for well-formed expenses.
func computeNetBalances(expenses []domain.Expense) domain.NetBalances {
	balances := make(domain.NetBalances)
	for _, e := range expenses {
		balances[e.Payer] = balances[e.Payer].Add(e.Amount)
		if len(e.Participants) == 0 {
			// Ingestion validation prevents this; an empty set would leave the
			// payer's credit unresolved.
			continue
		}
		share := e.Amount.Div(decimal.NewFromInt(int64(len(e.Participants))))
		for _, p := range e.Participants {
			balances[p] = balances[p].Sub(share)
		}
	}
	return balances
}

// reduceSettlement runs the two-pointer greedy reduction: identities sorted by
// net balance ascending, biggest debtor matched against biggest creditor,
// transferring min(debt, credit) and advancing whichever side settles to
// within the tolerance. Terminates in O(n) transfers; this is a heuristic, not
// the minimum-transaction optimum.
func reduceSettlement(balances domain.NetBalances) (domain.Settlement, error) {
	type entry struct {
		participant domain.Participant
		balance     decimal.Decimal
	}
	entries := make([]entry, 0, len(balances))
	for p, b := range balances {
		entries = append(entries, entry{participant: p, balance: b})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].balance.Equal(entries[j].balance) {
			return entries[i].balance.LessThan(entries[j].balance)
		}
		// Deterministic tiebreak so repeated runs yield identical results.
		return entries[i].participant.Key() < entries[j].participant.Key()
	})

	settlement := make(domain.Settlement)
	lo, hi := 0, len(entries)-1
	for lo < hi {
		debtor := &entries[lo]
		creditor := &entries[hi]

		debt := debtor.balance.Neg()
		credit := creditor.balance
		if debt.LessThan(settleTolerance) {
			lo++
			continue
		}
		if credit.LessThan(settleTolerance) {
			hi--
			continue
		}

		amount := decimal.Min(debt, credit)
		if amount.IsNegative() {
			return nil, apperrors.NewAppError(500, fmt.Sprintf(
				"settlement produced a negative transfer %s from %s to %s",
				amount, debtor.participant.Key(), creditor.participant.Key()), nil)
		}

		rounded := amount.Round(2)
		if rounded.IsPositive() {
			row, ok := settlement[debtor.participant]
			if !ok {
				row = make(map[domain.Participant]decimal.Decimal)
				settlement[debtor.participant] = row
			}
			row[creditor.participant] = row[creditor.participant].Add(rounded)
		}

		debtor.balance = debtor.balance.Add(amount)
		creditor.balance = creditor.balance.Sub(amount)

		if debtor.balance.Abs().LessThan(settleTolerance) {
			lo++
		}
		if creditor.balance.Abs().LessThan(settleTolerance) {
			hi--
		}
	}

	return settlement, nil
}
