package ledger

import (
	"context"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// BalanceEngine derives who owes whom from the expenses currently in the store.
// It holds no state between calls.
type BalanceEngine struct {
	store storage.Store
}

func NewBalanceEngine(store storage.Store) *BalanceEngine {
	return &BalanceEngine{store: store}
}

// GroupBalances returns one row per (payer, ower) pair with a positive aggregate,
// ordered by payer ID then ower ID. Opposing pairs are not netted and
// settlements are not taken into account.
func (e *BalanceEngine) GroupBalances(ctx context.Context, groupID string) ([]models.Balance, error) {
	const op = "group balances"

	if _, err := e.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStorage(op, err)
	}
	balances, err := e.store.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, fromStorage(op, err)
	}
	return balances, nil
}

// UserBalances returns the pairwise balances userID takes part in, across every
// group the user belongs to, ordered by group ID, payer ID, then ower ID.
// Like GroupBalances it never nets and ignores settlements.
func (e *BalanceEngine) UserBalances(ctx context.Context, userID string) ([]models.Balance, error) {
	const op = "user balances"

	if _, err := e.store.GetUserByID(ctx, userID); err != nil {
		return nil, fromStorage(op, err)
	}
	balances, err := e.store.UserBalances(ctx, userID)
	if err != nil {
		return nil, fromStorage(op, err)
	}
	return balances, nil
}

// MemberSummaries returns paid, owed and net totals per member.
func (e *BalanceEngine) MemberSummaries(ctx context.Context, groupID string) ([]calculator.MemberBalance, error) {
	balances, err := e.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return calculator.Summarize(balances), nil
}

// DebtSummary is the netted view of a group's balances.
type DebtSummary struct {
	Members   []calculator.MemberBalance
	Transfers []calculator.Transfer
}

// SimplifiedDebts nets the group's pairwise balances and proposes the transfers
// that would settle them.
func (e *BalanceEngine) SimplifiedDebts(ctx context.Context, groupID string) (*DebtSummary, error) {
	members, err := e.MemberSummaries(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &DebtSummary{Members: members, Transfers: calculator.Simplify(members)}, nil
}
