package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// Every split amount is attributed as "split user owes payer", summed per
// (group, payer, ower) and kept when strictly positive. Opposing pairs are not
// netted; self-pairs are dropped. Amounts are capped at models.MaxAmountCents,
// so SUM stays inside int64 for any realistic number of splits.
const balancesSelect = `
	SELECT
		e.group_id,
		e.paid_by,
		payer.display_name,
		s.user_id,
		ower.display_name,
		SUM(s.amount_cents) AS balance_cents
	FROM expenses e
	JOIN expense_splits s ON s.expense_id = e.id
	JOIN users payer ON payer.id = e.paid_by
	JOIN users ower ON ower.id = s.user_id
`

const groupBalancesQuery = balancesSelect + `
	WHERE e.group_id = ? AND s.user_id <> e.paid_by
	GROUP BY e.paid_by, s.user_id
	HAVING SUM(s.amount_cents) > 0
	ORDER BY e.paid_by, s.user_id
`

// userBalancesQuery covers the groups the user currently belongs to and only
// the pairs the user is part of.
const userBalancesQuery = balancesSelect + `
	JOIN group_members gm ON gm.group_id = e.group_id AND gm.user_id = ?
	WHERE s.user_id <> e.paid_by AND (e.paid_by = ? OR s.user_id = ?)
	GROUP BY e.group_id, e.paid_by, s.user_id
	HAVING SUM(s.amount_cents) > 0
	ORDER BY e.group_id, e.paid_by, s.user_id
`

// GroupBalances runs the aggregate balance query for one group.
func (s *SQLiteStore) GroupBalances(ctx context.Context, groupID string) ([]models.Balance, error) {
	return s.queryBalances(ctx, groupBalancesQuery, groupID)
}

// UserBalances runs the aggregate balance query across every group of userID,
// keeping pairs where the user is payer or ower.
func (s *SQLiteStore) UserBalances(ctx context.Context, userID string) ([]models.Balance, error) {
	return s.queryBalances(ctx, userBalancesQuery, userID, userID, userID)
}

func (s *SQLiteStore) queryBalances(ctx context.Context, query string, args ...any) ([]models.Balance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var balances []models.Balance
	for rows.Next() {
		var b models.Balance
		var cents int64
		if err := rows.Scan(&b.GroupID, &b.PayerID, &b.PayerName, &b.OwerID, &b.OwerName, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		b.Amount = fromCents(cents)
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}

	return balances, nil
}
