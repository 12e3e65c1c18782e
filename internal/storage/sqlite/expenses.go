package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateExpense persists an expense and all of its splits in one transaction.
// The payer and every split user must be members of the expense's group.
// Any failure rolls back the whole unit, so no expense is ever visible without
// its splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	amountCents, err := toCents(expense.Amount)
	if err != nil {
		return fmt.Errorf("expense: %w", err)
	}
	splitCents := make([]int64, len(expense.Splits))
	for i, split := range expense.Splits {
		if splitCents[i], err = toCents(split.Amount); err != nil {
			return fmt.Errorf("split %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ok, err := exists(ctx, tx, "groups", expense.GroupID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrInvalidReference)
	}
	if err := requireMember(ctx, tx, expense.GroupID, expense.PaidBy); err != nil {
		return fmt.Errorf("payer: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, paid_by, description, amount_cents, category, date, receipt_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.PaidBy, expense.Description, amountCents,
		expense.Category, expense.Date, nullString(expense.ReceiptURL), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expense_splits (id, expense_id, user_id, amount_cents, status) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare split insert: %w", err)
	}
	defer stmt.Close()

	for i := range expense.Splits {
		split := &expense.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID
		split.Status = models.SplitPending
		split.SettledAt = 0

		if err := requireMember(ctx, tx, expense.GroupID, split.UserID); err != nil {
			return fmt.Errorf("split %d: %w", i, err)
		}

		_, err = stmt.ExecContext(ctx, split.ID, split.ExpenseID, split.UserID, splitCents[i], string(split.Status))
		if isUniqueViolation(err) {
			return fmt.Errorf("split %d: user %s appears twice: %w", i, split.UserID, storage.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to insert split %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// requireMember returns ErrInvalidReference unless userID belongs to groupID.
func requireMember(ctx context.Context, q queryer, groupID, userID string) error {
	var one int
	err := q.QueryRowContext(ctx,
		"SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %s is not a member of group %s: %w", userID, groupID, storage.ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	return nil
}

const expenseColumns = `id, group_id, paid_by, description, amount_cents, category, date, receipt_url, created_at`

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	splits, err := s.listSplits(ctx,
		`SELECT id, expense_id, user_id, amount_cents, status, settled_at
		 FROM expense_splits WHERE expense_id = ? ORDER BY rowid`,
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	for _, split := range splits {
		expense.Splits = append(expense.Splits, *split)
	}

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group with their splits,
// newest date first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "e.group_id = ?", groupID)
}

// ListExpensesForUser retrieves the expenses of every group the user belongs
// to, newest date first.
func (s *SQLiteStore) ListExpensesForUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"e.group_id IN (SELECT group_id FROM group_members WHERE user_id = ?)", userID)
}

// listExpenses loads the expenses matching filter, a condition on the
// expenses table aliased e, and attaches their splits.
func (s *SQLiteStore) listExpenses(ctx context.Context, filter string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses e WHERE `+filter+` ORDER BY date DESC, created_at DESC, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splits, err := s.listSplits(ctx,
		`SELECT s.id, s.expense_id, s.user_id, s.amount_cents, s.status, s.settled_at
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE `+filter+`
		 ORDER BY s.rowid`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	for _, split := range splits {
		if expense, ok := byID[split.ExpenseID]; ok {
			expense.Splits = append(expense.Splits, *split)
		}
	}

	return expenses, nil
}

// DeleteExpense removes an expense; its splits are removed by cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// GetSplit retrieves a split by ID.
func (s *SQLiteStore) GetSplit(ctx context.Context, splitID string) (*models.Split, error) {
	splits, err := s.listSplits(ctx,
		`SELECT id, expense_id, user_id, amount_cents, status, settled_at FROM expense_splits WHERE id = ?`,
		splitID,
	)
	if err != nil {
		return nil, err
	}
	if len(splits) == 0 {
		return nil, fmt.Errorf("split %s: %w", splitID, storage.ErrNotFound)
	}
	return splits[0], nil
}

// SettleSplit marks a pending split as settled.
func (s *SQLiteStore) SettleSplit(ctx context.Context, splitID string, settledAt int64) (*models.Split, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	split := &models.Split{}
	var cents int64
	var status string
	var settled sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT id, expense_id, user_id, amount_cents, status, settled_at FROM expense_splits WHERE id = ?`,
		splitID,
	).Scan(&split.ID, &split.ExpenseID, &split.UserID, &cents, &status, &settled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("split %s: %w", splitID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	if models.SplitStatus(status) != models.SplitPending {
		return nil, fmt.Errorf("split %s is %s: %w", splitID, status, storage.ErrInvalidState)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE expense_splits SET status = ?, settled_at = ? WHERE id = ?",
		string(models.SplitSettled), settledAt, splitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to settle split: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	split.Amount = fromCents(cents)
	split.Status = models.SplitSettled
	split.SettledAt = settledAt
	return split, nil
}

func (s *SQLiteStore) listSplits(ctx context.Context, query string, args ...any) ([]*models.Split, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.Split
	for rows.Next() {
		split := &models.Split{}
		var cents int64
		var status string
		var settled sql.NullInt64
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &cents, &status, &settled); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = fromCents(cents)
		split.Status = models.SplitStatus(status)
		if settled.Valid {
			split.SettledAt = settled.Int64
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var cents int64
	var receipt sql.NullString
	err := row.Scan(&expense.ID, &expense.GroupID, &expense.PaidBy, &expense.Description, &cents,
		&expense.Category, &expense.Date, &receipt, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.Amount = fromCents(cents)
	if receipt.Valid {
		expense.ReceiptURL = receipt.String
	}
	return expense, nil
}
