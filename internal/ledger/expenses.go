package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// SplitInput assigns part of a new expense to one user.
type SplitInput struct {
	UserID string
	Amount decimal.Decimal
}

// NewExpense is the input to ExpenseRecorder.Record.
// Exactly one of Splits and SplitBetween must be set.
type NewExpense struct {
	GroupID     string
	PaidBy      string
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        string
	ReceiptURL  string

	// Splits lists explicit per-user amounts, in order.
	Splits []SplitInput

	// SplitBetween divides Amount equally between these users.
	SplitBetween []string
}

// ExpenseRecorder validates expenses and persists them together with their splits.
type ExpenseRecorder struct {
	store storage.Store
	opts  options
}

func NewExpenseRecorder(store storage.Store, opts ...Option) *ExpenseRecorder {
	return &ExpenseRecorder{store: store, opts: buildOptions(opts)}
}

// Record validates in and writes the expense and all of its splits atomically.
// On any error nothing is persisted.
func (r *ExpenseRecorder) Record(ctx context.Context, in NewExpense) (*models.Expense, error) {
	const op = "record expense"

	expense, err := buildExpense(op, in)
	if err != nil {
		return nil, err
	}

	if err := r.store.CreateExpense(ctx, expense); err != nil {
		slog.ErrorContext(ctx, "CreateExpense failed", "group_id", in.GroupID, "error", err)
		return nil, fromStorage(op, err)
	}

	slog.InfoContext(ctx, "Recorded expense",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount.StringFixed(2),
		"splits", len(expense.Splits))

	event := events.New(events.ExpenseRecorded, expense.GroupID, expense.ID)
	event.ActorID = expense.PaidBy
	event.Amount = expense.Amount.StringFixed(2)
	r.opts.publish(ctx, event)

	return expense, nil
}

// buildExpense checks every field of in that can be checked without the store.
func buildExpense(op string, in NewExpense) (*models.Expense, error) {
	if strings.TrimSpace(in.GroupID) == "" {
		return nil, validationError(op, "group_id is required")
	}
	if strings.TrimSpace(in.PaidBy) == "" {
		return nil, validationError(op, "payer is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, validationError(op, "description is required")
	}
	if err := checkAmount(op, "amount", in.Amount, false); err != nil {
		return nil, err
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return nil, validationError(op, "date %q is not a valid YYYY-MM-DD date", in.Date)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	splits, err := buildSplits(op, in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     in.GroupID,
		PaidBy:      in.PaidBy,
		Description: description,
		Amount:      in.Amount,
		Category:    category,
		Date:        in.Date,
		ReceiptURL:  strings.TrimSpace(in.ReceiptURL),
		Splits:      splits,
	}

	if total := expense.SplitTotal(); !total.Equal(expense.Amount) {
		return nil, validationError(op, "splits sum to %s but amount is %s",
			total.StringFixed(2), expense.Amount.StringFixed(2))
	}

	return expense, nil
}

func buildSplits(op string, in NewExpense) ([]models.Split, error) {
	switch {
	case len(in.Splits) > 0 && len(in.SplitBetween) > 0:
		return nil, validationError(op, "give either splits or split_between, not both")
	case len(in.Splits) == 0 && len(in.SplitBetween) == 0:
		return nil, validationError(op, "at least one split is required")
	}

	inputs := in.Splits
	if len(in.SplitBetween) > 0 {
		shares, err := calculator.SplitEqually(in.Amount, in.SplitBetween)
		if err != nil {
			return nil, validationError(op, "split_between: %v", err)
		}
		inputs = make([]SplitInput, len(shares))
		for i, share := range shares {
			inputs[i] = SplitInput{UserID: share.UserID, Amount: share.Amount}
		}
	}

	seen := make(map[string]bool, len(inputs))
	splits := make([]models.Split, 0, len(inputs))
	for i, s := range inputs {
		if strings.TrimSpace(s.UserID) == "" {
			return nil, validationError(op, "split %d: user_id is required", i)
		}
		if seen[s.UserID] {
			return nil, validationError(op, "split %d: user %s appears more than once", i, s.UserID)
		}
		seen[s.UserID] = true

		if err := checkAmount(op, "split amount", s.Amount, true); err != nil {
			return nil, err
		}
		splits = append(splits, models.Split{UserID: s.UserID, Amount: s.Amount})
	}

	return splits, nil
}

// Get returns an expense with its splits.
func (r *ExpenseRecorder) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := r.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fromStorage("get expense", err)
	}
	return expense, nil
}

// ListByGroup returns every expense of a group, newest first.
func (r *ExpenseRecorder) ListByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	const op = "list expenses"

	if _, err := r.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStorage(op, err)
	}
	expenses, err := r.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fromStorage(op, err)
	}
	return expenses, nil
}

// ListForUser returns the expenses of every group userID belongs to, newest first.
func (r *ExpenseRecorder) ListForUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	expenses, err := r.store.ListExpensesForUser(ctx, userID)
	if err != nil {
		return nil, fromStorage("list user expenses", err)
	}
	return expenses, nil
}

// Delete removes an expense and, by cascade, its splits.
func (r *ExpenseRecorder) Delete(ctx context.Context, expenseID, actorID string) error {
	const op = "delete expense"

	expense, err := r.store.GetExpense(ctx, expenseID)
	if err != nil {
		return fromStorage(op, err)
	}
	if err := r.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.ErrorContext(ctx, "DeleteExpense failed", "expense_id", expenseID, "error", err)
		return fromStorage(op, err)
	}

	slog.InfoContext(ctx, "Deleted expense", "expense_id", expenseID, "group_id", expense.GroupID)

	event := events.New(events.ExpenseDeleted, expense.GroupID, expense.ID)
	event.ActorID = actorID
	event.Amount = expense.Amount.StringFixed(2)
	r.opts.publish(ctx, event)

	return nil
}

// SettleSplit marks a pending split as settled. Settling a split twice is a validation error.
func (r *ExpenseRecorder) SettleSplit(ctx context.Context, splitID string) (*models.Split, error) {
	split, err := r.store.SettleSplit(ctx, splitID, r.opts.now().Unix())
	if err != nil {
		return nil, fromStorage("settle split", err)
	}
	return split, nil
}
