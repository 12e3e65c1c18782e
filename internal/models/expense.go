package models

import "github.com/shopspring/decimal"

// DefaultCategory is used when an expense is recorded without a category.
const DefaultCategory = "general"

// DateLayout is the calendar date format used for expense dates.
const DateLayout = "2006-01-02"

// MaxAmountCents caps any single amount at 1,000,000,000.00. At this cap a
// (payer, ower) pair can accumulate about 92 million splits before its sum
// leaves int64 cents.
const MaxAmountCents int64 = 100_000_000_000

// MaxAmount is MaxAmountCents as a decimal amount.
var MaxAmount = decimal.New(MaxAmountCents, -2)

// Expense represents one payment made by a group member on behalf of others.
// An expense and its splits are always created together.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PaidBy is the user ID of the member who paid.
	PaidBy string

	// Description is a short label (e.g., "Groceries").
	Description string

	// Amount is the total paid. It always equals the sum of Splits.
	Amount decimal.Decimal

	// Category classifies the expense (e.g., "food", "rent").
	Category string

	// Date is the calendar date of the expense, formatted with DateLayout.
	Date string

	// ReceiptURL optionally points at a scanned receipt.
	ReceiptURL string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits assign portions of Amount to individual users.
	Splits []Split
}

// SplitTotal returns the sum of all split amounts.
func (e *Expense) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Splits {
		total = total.Add(s.Amount)
	}
	return total
}

// SplitStatus is the settlement state of a single split.
type SplitStatus string

const (
	SplitPending SplitStatus = "pending"
	SplitSettled SplitStatus = "settled"
)

// Split is the portion of one expense owed by one user.
type Split struct {
	ID        string
	ExpenseID string
	UserID    string
	Amount    decimal.Decimal
	Status    SplitStatus

	// SettledAt is the Unix timestamp when the split was settled, 0 while pending.
	SettledAt int64
}
