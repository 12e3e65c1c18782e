package ledgerv1

import "github.com/shopspring/decimal"

type Split struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	SettledAt int64           `json:"settled_at,omitempty"`
}

type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	PaidBy      string          `json:"paid_by"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	CreatedAt   int64           `json:"created_at"`
	Splits      []*Split        `json:"splits"`
}

type SplitInput struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateExpenseRequest records an expense paid by the caller.
// Give either Splits or SplitBetween.
type CreateExpenseRequest struct {
	GroupID      string          `json:"group_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	Date         string          `json:"date"`
	ReceiptURL   string          `json:"receipt_url,omitempty"`
	Splits       []*SplitInput   `json:"splits,omitempty"`
	SplitBetween []string        `json:"split_between,omitempty"`
}

type CreateExpenseResponse struct {
	ExpenseID string   `json:"expense_id"`
	Expense   *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// ListExpensesRequest lists one group's expenses, or every expense of the
// caller's groups when GroupID is empty.
type ListExpensesRequest struct {
	GroupID string `json:"group_id,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type SettleSplitRequest struct {
	SplitID string `json:"split_id"`
}

type SettleSplitResponse struct {
	Split *Split `json:"split"`
}

// Balance says Ower owes Payer Balance.
type Balance struct {
	GroupID string          `json:"group_id"`
	PayerID string          `json:"payer_id"`
	Payer   string          `json:"payer"`
	OwerID  string          `json:"ower_id"`
	Ower    string          `json:"ower"`
	Balance decimal.Decimal `json:"balance"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	Balances []*Balance `json:"balances"`
}

// GetUserBalancesRequest asks for the caller's balances across all of their groups.
type GetUserBalancesRequest struct{}

type GetUserBalancesResponse struct {
	Balances []*Balance `json:"balances"`
}

type Transfer struct {
	FromID string          `json:"from_id"`
	From   string          `json:"from"`
	ToID   string          `json:"to_id"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type MemberBalance struct {
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

type GetSimplifiedDebtsRequest struct {
	GroupID string `json:"group_id"`
}

type GetSimplifiedDebtsResponse struct {
	Transfers []*Transfer      `json:"transfers"`
	Members   []*MemberBalance `json:"members"`
}

type Settlement struct {
	ID         string          `json:"id"`
	GroupID    string          `json:"group_id"`
	PayerID    string          `json:"payer_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  int64           `json:"created_at"`
	SettledAt  int64           `json:"settled_at,omitempty"`
}

type CreateSettlementRequest struct {
	GroupID    string          `json:"group_id"`
	PayerID    string          `json:"payer_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
}

type CreateSettlementResponse struct {
	SettlementID string      `json:"settlement_id"`
	Settlement   *Settlement `json:"settlement"`
}

type ConfirmSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type ConfirmSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}
