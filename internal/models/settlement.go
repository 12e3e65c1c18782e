package models

import "github.com/shopspring/decimal"

// SettlementStatus is the lifecycle state of a settlement.
type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "pending"
	SettlementConfirmed SettlementStatus = "confirmed"
)

// Settlement represents a payment between group members to reduce a balance.
// Settlements are independent facts: they are never checked against computed balances.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// PayerID is the user who paid (debtor settling up).
	PayerID string

	// ReceiverID is the user who received payment (creditor being paid).
	ReceiverID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Status starts as pending and moves to confirmed exactly once.
	Status SettlementStatus

	// Note is an optional description for the settlement.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// SettledAt is the Unix timestamp of confirmation, 0 while pending.
	SettledAt int64
}
