package models

import "github.com/shopspring/decimal"

// Balance is the aggregate amount one member (the ower) owes another (the payer)
// across all expenses of a group. Opposing pairs are reported independently.
type Balance struct {
	GroupID   string
	PayerID   string
	PayerName string
	OwerID    string
	OwerName  string
	Amount    decimal.Decimal
}
