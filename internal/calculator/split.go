package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Share is one member's portion of an expense.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// SplitEqually divides total between members in whole cents.
// The cents that do not divide evenly go one each to the first members, in the order given,
// so the shares always sum to total exactly.
func SplitEqually(total decimal.Decimal, members []string) ([]Share, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("total cannot be negative")
	}
	if total.GreaterThan(models.MaxAmount) {
		return nil, fmt.Errorf("total %s exceeds the maximum of %s", total, models.MaxAmount.StringFixed(2))
	}
	if !total.Equal(total.Truncate(2)) {
		return nil, fmt.Errorf("total %s has more than two decimal places", total)
	}

	cents := total.Shift(2).IntPart()
	n := int64(len(members))
	base := cents / n
	remainder := cents % n

	shares := make([]Share, len(members))
	for i, member := range members {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = Share{UserID: member, Amount: decimal.New(c, -2)}
	}

	return shares, nil
}
