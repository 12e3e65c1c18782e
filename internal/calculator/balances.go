package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	UserID     string
	Name       string
	TotalPaid  decimal.Decimal // Paid on behalf of other members
	TotalOwed  decimal.Decimal // Owed to other members
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
}

// Transfer is a single payment that settles part of the group's debts.
type Transfer struct {
	FromID   string // Person who owes
	FromName string
	ToID     string // Person who is owed
	ToName   string
	Amount   decimal.Decimal
}

// Summarize folds pairwise balances into one MemberBalance per member, ordered by user ID.
// Members that appear in no balance are omitted.
func Summarize(balances []models.Balance) []MemberBalance {
	byID := make(map[string]*MemberBalance)
	member := func(id, name string) *MemberBalance {
		m, ok := byID[id]
		if !ok {
			m = &MemberBalance{UserID: id, Name: name}
			byID[id] = m
		}
		return m
	}

	for _, b := range balances {
		payer := member(b.PayerID, b.PayerName)
		payer.TotalPaid = payer.TotalPaid.Add(b.Amount)

		ower := member(b.OwerID, b.OwerName)
		ower.TotalOwed = ower.TotalOwed.Add(b.Amount)
	}

	members := make([]MemberBalance, 0, len(byID))
	for _, m := range byID {
		m.NetBalance = m.TotalPaid.Sub(m.TotalOwed)
		members = append(members, *m)
	}
	slices.SortFunc(members, func(a, b MemberBalance) int {
		return cmp.Compare(a.UserID, b.UserID)
	})

	return members
}

// Simplify turns net member positions into a short list of transfers.
//
// Algorithm (greedy):
//   - Split members into debtors (net < 0) and creditors (net > 0)
//   - Order each side by amount, largest first, ties by user ID
//   - Repeatedly settle min(debt, credit) between the current debtor and creditor
//
// The result has at most len(debtors)+len(creditors)-1 transfers.
func Simplify(members []MemberBalance) []Transfer {
	type position struct {
		id, name string
		amount   decimal.Decimal
	}

	var debtors, creditors []position
	for _, m := range members {
		switch m.NetBalance.Sign() {
		case -1:
			debtors = append(debtors, position{m.UserID, m.Name, m.NetBalance.Neg()})
		case 1:
			creditors = append(creditors, position{m.UserID, m.Name, m.NetBalance})
		}
	}

	largestFirst := func(a, b position) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	}
	slices.SortFunc(debtors, largestFirst)
	slices.SortFunc(creditors, largestFirst)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		transfers = append(transfers, Transfer{
			FromID:   debtor.id,
			FromName: debtor.name,
			ToID:     creditor.id,
			ToName:   creditor.name,
			Amount:   amount,
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.IsZero() {
			i++
		}
		if creditor.amount.IsZero() {
			j++
		}
	}

	return transfers
}
