package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func balance(payer, ower, amount string) models.Balance {
	return models.Balance{
		PayerID:   payer,
		PayerName: payer,
		OwerID:    ower,
		OwerName:  ower,
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestSummarize(t *testing.T) {
	members := Summarize([]models.Balance{
		balance("a", "b", "10"),
		balance("b", "a", "5"),
		balance("a", "c", "2.50"),
	})
	require.Len(t, members, 3)

	want := map[string][3]string{
		"a": {"12.50", "5.00", "7.50"},
		"b": {"5.00", "10.00", "-5.00"},
		"c": {"0.00", "2.50", "-2.50"},
	}
	for i, m := range members {
		if i > 0 {
			assert.Less(t, members[i-1].UserID, m.UserID)
		}
		w := want[m.UserID]
		assert.Equal(t, w[0], m.TotalPaid.StringFixed(2), "%s paid", m.UserID)
		assert.Equal(t, w[1], m.TotalOwed.StringFixed(2), "%s owed", m.UserID)
		assert.Equal(t, w[2], m.NetBalance.StringFixed(2), "%s net", m.UserID)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		balances []models.Balance
		want     []Transfer
	}{
		{
			name:     "opposing pairs collapse",
			balances: []models.Balance{balance("a", "b", "10"), balance("b", "a", "5")},
			want:     []Transfer{{FromID: "b", ToID: "a", Amount: decimal.RequireFromString("5")}},
		},
		{
			name: "chain collapses to one transfer",
			balances: []models.Balance{
				balance("b", "a", "10"),
				balance("c", "b", "10"),
			},
			want: []Transfer{{FromID: "a", ToID: "c", Amount: decimal.RequireFromString("10")}},
		},
		{
			name: "largest debtor pays largest creditor first",
			balances: []models.Balance{
				balance("a", "c", "30"),
				balance("b", "c", "10"),
				balance("a", "d", "5"),
			},
			want: []Transfer{
				{FromID: "c", ToID: "a", Amount: decimal.RequireFromString("35")},
				{FromID: "c", ToID: "b", Amount: decimal.RequireFromString("5")},
				{FromID: "d", ToID: "b", Amount: decimal.RequireFromString("5")},
			},
		},
		{
			name:     "fully netted group needs no transfers",
			balances: []models.Balance{balance("a", "b", "7"), balance("b", "a", "7")},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(Summarize(tt.balances))
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.Equal(t, tt.want[i].FromID, got[i].FromID)
				assert.Equal(t, tt.want[i].ToID, got[i].ToID)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount), "transfer %d amount %s", i, got[i].Amount)
			}
		})
	}
}

func TestSimplifyConservesNetPositions(t *testing.T) {
	members := Summarize([]models.Balance{
		balance("a", "b", "33.33"),
		balance("a", "c", "33.33"),
		balance("b", "c", "12.01"),
		balance("c", "d", "0.03"),
		balance("d", "a", "50"),
	})

	net := make(map[string]decimal.Decimal)
	for _, tr := range Simplify(members) {
		net[tr.FromID] = net[tr.FromID].Sub(tr.Amount)
		net[tr.ToID] = net[tr.ToID].Add(tr.Amount)
	}

	for _, m := range members {
		assert.True(t, m.NetBalance.Equal(net[m.UserID]), "%s: transfers give %s, want %s", m.UserID, net[m.UserID], m.NetBalance)
	}
}
