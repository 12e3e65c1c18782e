package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, name string) *models.User {
	t.Helper()

	user := models.NewUser(name+"@example.com", name, "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func createGroup(t *testing.T, store *SQLiteStore, creator *models.User, members ...*models.User) *models.Group {
	t.Helper()

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	group := &models.Group{Name: "Roommates", Category: "home", CreatedBy: creator.ID}
	require.NoError(t, store.CreateGroup(context.Background(), group, ids))
	return group
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(groupID, payerID, amount string, splits ...models.Split) *models.Expense {
	return &models.Expense{
		GroupID:     groupID,
		PaidBy:      payerID,
		Description: "Dinner",
		Amount:      dec(amount),
		Category:    "food",
		Date:        "2024-03-01",
		Splits:      splits,
	}
}

func split(userID, amount string) models.Split {
	return models.Split{UserID: userID, Amount: dec(amount)}
}

func countRows(t *testing.T, store *SQLiteStore, table string) int {
	t.Helper()

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")

	t.Run("lookup by id and email", func(t *testing.T) {
		byID, err := store.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Email, byID.Email)

		byEmail, err := store.GetUserByEmail(ctx, alice.Email)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)
	})

	t.Run("missing user is ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.GetUserByEmail(ctx, "nope@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("duplicate email is ErrConflict", func(t *testing.T) {
		dup := models.NewUser(alice.Email, "Other", "hash")
		assert.ErrorIs(t, store.CreateUser(ctx, dup), storage.ErrConflict)
	})

	t.Run("GetUsersByIDs skips unknown ids", func(t *testing.T) {
		bob := createUser(t, store, "bob")
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "ghost"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Contains(t, users, bob.ID)
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")

	group := createGroup(t, store, alice, bob, bob)

	t.Run("creator and members are added once", func(t *testing.T) {
		members, err := store.ListGroupMembers(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)

		ok, err := store.IsGroupMember(ctx, group.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.IsGroupMember(ctx, group.ID, carol.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("AddGroupMember", func(t *testing.T) {
		m, err := store.AddGroupMember(ctx, group.ID, carol.ID)
		require.NoError(t, err)
		assert.NotZero(t, m.JoinedAt)

		_, err = store.AddGroupMember(ctx, group.ID, carol.ID)
		assert.ErrorIs(t, err, storage.ErrConflict)

		_, err = store.AddGroupMember(ctx, "missing", carol.ID)
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	})

	t.Run("ListGroupsForUser", func(t *testing.T) {
		groups, err := store.ListGroupsForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "Roommates", groups[0].Name)
	})

	t.Run("unknown member rolls back the group", func(t *testing.T) {
		g := &models.Group{Name: "Broken", CreatedBy: alice.ID}
		err := store.CreateGroup(ctx, g, []string{"ghost"})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		_, err = store.GetGroup(ctx, g.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCreateExpense(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	outsider := createUser(t, store, "outsider")
	group := createGroup(t, store, alice, bob)

	t.Run("persists expense and splits", func(t *testing.T) {
		e := expense(group.ID, alice.ID, "30.50", split(alice.ID, "15.25"), split(bob.ID, "15.25"))
		require.NoError(t, store.CreateExpense(ctx, e))
		assert.NotEmpty(t, e.ID)
		assert.NotZero(t, e.CreatedAt)

		got, err := store.GetExpense(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(dec("30.50")))
		require.Len(t, got.Splits, 2)
		assert.Equal(t, alice.ID, got.Splits[0].UserID)
		assert.Equal(t, models.SplitPending, got.Splits[1].Status)
		assert.True(t, got.SplitTotal().Equal(got.Amount))
	})

	t.Run("duplicate split user rolls back everything", func(t *testing.T) {
		before := countRows(t, store, "expenses")
		beforeSplits := countRows(t, store, "expense_splits")

		e := expense(group.ID, alice.ID, "20", split(bob.ID, "10"), split(bob.ID, "10"))
		err := store.CreateExpense(ctx, e)
		assert.ErrorIs(t, err, storage.ErrConflict)

		assert.Equal(t, before, countRows(t, store, "expenses"))
		assert.Equal(t, beforeSplits, countRows(t, store, "expense_splits"))
		_, err = store.GetExpense(ctx, e.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("non-member split user rolls back everything", func(t *testing.T) {
		before := countRows(t, store, "expenses")

		e := expense(group.ID, alice.ID, "20", split(bob.ID, "10"), split(outsider.ID, "10"))
		err := store.CreateExpense(ctx, e)
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
		assert.Equal(t, before, countRows(t, store, "expenses"))
	})

	t.Run("amounts outside the cents range write nothing", func(t *testing.T) {
		before := countRows(t, store, "expenses")
		beforeSplits := countRows(t, store, "expense_splits")

		for _, e := range []*models.Expense{
			expense(group.ID, alice.ID, "184467440737095516.17", split(bob.ID, "184467440737095516.17")),
			expense(group.ID, alice.ID, "1000000000.01", split(bob.ID, "1000000000.01")),
			expense(group.ID, alice.ID, "10", split(bob.ID, "10.005")),
		} {
			assert.Error(t, store.CreateExpense(ctx, e))
		}

		assert.Equal(t, before, countRows(t, store, "expenses"))
		assert.Equal(t, beforeSplits, countRows(t, store, "expense_splits"))
	})

	t.Run("unknown group or payer", func(t *testing.T) {
		err := store.CreateExpense(ctx, expense("ghost", alice.ID, "10", split(bob.ID, "10")))
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		err = store.CreateExpense(ctx, expense(group.ID, outsider.ID, "10", split(bob.ID, "10")))
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	})
}

func TestDeleteExpenseCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	group := createGroup(t, store, alice, bob)

	e := expense(group.ID, alice.ID, "10", split(bob.ID, "10"))
	require.NoError(t, store.CreateExpense(ctx, e))
	require.Equal(t, 1, countRows(t, store, "expense_splits"))

	require.NoError(t, store.DeleteExpense(ctx, e.ID))
	assert.Equal(t, 0, countRows(t, store, "expense_splits"))
	assert.ErrorIs(t, store.DeleteExpense(ctx, e.ID), storage.ErrNotFound)
}

func TestSettleSplit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	group := createGroup(t, store, alice, bob)

	e := expense(group.ID, alice.ID, "10", split(bob.ID, "10"))
	require.NoError(t, store.CreateExpense(ctx, e))

	got, err := store.GetSplit(ctx, e.Splits[0].ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ExpenseID)
	assert.Equal(t, models.SplitPending, got.Status)

	_, err = store.GetSplit(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	settled, err := store.SettleSplit(ctx, e.Splits[0].ID, 1700000000)
	require.NoError(t, err)
	assert.Equal(t, models.SplitSettled, settled.Status)
	assert.Equal(t, int64(1700000000), settled.SettledAt)

	_, err = store.SettleSplit(ctx, e.Splits[0].ID, 1700000001)
	assert.ErrorIs(t, err, storage.ErrInvalidState)

	_, err = store.SettleSplit(ctx, "ghost", 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGroupBalances(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")
	group := createGroup(t, store, alice, bob, carol)
	other := createGroup(t, store, alice, bob)

	record := func(e *models.Expense) {
		t.Helper()
		require.NoError(t, store.CreateExpense(ctx, e))
	}

	t.Run("empty group has no balances", func(t *testing.T) {
		balances, err := store.GroupBalances(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, balances)
	})

	record(expense(group.ID, alice.ID, "30", split(bob.ID, "30")))
	record(expense(group.ID, alice.ID, "25", split(bob.ID, "20"), split(alice.ID, "5")))
	record(expense(group.ID, bob.ID, "5", split(alice.ID, "5")))
	record(expense(group.ID, carol.ID, "0.01", split(alice.ID, "0.01")))
	record(expense(group.ID, alice.ID, "9", split(carol.ID, "0"), split(alice.ID, "9")))
	record(expense(other.ID, alice.ID, "100", split(bob.ID, "100")))

	balances, err := store.GroupBalances(ctx, group.ID)
	require.NoError(t, err)

	type row struct{ payer, ower, amount string }
	got := make([]row, len(balances))
	for i, b := range balances {
		got[i] = row{b.PayerName, b.OwerName, b.Amount.StringFixed(2)}
	}

	want := map[row]bool{
		{"alice", "bob", "50.00"}:  true,
		{"bob", "alice", "5.00"}:   true,
		{"carol", "alice", "0.01"}: true,
	}
	assert.Len(t, got, len(want))
	for _, r := range got {
		assert.True(t, want[r], "unexpected balance row %+v", r)
	}

	for i := 1; i < len(balances); i++ {
		prev, cur := balances[i-1], balances[i]
		ordered := prev.PayerID < cur.PayerID || (prev.PayerID == cur.PayerID && prev.OwerID < cur.OwerID)
		assert.True(t, ordered, "balances not ordered by payer then ower")
	}
	for _, b := range balances {
		assert.Equal(t, group.ID, b.GroupID)
	}
}

func TestGroupBalancesLargeSums(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	group := createGroup(t, store, alice, bob)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateExpense(ctx, expense(group.ID, alice.ID, "1000000000", split(bob.ID, "1000000000"))))
	}
	assert.Error(t, store.CreateExpense(ctx, expense(group.ID, alice.ID, "90000000000000000", split(bob.ID, "90000000000000000"))))

	balances, err := store.GroupBalances(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "3000000000.00", balances[0].Amount.StringFixed(2))
}

func TestUserBalances(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")
	dave := createUser(t, store, "dave")
	trip := createGroup(t, store, alice, bob, carol)
	flat := createGroup(t, store, bob, alice)
	elsewhere := createGroup(t, store, carol, dave)

	for _, e := range []*models.Expense{
		expense(trip.ID, alice.ID, "30", split(bob.ID, "30")),
		expense(trip.ID, carol.ID, "10", split(bob.ID, "4"), split(alice.ID, "6")),
		expense(trip.ID, alice.ID, "5", split(alice.ID, "5")),
		expense(flat.ID, bob.ID, "20", split(alice.ID, "20")),
		expense(elsewhere.ID, carol.ID, "50", split(dave.ID, "50")),
	} {
		require.NoError(t, store.CreateExpense(ctx, e))
	}

	balances, err := store.UserBalances(ctx, alice.ID)
	require.NoError(t, err)

	type row struct{ group, payer, ower, amount string }
	got := make([]row, len(balances))
	for i, b := range balances {
		got[i] = row{b.GroupID, b.PayerName, b.OwerName, b.Amount.StringFixed(2)}
	}
	assert.ElementsMatch(t, []row{
		{trip.ID, "alice", "bob", "30.00"},
		{trip.ID, "carol", "alice", "6.00"},
		{flat.ID, "bob", "alice", "20.00"},
	}, got)

	for i := 1; i < len(balances); i++ {
		prev, cur := balances[i-1], balances[i]
		ordered := prev.GroupID < cur.GroupID ||
			(prev.GroupID == cur.GroupID && (prev.PayerID < cur.PayerID || (prev.PayerID == cur.PayerID && prev.OwerID < cur.OwerID)))
		assert.True(t, ordered, "balances not ordered by group, payer, then ower")
	}

	t.Run("user without groups has no balances", func(t *testing.T) {
		loner := createUser(t, store, "loner")
		balances, err := store.UserBalances(ctx, loner.ID)
		require.NoError(t, err)
		assert.Empty(t, balances)
	})
}

func TestListExpensesForUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")
	trip := createGroup(t, store, alice, bob)
	flat := createGroup(t, store, bob, carol)
	elsewhere := createGroup(t, store, carol)

	older := expense(trip.ID, alice.ID, "10", split(bob.ID, "10"))
	older.Date = "2024-01-01"
	newer := expense(flat.ID, carol.ID, "8", split(bob.ID, "3"), split(carol.ID, "5"))
	newer.Date = "2024-02-01"
	hidden := expense(elsewhere.ID, carol.ID, "4", split(carol.ID, "4"))
	for _, e := range []*models.Expense{older, newer, hidden} {
		require.NoError(t, store.CreateExpense(ctx, e))
	}

	got, err := store.ListExpensesForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	require.Len(t, got[0].Splits, 2)
	assert.Equal(t, bob.ID, got[0].Splits[0].UserID)
	assert.True(t, got[0].SplitTotal().Equal(dec("8")))

	got, err = store.ListExpensesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, older.ID, got[0].ID)

	got, err = store.ListExpensesForUser(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	group := createGroup(t, store, alice, bob)

	s := &models.Settlement{GroupID: group.ID, PayerID: bob.ID, ReceiverID: alice.ID, Amount: dec("12.34"), Note: "cash"}
	require.NoError(t, store.CreateSettlement(ctx, s))
	assert.Equal(t, models.SettlementPending, s.Status)

	got, err := store.GetSettlement(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("12.34")))
	assert.Equal(t, "cash", got.Note)
	assert.Zero(t, got.SettledAt)

	confirmed, err := store.ConfirmSettlement(ctx, s.ID, 1700000000)
	require.NoError(t, err)
	assert.Equal(t, models.SettlementConfirmed, confirmed.Status)
	assert.Equal(t, int64(1700000000), confirmed.SettledAt)

	_, err = store.ConfirmSettlement(ctx, s.ID, 1700000001)
	assert.ErrorIs(t, err, storage.ErrInvalidState)

	_, err = store.ConfirmSettlement(ctx, "ghost", 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	bad := &models.Settlement{GroupID: group.ID, PayerID: "ghost", ReceiverID: alice.ID, Amount: dec("1")}
	assert.ErrorIs(t, store.CreateSettlement(ctx, bad), storage.ErrInvalidReference)

	huge := &models.Settlement{GroupID: group.ID, PayerID: bob.ID, ReceiverID: alice.ID, Amount: dec("184467440737095516.17")}
	assert.Error(t, store.CreateSettlement(ctx, huge))
	assert.Equal(t, 1, countRows(t, store, "settlements"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
