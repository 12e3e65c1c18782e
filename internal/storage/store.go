// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	// ErrNotFound is returned when a point lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a write names a group, user or expense
	// that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrConflict is returned when a write violates a uniqueness rule
	// (duplicate email, duplicate membership, duplicate split user).
	ErrConflict = errors.New("conflict")

	// ErrInvalidState is returned when a status transition is not allowed
	// (settling a settled split, confirming a confirmed settlement).
	ErrInvalidState = errors.New("invalid state transition")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns ErrNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns ErrNotFound when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUsersByIDs omits IDs that do not exist.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// GroupStore persists groups and memberships.
type GroupStore interface {
	// CreateGroup persists the group and adds its creator and the given
	// members in one transaction.
	CreateGroup(ctx context.Context, group *models.Group, memberIDs []string) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)
	AddGroupMember(ctx context.Context, groupID, userID string) (*models.Membership, error)
	ListGroupMembers(ctx context.Context, groupID string) ([]*models.Membership, error)
	IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)
}

// ExpenseStore persists expenses with their splits.
type ExpenseStore interface {
	// CreateExpense persists the expense and every split as a single atomic
	// unit. The group, payer and split users must exist (ErrInvalidReference);
	// on any error nothing is written. IDs and CreatedAt are populated.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	// ListExpensesForUser returns the expenses of every group the user belongs to.
	ListExpensesForUser(ctx context.Context, userID string) ([]*models.Expense, error)
	// DeleteExpense removes the expense and, by cascade, its splits.
	DeleteExpense(ctx context.Context, expenseID string) error
	// GetSplit retrieves a single split.
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)

	// SettleSplit moves a pending split to settled.
	SettleSplit(ctx context.Context, splitID string, settledAt int64) (*models.Split, error)
}

// BalanceStore runs the aggregate balance query.
type BalanceStore interface {
	// GroupBalances aggregates split amounts by (payer, ower) across the
	// group's expenses and returns pairs whose sum is strictly positive,
	// excluding self-pairs, ordered by payer ID then ower ID.
	GroupBalances(ctx context.Context, groupID string) ([]models.Balance, error)

	// UserBalances runs the same aggregation across every group the user
	// belongs to, keeping pairs where the user is payer or ower, ordered by
	// group ID, payer ID, then ower ID.
	UserBalances(ctx context.Context, userID string) ([]models.Balance, error)
}

// SettlementStore persists settlements.
type SettlementStore interface {
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	// ConfirmSettlement moves a pending settlement to confirmed.
	ConfirmSettlement(ctx context.Context, settlementID string, settledAt int64) (*models.Settlement, error)
}

// Store is the ledger store: the single shared mutable resource behind every
// component. Implementations must be safe for concurrent use.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore
	BalanceStore
	SettlementStore

	// Close releases any resources held by the store.
	Close() error
}
