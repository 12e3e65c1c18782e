// Package models defines the core domain models for the split ledger.
//
// # Entities
//
//   - User: a registered account; the identity behind payers, owers and settlements
//   - Group: a named collection of members that share expenses
//   - Membership: a (group, user) pair with the time the user joined
//   - Expense: one payment made by a member on behalf of the group
//   - Split: the portion of one expense attributed to one user
//   - Settlement: a payment recorded to reduce an outstanding balance
//   - Balance: a derived, directed "ower owes payer" amount (never stored)
//
// # Design Principles
//
// 1. **Exact money**: all amounts are decimal.Decimal with at most two fractional digits
// 2. **IDs, not pointers**: relationships are expressed with ID strings
// 3. **Unix timestamps**: CreatedAt/SettledAt are Unix seconds; zero means "unset"
package models
