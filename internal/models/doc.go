// Package models defines the core domain models for splitbook.
//
// # Models
//
//   - User: a participant with a display name; owns one BalanceSheet
//   - Group: a reusable list of member user IDs
//   - Split: one participant's share of an expense
//   - Expense: an amount paid by one user and shared by a list of splits
//   - Balance: the directional owed amounts between a user and one counterparty
//   - BalanceSheet: every Balance of one user plus four running totals
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships (payer, counterparty, group member)
// are stored as user ID strings so sheets never reference each other.
// 2. **No netting**: a Balance keeps what I owe them and what they owe me as
// two independent amounts. The net figure is derived at read time.
// 3. **Immutable records**: Users, Groups and Expenses are not edited after
// creation, except for group membership additions.
package models
