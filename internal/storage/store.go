// Package storage provides abstractions for the ledger's append-only journal.
package storage

import (
	"context"

	"github.com/mmynk/splitbook/internal/models"
)

// Journal records every accepted ledger mutation in order so the in-memory
// ledger can be rebuilt by replaying it.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger.
type Journal interface {
	// AppendUser records a new user.
	AppendUser(ctx context.Context, user *models.User) error

	// AppendGroup records a new group with its initial members.
	AppendGroup(ctx context.Context, group *models.Group) error

	// AppendGroupMembers records members added to an existing group.
	AppendGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// AppendExpense records a validated expense with its absolute splits.
	AppendExpense(ctx context.Context, expense *models.Expense) error

	// Users returns every user in append order.
	Users(ctx context.Context) ([]models.User, error)

	// Groups returns every group, members in insertion order.
	Groups(ctx context.Context) ([]models.Group, error)

	// Expenses returns every expense in append order.
	Expenses(ctx context.Context) ([]models.Expense, error)

	// Close releases any resources held by the journal.
	Close() error
}
