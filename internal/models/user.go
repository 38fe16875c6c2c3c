package models

// User represents a person who can pay for and share expenses.
//
// A user's BalanceSheet is owned by the ledger, keyed by the user ID.
type User struct {
	// ID is the unique identifier for the user (UUID format unless supplied).
	ID string

	// Name is the display name of the user.
	Name string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}
