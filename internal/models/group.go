package models

// Group represents a reusable participant list.
// An equal expense posted to a group without explicit splits is shared by
// every member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Goa").
	Name string

	// Members is the list of member user IDs, in insertion order.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

