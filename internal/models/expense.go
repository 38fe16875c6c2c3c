package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSplitKind is returned for a split kind outside the closed set.
var ErrUnknownSplitKind = errors.New("unknown split kind")

// SplitKind selects the rule used to validate the splits of an expense.
type SplitKind int

const (
	// SplitUnspecified is the zero value and is never valid.
	SplitUnspecified SplitKind = iota
	// SplitEqual requires every participant to owe total/n.
	SplitEqual
	// SplitUnequal allows arbitrary non-negative shares summing to the total.
	SplitUnequal
	// SplitPercentage takes a percentage per participant, summing to 100.
	SplitPercentage
)

var splitKindNames = map[SplitKind]string{
	SplitEqual:      "EQUAL",
	SplitUnequal:    "UNEQUAL",
	SplitPercentage: "PERCENTAGE",
}

// String returns the wire name of the kind.
func (k SplitKind) String() string {
	if name, ok := splitKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SplitKind(%d)", int(k))
}

// ParseSplitKind converts a wire name (case-insensitive) into a SplitKind.
func ParseSplitKind(s string) (SplitKind, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for kind, name := range splitKindNames {
		if name == upper {
			return kind, nil
		}
	}
	return SplitUnspecified, fmt.Errorf("%w: %q", ErrUnknownSplitKind, s)
}

// Split is one participant's share of an expense.
type Split struct {
	// UserID is the participant.
	UserID string

	// Amount is the absolute share owed by the participant.
	// For percentage expenses it is derived from Percent during validation.
	Amount float64

	// Percent is the participant's share in percent (0-100).
	// Only read for SplitPercentage.
	Percent float64
}

// Expense is an amount paid by one user and shared by a list of splits.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a free-form label (e.g., "Dinner", "Electricity bill").
	Description string

	// Amount is the total paid. Always greater than zero.
	Amount float64

	// PayerID is the user who paid the full amount.
	PayerID string

	// Kind is the split rule the splits were validated against.
	Kind SplitKind

	// Splits cover every participant exactly once, including the payer when
	// the payer consumed part of the expense. Amounts are absolute.
	Splits []Split

	// GroupID is the group the expense was posted to, if any.
	GroupID string

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64
}
