package models

import "sort"

// Balance is the pair of amounts between a user and one counterparty.
//
// Both amounts only ever grow. They are not netted against each other;
// use Net for the derived figure.
type Balance struct {
	// CounterpartyID is the other user.
	CounterpartyID string

	// OwedByMe is what the sheet owner owes the counterparty.
	OwedByMe float64

	// OwedToMe is what the counterparty owes the sheet owner.
	OwedToMe float64
}

// Net returns OwedToMe - OwedByMe.
// Positive = the counterparty owes the sheet owner, negative = the owner owes.
func (b Balance) Net() float64 {
	return b.OwedToMe - b.OwedByMe
}

// BalanceSheet holds every Balance of one user and four running totals.
//
// TotalYouOwe always equals the sum of OwedByMe over Balances, and
// TotalYouGetBack the sum of OwedToMe. Only the ledger update engine
// mutates a sheet.
type BalanceSheet struct {
	UserID string

	// Balances is keyed by counterparty user ID.
	Balances map[string]*Balance

	// TotalPaid is the sum of every expense amount this user paid.
	TotalPaid float64

	// TotalOwnExpense is the sum of this user's own shares.
	TotalOwnExpense float64

	// TotalYouOwe is the sum of what this user owes others.
	TotalYouOwe float64

	// TotalYouGetBack is the sum of what others owe this user.
	TotalYouGetBack float64
}

// NewBalanceSheet returns an empty sheet for userID.
func NewBalanceSheet(userID string) *BalanceSheet {
	return &BalanceSheet{
		UserID:   userID,
		Balances: make(map[string]*Balance),
	}
}

// BalanceWith returns the Balance against counterpartyID, creating a zero
// entry on first use.
func (s *BalanceSheet) BalanceWith(counterpartyID string) *Balance {
	b, ok := s.Balances[counterpartyID]
	if !ok {
		b = &Balance{CounterpartyID: counterpartyID}
		s.Balances[counterpartyID] = b
	}
	return b
}

// SheetSnapshot is a detached, read-only copy of a BalanceSheet.
type SheetSnapshot struct {
	UserID          string
	TotalPaid       float64
	TotalOwnExpense float64
	TotalYouOwe     float64
	TotalYouGetBack float64

	// Balances are sorted by CounterpartyID.
	Balances []Balance
}

// Snapshot copies the sheet so callers can read it without holding the ledger.
func (s *BalanceSheet) Snapshot() SheetSnapshot {
	snap := SheetSnapshot{
		UserID:          s.UserID,
		TotalPaid:       s.TotalPaid,
		TotalOwnExpense: s.TotalOwnExpense,
		TotalYouOwe:     s.TotalYouOwe,
		TotalYouGetBack: s.TotalYouGetBack,
		Balances:        make([]Balance, 0, len(s.Balances)),
	}
	for _, b := range s.Balances {
		snap.Balances = append(snap.Balances, *b)
	}
	sort.Slice(snap.Balances, func(i, j int) bool {
		return snap.Balances[i].CounterpartyID < snap.Balances[j].CounterpartyID
	})
	return snap
}

// With returns the Balance against counterpartyID, or a zero Balance.
func (s SheetSnapshot) With(counterpartyID string) Balance {
	for _, b := range s.Balances {
		if b.CounterpartyID == counterpartyID {
			return b
		}
	}
	return Balance{CounterpartyID: counterpartyID}
}
