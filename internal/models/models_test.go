package models

import (
	"errors"
	"testing"
)

func TestParseSplitKind(t *testing.T) {
	tests := []struct {
		in      string
		want    SplitKind
		wantErr bool
	}{
		{"EQUAL", SplitEqual, false},
		{"unequal", SplitUnequal, false},
		{" Percentage ", SplitPercentage, false},
		{"EXACT", SplitUnspecified, true},
		{"", SplitUnspecified, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSplitKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSplitKind) {
					t.Fatalf("expected ErrUnknownSplitKind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if back, err := ParseSplitKind(got.String()); err != nil || back != got {
				t.Errorf("String() does not round-trip for %v", got)
			}
		})
	}

	if s := SplitUnspecified.String(); s != "SplitKind(0)" {
		t.Errorf("unspecified kind: expected SplitKind(0), got %s", s)
	}
}

func TestBalanceSheet_Snapshot(t *testing.T) {
	sheet := NewBalanceSheet("u1")
	sheet.BalanceWith("u3").OwedToMe = 30
	sheet.BalanceWith("u2").OwedByMe = 20
	sheet.BalanceWith("u2").OwedToMe = 5
	sheet.TotalYouOwe = 20
	sheet.TotalYouGetBack = 35

	snap := sheet.Snapshot()
	if len(snap.Balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(snap.Balances))
	}
	if snap.Balances[0].CounterpartyID != "u2" || snap.Balances[1].CounterpartyID != "u3" {
		t.Errorf("balances not sorted: %+v", snap.Balances)
	}
	if net := snap.With("u2").Net(); net != -15 {
		t.Errorf("net with u2: expected -15, got %f", net)
	}
	if b := snap.With("u9"); b.OwedByMe != 0 || b.OwedToMe != 0 {
		t.Errorf("unknown counterparty: expected zero balance, got %+v", b)
	}

	// later writes do not leak into the snapshot
	sheet.BalanceWith("u2").OwedByMe = 100
	if snap.With("u2").OwedByMe != 20 {
		t.Error("snapshot shares state with the sheet")
	}
}
