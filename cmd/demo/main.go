// Command demo records a few expenses in an in-memory ledger and prints
// every balance sheet.
package main

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"github.com/mmynk/splitbook/internal/display"
	"github.com/mmynk/splitbook/internal/ledger"
	"github.com/mmynk/splitbook/internal/models"
	"github.com/mmynk/splitbook/pkg/logging"
)

func main() {
	logging.Setup()
	ctx := context.Background()
	l := ledger.New()

	for _, u := range []models.User{
		{ID: "u1", Name: "Alice"},
		{ID: "u2", Name: "Bob"},
		{ID: "u3", Name: "Charlie"},
		{ID: "u4", Name: "Diana"},
	} {
		if _, err := l.AddUser(ctx, u); err != nil {
			fail(err)
		}
	}

	expenses := []ledger.ExpenseInput{
		{
			Description: "Electricity bill",
			Amount:      1000,
			PayerID:     "u1",
			Kind:        models.SplitEqual,
			Splits: []models.Split{
				{UserID: "u1", Amount: 250},
				{UserID: "u2", Amount: 250},
				{UserID: "u3", Amount: 250},
				{UserID: "u4", Amount: 250},
			},
		},
		{
			Description: "Flipkart sale",
			Amount:      1250,
			PayerID:     "u1",
			Kind:        models.SplitUnequal,
			Splits: []models.Split{
				{UserID: "u2", Amount: 370},
				{UserID: "u3", Amount: 880},
			},
		},
		{
			Description: "Groceries",
			Amount:      1200,
			PayerID:     "u4",
			Kind:        models.SplitPercentage,
			Splits: []models.Split{
				{UserID: "u1", Percent: 40},
				{UserID: "u2", Percent: 20},
				{UserID: "u3", Percent: 20},
				{UserID: "u4", Percent: 20},
			},
		},
	}
	for _, in := range expenses {
		if _, err := l.CreateExpense(ctx, in); err != nil {
			fail(err)
		}
	}

	// An equal split with uneven shares is rejected and changes nothing.
	if _, err := l.CreateExpense(ctx, ledger.ExpenseInput{
		Description: "Taxi",
		Amount:      90,
		PayerID:     "u2",
		Kind:        models.SplitEqual,
		Splits: []models.Split{
			{UserID: "u1", Amount: 30},
			{UserID: "u2", Amount: 30},
			{UserID: "u3", Amount: 20},
		},
	}); err != nil {
		slog.Info("Expense rejected as expected", "error", err)
	}

	f := display.NewFormatter(language.English)
	nameOf := func(id string) string {
		u, err := l.User(id)
		if err != nil {
			return ""
		}
		return u.Name
	}
	for _, u := range l.Users() {
		snap, err := l.Snapshot(u.ID)
		if err != nil {
			fail(err)
		}
		if err := f.WriteSheet(os.Stdout, snap, nameOf); err != nil {
			fail(err)
		}
		os.Stdout.WriteString("\n")
	}
}

func fail(err error) {
	slog.Error("Demo failed", "error", err)
	os.Exit(1)
}
