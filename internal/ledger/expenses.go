package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/splitbook/internal/calculator"
	"github.com/mmynk/splitbook/internal/models"
)

// ExpenseInput is the raw request to record an expense.
type ExpenseInput struct {
	Description string
	Amount      float64
	PayerID     string
	Kind        models.SplitKind

	// Splits lists every participant. For percentage expenses each split
	// carries Percent instead of Amount.
	Splits []models.Split

	// GroupID optionally tags the expense with a group. An equal expense
	// with a group and no splits is shared by every group member.
	GroupID string
}

// CreateExpense validates in and, on success, records the expense and applies
// it to the payer's and every participant's balance sheet.
//
// The order is fixed: resolve the split kind, validate the splits, check the
// payer and participants exist, journal the expense, apply it. Any error is
// returned before a sheet is touched.
func (l *Ledger) CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expense, err := l.prepareExpenseLocked(in)
	if err != nil {
		l.metrics.ExpenseRejected(in.Kind.String(), rejectReason(err))
		slog.Warn("Expense rejected",
			"kind", in.Kind.String(),
			"payer_id", in.PayerID,
			"amount", in.Amount,
			"error", err,
		)
		return nil, err
	}

	if l.journal != nil {
		if err := l.journal.AppendExpense(ctx, expense); err != nil {
			slog.Error("Expense journal append failed", "expense_id", expense.ID, "error", err)
			return nil, err
		}
	}

	calculator.ApplyExpense(l.sheetLocked, expense.PayerID, expense.Splits, expense.Amount)
	l.expenses = append(l.expenses, *expense)
	l.metrics.ExpenseAccepted(expense.Kind.String(), expense.Amount)

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"kind", expense.Kind.String(),
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"participants", len(expense.Splits),
	)
	return copyExpense(expense), nil
}

// prepareExpenseLocked builds the immutable expense without mutating state.
func (l *Ledger) prepareExpenseLocked(in ExpenseInput) (*models.Expense, error) {
	validate, err := calculator.Resolve(in.Kind)
	if err != nil {
		return nil, err
	}

	splits := in.Splits
	if in.GroupID != "" {
		group, ok := l.groups[in.GroupID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, in.GroupID)
		}
		if len(splits) == 0 && in.Kind == models.SplitEqual {
			splits = calculator.EqualSplits(in.Amount, group.Members)
		}
	}

	splits, err = validate(splits, in.Amount)
	if err != nil {
		return nil, err
	}
	if err := l.checkUsersLocked(in.PayerID, splits); err != nil {
		return nil, err
	}

	return &models.Expense{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		PayerID:     in.PayerID,
		Kind:        in.Kind,
		Splits:      splits,
		GroupID:     in.GroupID,
		CreatedAt:   l.now().Unix(),
	}, nil
}

// Expenses returns every applied expense in creation order.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Expense, len(l.expenses))
	for i := range l.expenses {
		out[i] = *copyExpense(&l.expenses[i])
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrGroupNotFound):
		return "group_not_found"
	default:
		return calculator.Reason(err)
	}
}

func copyExpense(e *models.Expense) *models.Expense {
	c := *e
	c.Splits = append([]models.Split(nil), e.Splits...)
	return &c
}
