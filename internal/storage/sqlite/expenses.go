package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitbook/internal/models"
)

// AppendExpense persists an expense and its splits in one transaction.
func (j *SQLiteJournal) AppendExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID interface{} = nil
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, payer_id, kind, group_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount, expense.PayerID,
		expense.Kind.String(), groupID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, position, user_id, amount, percent) VALUES (?, ?, ?, ?, ?)",
			expense.ID, i, split.UserID, split.Amount, split.Percent,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Expenses returns every expense in append order with its splits.
func (j *SQLiteJournal) Expenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, description, amount, payer_id, kind, group_id, created_at
		 FROM expenses ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var (
			e       models.Expense
			kind    string
			groupID sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PayerID, &kind, &groupID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Kind, err = models.ParseSplitKind(kind)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		if groupID.Valid {
			e.GroupID = groupID.String
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splitRows, err := j.db.QueryContext(ctx,
		"SELECT expense_id, user_id, amount, percent FROM expense_splits ORDER BY expense_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var (
			expenseID string
			s         models.Split
		)
		if err := splitRows.Scan(&expenseID, &s.UserID, &s.Amount, &s.Percent); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, s)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return expenses, nil
}
