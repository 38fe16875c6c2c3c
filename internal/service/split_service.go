package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbook/internal/ledger"
	"github.com/mmynk/splitbook/internal/models"
	"github.com/mmynk/splitbook/pkg/api"
)

// CreateExpense validates and applies a new expense.
func (s *LedgerService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"payer_id", req.Msg.PayerId,
		"amount", req.Msg.Amount,
		"split_type", req.Msg.SplitType,
		"splits_count", len(req.Msg.Splits),
	)

	kind, err := models.ParseSplitKind(req.Msg.SplitType)
	if err != nil {
		slog.Error("CreateExpense split type rejected", "error", err)
		return nil, toConnectError(err)
	}

	splits := make([]models.Split, 0, len(req.Msg.Splits))
	for i, sp := range req.Msg.Splits {
		if sp == nil {
			continue
		}
		slog.Debug("Processing split",
			"index", i+1,
			"user_id", sp.UserId,
			"amount", sp.Amount,
			"percent", sp.Percent,
		)
		splits = append(splits, models.Split{
			UserID:  sp.UserId,
			Amount:  sp.Amount,
			Percent: sp.Percent,
		})
	}

	expense, err := s.ledger.CreateExpense(ctx, ledger.ExpenseInput{
		Description: strings.TrimSpace(req.Msg.Description),
		Amount:      req.Msg.Amount,
		PayerID:     req.Msg.PayerId,
		Kind:        kind,
		Splits:      splits,
		GroupID:     req.Msg.GroupId,
	})
	if err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(*expense)}), nil
}

// ListExpenses returns applied expenses, optionally only those involving one user.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID := req.Msg.UserId
	if userID != "" {
		if _, err := s.ledger.User(userID); err != nil {
			return nil, toConnectError(err)
		}
	}

	var out []*api.Expense
	for _, e := range s.ledger.Expenses() {
		if userID != "" && !involves(e, userID) {
			continue
		}
		out = append(out, toAPIExpense(e))
	}

	slog.Debug("ListExpenses successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// GetBalanceSheet returns a snapshot of the user's balance sheet, both as
// data and rendered for display.
func (s *LedgerService) GetBalanceSheet(ctx context.Context, req *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error) {
	snap, err := s.ledger.Snapshot(req.Msg.UserId)
	if err != nil {
		slog.Error("GetBalanceSheet failed", "user_id", req.Msg.UserId, "error", err)
		return nil, toConnectError(err)
	}

	sheet := &api.BalanceSheet{
		UserId:          snap.UserID,
		TotalPaid:       snap.TotalPaid,
		TotalOwnExpense: snap.TotalOwnExpense,
		TotalYouOwe:     snap.TotalYouOwe,
		TotalYouGetBack: snap.TotalYouGetBack,
		Balances:        make([]api.Balance, len(snap.Balances)),
	}
	for i, b := range snap.Balances {
		sheet.Balances[i] = api.Balance{
			CounterpartyId:   b.CounterpartyID,
			CounterpartyName: s.nameOf(b.CounterpartyID),
			OwedByMe:         b.OwedByMe,
			OwedToMe:         b.OwedToMe,
			Net:              b.Net(),
		}
	}

	var text strings.Builder
	if err := s.formatter.WriteSheet(&text, snap, s.nameOf); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetBalanceSheetResponse{Sheet: sheet, Text: text.String()}), nil
}

// involves reports whether userID paid for or shares the expense.
func involves(e models.Expense, userID string) bool {
	if e.PayerID == userID {
		return true
	}
	for _, s := range e.Splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

func toAPIExpense(e models.Expense) *api.Expense {
	splits := make([]api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.Split{UserId: s.UserID, Amount: s.Amount, Percent: s.Percent}
	}
	return &api.Expense{
		Id:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PayerId:     e.PayerID,
		SplitType:   e.Kind.String(),
		Splits:      splits,
		GroupId:     e.GroupID,
		CreatedAt:   e.CreatedAt,
	}
}
