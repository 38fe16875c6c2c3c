package service

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/text/language"

	"github.com/mmynk/splitbook/internal/display"
	"github.com/mmynk/splitbook/internal/ledger"
	"github.com/mmynk/splitbook/internal/metrics"
	"github.com/mmynk/splitbook/internal/middleware"
	"github.com/mmynk/splitbook/internal/storage/sqlite"
	"github.com/mmynk/splitbook/pkg/api"
	"github.com/mmynk/splitbook/pkg/api/apiconnect"
)

// setupTestServer creates a test server with a journal in a temp directory
func setupTestServer(t *testing.T) (apiconnect.LedgerServiceClient, *metrics.Metrics, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitbook-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	journal, err := sqlite.New(filepath.Join(tempDir, "journal.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create journal: %v", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	l, err := ledger.Open(context.Background(), journal, ledger.WithMetrics(m))
	if err != nil {
		journal.Close()
		os.RemoveAll(tempDir)
		t.Fatalf("failed to open ledger: %v", err)
	}

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(),
	)
	svc := NewLedgerService(l, display.NewFormatter(language.English))
	path, handler := apiconnect.NewLedgerServiceHandler(svc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		journal.Close()
		os.RemoveAll(tempDir)
	}

	return client, m, cleanup
}

// createUsers registers users by name and returns their IDs in order.
func createUsers(t *testing.T, client apiconnect.LedgerServiceClient, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		resp, err := client.CreateUser(context.Background(), connect.NewRequest(&api.CreateUserRequest{Name: name}))
		if err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
		ids[i] = resp.Msg.User.Id
	}
	return ids
}

func getSheet(t *testing.T, client apiconnect.LedgerServiceClient, userID string) *api.GetBalanceSheetResponse {
	t.Helper()
	resp, err := client.GetBalanceSheet(context.Background(), connect.NewRequest(&api.GetBalanceSheetRequest{UserId: userID}))
	if err != nil {
		t.Fatalf("GetBalanceSheet failed: %v", err)
	}
	return resp.Msg
}

func findBalance(sheet *api.BalanceSheet, counterpartyID string) api.Balance {
	for _, b := range sheet.Balances {
		if b.CounterpartyId == counterpartyID {
			return b
		}
	}
	return api.Balance{CounterpartyId: counterpartyID}
}

func TestCreateExpense_EqualSplit(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	ids := createUsers(t, client, "Alice", "Bob", "Charlie")

	resp, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      900,
		PayerId:     ids[0],
		SplitType:   "EQUAL",
		Splits: []*api.Split{
			{UserId: ids[0], Amount: 300},
			{UserId: ids[1], Amount: 300},
			{UserId: ids[2], Amount: 300},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if resp.Msg.Expense.Id == "" {
		t.Error("expected non-empty expense ID")
	}
	if resp.Msg.Expense.SplitType != "EQUAL" {
		t.Errorf("split type: expected EQUAL, got %s", resp.Msg.Expense.SplitType)
	}

	alice := getSheet(t, client, ids[0])
	if alice.Sheet.TotalPaid != 900 {
		t.Errorf("Alice total paid: expected 900, got %f", alice.Sheet.TotalPaid)
	}
	if alice.Sheet.TotalYouGetBack != 600 {
		t.Errorf("Alice get back: expected 600, got %f", alice.Sheet.TotalYouGetBack)
	}
	if alice.Sheet.TotalOwnExpense != 300 {
		t.Errorf("Alice own expense: expected 300, got %f", alice.Sheet.TotalOwnExpense)
	}
	if !strings.Contains(alice.Text, "Bob: you owe 0.00, owes you 300.00 (net +300.00)") {
		t.Errorf("unexpected sheet text:\n%s", alice.Text)
	}

	bob := getSheet(t, client, ids[1])
	if bob.Sheet.TotalYouOwe != 300 {
		t.Errorf("Bob owes: expected 300, got %f", bob.Sheet.TotalYouOwe)
	}
	b := findBalance(bob.Sheet, ids[0])
	if b.OwedByMe != 300 || b.CounterpartyName != "Alice" || b.Net != -300 {
		t.Errorf("Bob balance with Alice: %+v", b)
	}
}

func TestCreateExpense_PercentageSplit(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	ids := createUsers(t, client, "Alice", "Bob")

	resp, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Groceries",
		Amount:      200,
		PayerId:     ids[1],
		SplitType:   "percentage",
		Splits: []*api.Split{
			{UserId: ids[0], Percent: 75},
			{UserId: ids[1], Percent: 25},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if got := resp.Msg.Expense.Splits[0].Amount; math.Abs(got-150) > 1e-9 {
		t.Errorf("derived amount: expected 150, got %f", got)
	}

	alice := getSheet(t, client, ids[0])
	if b := findBalance(alice.Sheet, ids[1]); math.Abs(b.OwedByMe-150) > 1e-9 {
		t.Errorf("Alice owes Bob: expected 150, got %f", b.OwedByMe)
	}
}

func TestCreateExpense_GroupEqualSplit(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	ids := createUsers(t, client, "Alice", "Bob", "Charlie", "Diana")
	ctx := context.Background()

	groupResp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:      "Flat",
		MemberIds: ids[:3],
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := groupResp.Msg.Group.Id

	addResp, err := client.AddGroupMembers(ctx, connect.NewRequest(&api.AddGroupMembersRequest{
		GroupId:   groupID,
		MemberIds: []string{ids[3], ids[0]},
	}))
	if err != nil {
		t.Fatalf("AddGroupMembers failed: %v", err)
	}
	if len(addResp.Msg.Group.MemberIds) != 4 {
		t.Fatalf("members: expected 4, got %v", addResp.Msg.Group.MemberIds)
	}

	_, err = client.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Electricity bill",
		Amount:      1000,
		PayerId:     ids[0],
		SplitType:   "EQUAL",
		GroupId:     groupID,
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	alice := getSheet(t, client, ids[0])
	if alice.Sheet.TotalYouGetBack != 750 {
		t.Errorf("Alice get back: expected 750, got %f", alice.Sheet.TotalYouGetBack)
	}

	getResp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: groupID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if getResp.Msg.Group.Name != "Flat" {
		t.Errorf("group name: expected Flat, got %s", getResp.Msg.Group.Name)
	}
}

func TestCreateExpense_Rejections(t *testing.T) {
	client, m, cleanup := setupTestServer(t)
	defer cleanup()

	ids := createUsers(t, client, "Alice", "Bob", "Charlie")

	tests := []struct {
		name     string
		req      *api.CreateExpenseRequest
		wantCode connect.Code
	}{
		{
			name: "equal split with one share off",
			req: &api.CreateExpenseRequest{Amount: 900, PayerId: ids[0], SplitType: "EQUAL",
				Splits: []*api.Split{{UserId: ids[0], Amount: 300}, {UserId: ids[1], Amount: 300}, {UserId: ids[2], Amount: 299}}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "unequal split not summing to total",
			req: &api.CreateExpenseRequest{Amount: 500, PayerId: ids[1], SplitType: "UNEQUAL",
				Splits: []*api.Split{{UserId: ids[0], Amount: 400}, {UserId: ids[1], Amount: 50}}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "unknown split type",
			req:      &api.CreateExpenseRequest{Amount: 10, PayerId: ids[0], SplitType: "EXACT"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "no participants",
			req:      &api.CreateExpenseRequest{Amount: 10, PayerId: ids[0], SplitType: "UNEQUAL"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "unknown payer",
			req: &api.CreateExpenseRequest{Amount: 10, PayerId: "ghost", SplitType: "UNEQUAL",
				Splits: []*api.Split{{UserId: ids[0], Amount: 10}}},
			wantCode: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateExpense(context.Background(), connect.NewRequest(tt.req))
			if err == nil {
				t.Fatal("expected error")
			}
			if code := connect.CodeOf(err); code != tt.wantCode {
				t.Errorf("code: expected %v, got %v (%v)", tt.wantCode, code, err)
			}
		})
	}

	for _, id := range ids {
		sheet := getSheet(t, client, id).Sheet
		if sheet.TotalPaid != 0 || sheet.TotalYouOwe != 0 || len(sheet.Balances) != 0 {
			t.Errorf("sheet of %s mutated by rejected expense: %+v", id, sheet)
		}
	}

	listResp, err := client.ListExpenses(context.Background(), connect.NewRequest(&api.ListExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(listResp.Msg.Expenses) != 0 {
		t.Errorf("expenses: expected 0, got %d", len(listResp.Msg.Expenses))
	}

	if got := testutil.ToFloat64(m.ExpensesRejected.WithLabelValues("EQUAL", "unequal_share")); got != 1 {
		t.Errorf("rejected equal metric: expected 1, got %v", got)
	}
	if n := testutil.CollectAndCount(m.RPCDuration); n == 0 {
		t.Error("expected RPC latency series to be recorded")
	}
}

func TestListExpenses_FilterByUser(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	ids := createUsers(t, client, "Alice", "Bob", "Charlie")
	ctx := context.Background()

	for _, req := range []*api.CreateExpenseRequest{
		{Description: "Taxi", Amount: 40, PayerId: ids[0], SplitType: "UNEQUAL",
			Splits: []*api.Split{{UserId: ids[0], Amount: 20}, {UserId: ids[1], Amount: 20}}},
		{Description: "Coffee", Amount: 10, PayerId: ids[2], SplitType: "UNEQUAL",
			Splits: []*api.Split{{UserId: ids[2], Amount: 10}}},
	} {
		if _, err := client.CreateExpense(ctx, connect.NewRequest(req)); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	resp, err := client.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{UserId: ids[1]}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 1 || resp.Msg.Expenses[0].Description != "Taxi" {
		t.Errorf("expected only Taxi, got %+v", resp.Msg.Expenses)
	}

	_, err = client.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{UserId: "ghost"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound for unknown user, got %v", err)
	}
}

func TestUsersAndGroups_Errors(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	_, err := client.CreateUser(ctx, connect.NewRequest(&api.CreateUserRequest{Name: ""}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("empty name: expected InvalidArgument, got %v", err)
	}

	_, err = client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: "missing"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("missing group: expected NotFound, got %v", err)
	}

	_, err = client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Flat", MemberIds: []string{"ghost"}}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("unknown member: expected NotFound, got %v", err)
	}

	_, err = client.GetBalanceSheet(ctx, connect.NewRequest(&api.GetBalanceSheetRequest{UserId: "ghost"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("unknown user sheet: expected NotFound, got %v", err)
	}

	createUsers(t, client, "Alice", "Bob")
	resp, err := client.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Msg.Users) != 2 || resp.Msg.Users[0].Name != "Alice" {
		t.Errorf("unexpected users: %+v", resp.Msg.Users)
	}
}
