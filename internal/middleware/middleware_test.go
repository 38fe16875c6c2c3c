package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitbook/internal/metrics"
	"github.com/mmynk/splitbook/pkg/api"
	"github.com/mmynk/splitbook/pkg/api/apiconnect"
)

// stubHandler fails CreateUser for empty names and succeeds otherwise.
type stubHandler struct {
	apiconnect.UnimplementedLedgerServiceHandler
}

func (stubHandler) CreateUser(_ context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("empty name"))
	}
	return connect.NewResponse(&api.CreateUserResponse{User: &api.User{Id: "u1", Name: req.Msg.Name}}), nil
}

func TestInterceptors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	path, handler := apiconnect.NewLedgerServiceHandler(stubHandler{},
		connect.WithInterceptors(MetricsInterceptor(m), LoggingInterceptor()),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	resp, err := client.CreateUser(ctx, connect.NewRequest(&api.CreateUserRequest{Name: "Alice"}))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if resp.Msg.User.Name != "Alice" {
		t.Errorf("expected Alice, got %s", resp.Msg.User.Name)
	}

	_, err = client.CreateUser(ctx, connect.NewRequest(&api.CreateUserRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}

	_, err = client.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Errorf("expected Unimplemented, got %v", err)
	}

	// one series per (procedure, code) pair
	if n := testutil.CollectAndCount(m.RPCDuration); n != 3 {
		t.Errorf("expected 3 latency series, got %d", n)
	}
}
