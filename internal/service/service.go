package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbook/internal/calculator"
	"github.com/mmynk/splitbook/internal/display"
	"github.com/mmynk/splitbook/internal/ledger"
	"github.com/mmynk/splitbook/internal/models"
	"github.com/mmynk/splitbook/pkg/api"
	"github.com/mmynk/splitbook/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	ledger    *ledger.Ledger
	formatter *display.Formatter
}

// NewLedgerService creates a new LedgerService backed by l. Balance sheets are
// rendered with f.
func NewLedgerService(l *ledger.Ledger, f *display.Formatter) *LedgerService {
	return &LedgerService{ledger: l, formatter: f}
}

// toConnectError maps ledger and validation errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case calculator.IsValidationError(err), errors.Is(err, ledger.ErrEmptyName):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrUserNotFound), errors.Is(err, ledger.ErrGroupNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrDuplicateUser):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// CreateUser registers a new user.
func (s *LedgerService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	slog.Info("CreateUser request received", "name", req.Msg.Name)

	user, err := s.ledger.CreateUser(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("CreateUser failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(*user)}), nil
}

// ListUsers returns every user in creation order.
func (s *LedgerService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users := s.ledger.Users()
	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}

	slog.Debug("ListUsers successful", "count", len(out))
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// nameOf resolves a user ID to a display name, or "" when unknown.
func (s *LedgerService) nameOf(id string) string {
	u, err := s.ledger.User(id)
	if err != nil {
		return ""
	}
	return u.Name
}

func toAPIUser(u models.User) *api.User {
	return &api.User{Id: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toAPIGroup(g models.Group) *api.Group {
	return &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		MemberIds: g.Members,
		CreatedAt: g.CreatedAt,
	}
}
