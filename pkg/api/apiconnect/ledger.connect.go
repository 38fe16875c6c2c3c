// Package apiconnect wires the splitbook.v1.LedgerService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbook/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitbook.v1.LedgerService"

// Procedure paths, used as HTTP routes and as connect.Spec.Procedure.
const (
	LedgerServiceCreateUserProcedure      = "/splitbook.v1.LedgerService/CreateUser"
	LedgerServiceListUsersProcedure       = "/splitbook.v1.LedgerService/ListUsers"
	LedgerServiceCreateGroupProcedure     = "/splitbook.v1.LedgerService/CreateGroup"
	LedgerServiceGetGroupProcedure        = "/splitbook.v1.LedgerService/GetGroup"
	LedgerServiceAddGroupMembersProcedure = "/splitbook.v1.LedgerService/AddGroupMembers"
	LedgerServiceCreateExpenseProcedure   = "/splitbook.v1.LedgerService/CreateExpense"
	LedgerServiceListExpensesProcedure    = "/splitbook.v1.LedgerService/ListExpenses"
	LedgerServiceGetBalanceSheetProcedure = "/splitbook.v1.LedgerService/GetBalanceSheet"
)

// LedgerServiceClient is a client for the splitbook.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalanceSheet(context.Context, *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitbook.v1.LedgerService
// service. The JSON codec is always used; opts may add interceptors.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(opts, connect.WithCodec(api.Codec{}))
	return &ledgerServiceClient{
		createUser: connect.NewClient[api.CreateUserRequest, api.CreateUserResponse](
			httpClient, baseURL+LedgerServiceCreateUserProcedure, opts...),
		listUsers: connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](
			httpClient, baseURL+LedgerServiceListUsersProcedure, opts...),
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient, baseURL+LedgerServiceCreateGroupProcedure, opts...),
		getGroup: connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](
			httpClient, baseURL+LedgerServiceGetGroupProcedure, opts...),
		addGroupMembers: connect.NewClient[api.AddGroupMembersRequest, api.AddGroupMembersResponse](
			httpClient, baseURL+LedgerServiceAddGroupMembersProcedure, opts...),
		createExpense: connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](
			httpClient, baseURL+LedgerServiceCreateExpenseProcedure, opts...),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		getBalanceSheet: connect.NewClient[api.GetBalanceSheetRequest, api.GetBalanceSheetResponse](
			httpClient, baseURL+LedgerServiceGetBalanceSheetProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createUser      *connect.Client[api.CreateUserRequest, api.CreateUserResponse]
	listUsers       *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	createGroup     *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup        *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	addGroupMembers *connect.Client[api.AddGroupMembersRequest, api.AddGroupMembersResponse]
	createExpense   *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses    *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getBalanceSheet *connect.Client[api.GetBalanceSheetRequest, api.GetBalanceSheetResponse]
}

func (c *ledgerServiceClient) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddGroupMembers(ctx context.Context, req *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error) {
	return c.addGroupMembers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalanceSheet(ctx context.Context, req *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error) {
	return c.getBalanceSheet.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the splitbook.v1.LedgerService server.
type LedgerServiceHandler interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalanceSheet(context.Context, *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(opts, connect.WithCodec(api.Codec{}))
	createUser := connect.NewUnaryHandler(LedgerServiceCreateUserProcedure, svc.CreateUser, opts...)
	listUsers := connect.NewUnaryHandler(LedgerServiceListUsersProcedure, svc.ListUsers, opts...)
	createGroup := connect.NewUnaryHandler(LedgerServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroup := connect.NewUnaryHandler(LedgerServiceGetGroupProcedure, svc.GetGroup, opts...)
	addGroupMembers := connect.NewUnaryHandler(LedgerServiceAddGroupMembersProcedure, svc.AddGroupMembers, opts...)
	createExpense := connect.NewUnaryHandler(LedgerServiceCreateExpenseProcedure, svc.CreateExpense, opts...)
	listExpenses := connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...)
	getBalanceSheet := connect.NewUnaryHandler(LedgerServiceGetBalanceSheetProcedure, svc.GetBalanceSheet, opts...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateUserProcedure:
			createUser.ServeHTTP(w, r)
		case LedgerServiceListUsersProcedure:
			listUsers.ServeHTTP(w, r)
		case LedgerServiceCreateGroupProcedure:
			createGroup.ServeHTTP(w, r)
		case LedgerServiceGetGroupProcedure:
			getGroup.ServeHTTP(w, r)
		case LedgerServiceAddGroupMembersProcedure:
			addGroupMembers.ServeHTTP(w, r)
		case LedgerServiceCreateExpenseProcedure:
			createExpense.ServeHTTP(w, r)
		case LedgerServiceListExpensesProcedure:
			listExpenses.ServeHTTP(w, r)
		case LedgerServiceGetBalanceSheetProcedure:
			getBalanceSheet.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return nil, unimplemented(LedgerServiceCreateUserProcedure)
}

func (UnimplementedLedgerServiceHandler) ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return nil, unimplemented(LedgerServiceListUsersProcedure)
}

func (UnimplementedLedgerServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, unimplemented(LedgerServiceCreateGroupProcedure)
}

func (UnimplementedLedgerServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, unimplemented(LedgerServiceGetGroupProcedure)
}

func (UnimplementedLedgerServiceHandler) AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error) {
	return nil, unimplemented(LedgerServiceAddGroupMembersProcedure)
}

func (UnimplementedLedgerServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, unimplemented(LedgerServiceCreateExpenseProcedure)
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, unimplemented(LedgerServiceListExpensesProcedure)
}

func (UnimplementedLedgerServiceHandler) GetBalanceSheet(context.Context, *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error) {
	return nil, unimplemented(LedgerServiceGetBalanceSheetProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}
