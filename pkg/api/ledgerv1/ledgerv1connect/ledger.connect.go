package ledgerv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitledger.v1.LedgerService"

const (
	LedgerServiceCreateExpenseProcedure      = "/splitledger.v1.LedgerService/CreateExpense"
	LedgerServiceGetExpenseProcedure         = "/splitledger.v1.LedgerService/GetExpense"
	LedgerServiceListExpensesProcedure       = "/splitledger.v1.LedgerService/ListExpenses"
	LedgerServiceDeleteExpenseProcedure      = "/splitledger.v1.LedgerService/DeleteExpense"
	LedgerServiceSettleSplitProcedure        = "/splitledger.v1.LedgerService/SettleSplit"
	LedgerServiceGetGroupBalancesProcedure   = "/splitledger.v1.LedgerService/GetGroupBalances"
	LedgerServiceGetUserBalancesProcedure    = "/splitledger.v1.LedgerService/GetUserBalances"
	LedgerServiceGetSimplifiedDebtsProcedure = "/splitledger.v1.LedgerService/GetSimplifiedDebts"
	LedgerServiceCreateSettlementProcedure   = "/splitledger.v1.LedgerService/CreateSettlement"
	LedgerServiceConfirmSettlementProcedure  = "/splitledger.v1.LedgerService/ConfirmSettlement"
	LedgerServiceListSettlementsProcedure    = "/splitledger.v1.LedgerService/ListSettlements"
)

// LedgerServiceClient is a client for the splitledger.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateExpense(context.Context, *connect.Request[ledgerv1.CreateExpenseRequest]) (*connect.Response[ledgerv1.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[ledgerv1.GetExpenseRequest]) (*connect.Response[ledgerv1.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[ledgerv1.DeleteExpenseRequest]) (*connect.Response[ledgerv1.DeleteExpenseResponse], error)
	SettleSplit(context.Context, *connect.Request[ledgerv1.SettleSplitRequest]) (*connect.Response[ledgerv1.SettleSplitResponse], error)
	GetGroupBalances(context.Context, *connect.Request[ledgerv1.GetGroupBalancesRequest]) (*connect.Response[ledgerv1.GetGroupBalancesResponse], error)
	GetUserBalances(context.Context, *connect.Request[ledgerv1.GetUserBalancesRequest]) (*connect.Response[ledgerv1.GetUserBalancesResponse], error)
	GetSimplifiedDebts(context.Context, *connect.Request[ledgerv1.GetSimplifiedDebtsRequest]) (*connect.Response[ledgerv1.GetSimplifiedDebtsResponse], error)
	CreateSettlement(context.Context, *connect.Request[ledgerv1.CreateSettlementRequest]) (*connect.Response[ledgerv1.CreateSettlementResponse], error)
	ConfirmSettlement(context.Context, *connect.Request[ledgerv1.ConfirmSettlementRequest]) (*connect.Response[ledgerv1.ConfirmSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[ledgerv1.ListSettlementsRequest]) (*connect.Response[ledgerv1.ListSettlementsResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitledger.v1.LedgerService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(codecOption))
	return &ledgerServiceClient{
		createExpense:      connect.NewClient[ledgerv1.CreateExpenseRequest, ledgerv1.CreateExpenseResponse](httpClient, baseURL+LedgerServiceCreateExpenseProcedure, opts...),
		getExpense:         connect.NewClient[ledgerv1.GetExpenseRequest, ledgerv1.GetExpenseResponse](httpClient, baseURL+LedgerServiceGetExpenseProcedure, opts...),
		listExpenses:       connect.NewClient[ledgerv1.ListExpensesRequest, ledgerv1.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		deleteExpense:      connect.NewClient[ledgerv1.DeleteExpenseRequest, ledgerv1.DeleteExpenseResponse](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		settleSplit:        connect.NewClient[ledgerv1.SettleSplitRequest, ledgerv1.SettleSplitResponse](httpClient, baseURL+LedgerServiceSettleSplitProcedure, opts...),
		getGroupBalances:   connect.NewClient[ledgerv1.GetGroupBalancesRequest, ledgerv1.GetGroupBalancesResponse](httpClient, baseURL+LedgerServiceGetGroupBalancesProcedure, opts...),
		getUserBalances:    connect.NewClient[ledgerv1.GetUserBalancesRequest, ledgerv1.GetUserBalancesResponse](httpClient, baseURL+LedgerServiceGetUserBalancesProcedure, opts...),
		getSimplifiedDebts: connect.NewClient[ledgerv1.GetSimplifiedDebtsRequest, ledgerv1.GetSimplifiedDebtsResponse](httpClient, baseURL+LedgerServiceGetSimplifiedDebtsProcedure, opts...),
		createSettlement:   connect.NewClient[ledgerv1.CreateSettlementRequest, ledgerv1.CreateSettlementResponse](httpClient, baseURL+LedgerServiceCreateSettlementProcedure, opts...),
		confirmSettlement:  connect.NewClient[ledgerv1.ConfirmSettlementRequest, ledgerv1.ConfirmSettlementResponse](httpClient, baseURL+LedgerServiceConfirmSettlementProcedure, opts...),
		listSettlements:    connect.NewClient[ledgerv1.ListSettlementsRequest, ledgerv1.ListSettlementsResponse](httpClient, baseURL+LedgerServiceListSettlementsProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createExpense      *connect.Client[ledgerv1.CreateExpenseRequest, ledgerv1.CreateExpenseResponse]
	getExpense         *connect.Client[ledgerv1.GetExpenseRequest, ledgerv1.GetExpenseResponse]
	listExpenses       *connect.Client[ledgerv1.ListExpensesRequest, ledgerv1.ListExpensesResponse]
	deleteExpense      *connect.Client[ledgerv1.DeleteExpenseRequest, ledgerv1.DeleteExpenseResponse]
	settleSplit        *connect.Client[ledgerv1.SettleSplitRequest, ledgerv1.SettleSplitResponse]
	getGroupBalances   *connect.Client[ledgerv1.GetGroupBalancesRequest, ledgerv1.GetGroupBalancesResponse]
	getUserBalances    *connect.Client[ledgerv1.GetUserBalancesRequest, ledgerv1.GetUserBalancesResponse]
	getSimplifiedDebts *connect.Client[ledgerv1.GetSimplifiedDebtsRequest, ledgerv1.GetSimplifiedDebtsResponse]
	createSettlement   *connect.Client[ledgerv1.CreateSettlementRequest, ledgerv1.CreateSettlementResponse]
	confirmSettlement  *connect.Client[ledgerv1.ConfirmSettlementRequest, ledgerv1.ConfirmSettlementResponse]
	listSettlements    *connect.Client[ledgerv1.ListSettlementsRequest, ledgerv1.ListSettlementsResponse]
}

func (c *ledgerServiceClient) CreateExpense(ctx context.Context, req *connect.Request[ledgerv1.CreateExpenseRequest]) (*connect.Response[ledgerv1.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetExpense(ctx context.Context, req *connect.Request[ledgerv1.GetExpenseRequest]) (*connect.Response[ledgerv1.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[ledgerv1.DeleteExpenseRequest]) (*connect.Response[ledgerv1.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SettleSplit(ctx context.Context, req *connect.Request[ledgerv1.SettleSplitRequest]) (*connect.Response[ledgerv1.SettleSplitResponse], error) {
	return c.settleSplit.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[ledgerv1.GetGroupBalancesRequest]) (*connect.Response[ledgerv1.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetUserBalances(ctx context.Context, req *connect.Request[ledgerv1.GetUserBalancesRequest]) (*connect.Response[ledgerv1.GetUserBalancesResponse], error) {
	return c.getUserBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSimplifiedDebts(ctx context.Context, req *connect.Request[ledgerv1.GetSimplifiedDebtsRequest]) (*connect.Response[ledgerv1.GetSimplifiedDebtsResponse], error) {
	return c.getSimplifiedDebts.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[ledgerv1.CreateSettlementRequest]) (*connect.Response[ledgerv1.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ConfirmSettlement(ctx context.Context, req *connect.Request[ledgerv1.ConfirmSettlementRequest]) (*connect.Response[ledgerv1.ConfirmSettlementResponse], error) {
	return c.confirmSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListSettlements(ctx context.Context, req *connect.Request[ledgerv1.ListSettlementsRequest]) (*connect.Response[ledgerv1.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the server side of splitledger.v1.LedgerService.
type LedgerServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[ledgerv1.CreateExpenseRequest]) (*connect.Response[ledgerv1.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[ledgerv1.GetExpenseRequest]) (*connect.Response[ledgerv1.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[ledgerv1.DeleteExpenseRequest]) (*connect.Response[ledgerv1.DeleteExpenseResponse], error)
	SettleSplit(context.Context, *connect.Request[ledgerv1.SettleSplitRequest]) (*connect.Response[ledgerv1.SettleSplitResponse], error)
	GetGroupBalances(context.Context, *connect.Request[ledgerv1.GetGroupBalancesRequest]) (*connect.Response[ledgerv1.GetGroupBalancesResponse], error)
	GetUserBalances(context.Context, *connect.Request[ledgerv1.GetUserBalancesRequest]) (*connect.Response[ledgerv1.GetUserBalancesResponse], error)
	GetSimplifiedDebts(context.Context, *connect.Request[ledgerv1.GetSimplifiedDebtsRequest]) (*connect.Response[ledgerv1.GetSimplifiedDebtsResponse], error)
	CreateSettlement(context.Context, *connect.Request[ledgerv1.CreateSettlementRequest]) (*connect.Response[ledgerv1.CreateSettlementResponse], error)
	ConfirmSettlement(context.Context, *connect.Request[ledgerv1.ConfirmSettlementRequest]) (*connect.Response[ledgerv1.ConfirmSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[ledgerv1.ListSettlementsRequest]) (*connect.Response[ledgerv1.ListSettlementsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(codecOption))
	return "/" + LedgerServiceName + "/", route(map[string]http.Handler{
		LedgerServiceCreateExpenseProcedure:      connect.NewUnaryHandler(LedgerServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		LedgerServiceGetExpenseProcedure:         connect.NewUnaryHandler(LedgerServiceGetExpenseProcedure, svc.GetExpense, opts...),
		LedgerServiceListExpensesProcedure:       connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceDeleteExpenseProcedure:      connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		LedgerServiceSettleSplitProcedure:        connect.NewUnaryHandler(LedgerServiceSettleSplitProcedure, svc.SettleSplit, opts...),
		LedgerServiceGetGroupBalancesProcedure:   connect.NewUnaryHandler(LedgerServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...),
		LedgerServiceGetUserBalancesProcedure:    connect.NewUnaryHandler(LedgerServiceGetUserBalancesProcedure, svc.GetUserBalances, opts...),
		LedgerServiceGetSimplifiedDebtsProcedure: connect.NewUnaryHandler(LedgerServiceGetSimplifiedDebtsProcedure, svc.GetSimplifiedDebts, opts...),
		LedgerServiceCreateSettlementProcedure:   connect.NewUnaryHandler(LedgerServiceCreateSettlementProcedure, svc.CreateSettlement, opts...),
		LedgerServiceConfirmSettlementProcedure:  connect.NewUnaryHandler(LedgerServiceConfirmSettlementProcedure, svc.ConfirmSettlement, opts...),
		LedgerServiceListSettlementsProcedure:    connect.NewUnaryHandler(LedgerServiceListSettlementsProcedure, svc.ListSettlements, opts...),
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateExpense(context.Context, *connect.Request[ledgerv1.CreateExpenseRequest]) (*connect.Response[ledgerv1.CreateExpenseResponse], error) {
	return nil, unimplemented(LedgerServiceCreateExpenseProcedure)
}

func (UnimplementedLedgerServiceHandler) GetExpense(context.Context, *connect.Request[ledgerv1.GetExpenseRequest]) (*connect.Response[ledgerv1.GetExpenseResponse], error) {
	return nil, unimplemented(LedgerServiceGetExpenseProcedure)
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	return nil, unimplemented(LedgerServiceListExpensesProcedure)
}

func (UnimplementedLedgerServiceHandler) DeleteExpense(context.Context, *connect.Request[ledgerv1.DeleteExpenseRequest]) (*connect.Response[ledgerv1.DeleteExpenseResponse], error) {
	return nil, unimplemented(LedgerServiceDeleteExpenseProcedure)
}

func (UnimplementedLedgerServiceHandler) SettleSplit(context.Context, *connect.Request[ledgerv1.SettleSplitRequest]) (*connect.Response[ledgerv1.SettleSplitResponse], error) {
	return nil, unimplemented(LedgerServiceSettleSplitProcedure)
}

func (UnimplementedLedgerServiceHandler) GetGroupBalances(context.Context, *connect.Request[ledgerv1.GetGroupBalancesRequest]) (*connect.Response[ledgerv1.GetGroupBalancesResponse], error) {
	return nil, unimplemented(LedgerServiceGetGroupBalancesProcedure)
}

func (UnimplementedLedgerServiceHandler) GetUserBalances(context.Context, *connect.Request[ledgerv1.GetUserBalancesRequest]) (*connect.Response[ledgerv1.GetUserBalancesResponse], error) {
	return nil, unimplemented(LedgerServiceGetUserBalancesProcedure)
}

func (UnimplementedLedgerServiceHandler) GetSimplifiedDebts(context.Context, *connect.Request[ledgerv1.GetSimplifiedDebtsRequest]) (*connect.Response[ledgerv1.GetSimplifiedDebtsResponse], error) {
	return nil, unimplemented(LedgerServiceGetSimplifiedDebtsProcedure)
}

func (UnimplementedLedgerServiceHandler) CreateSettlement(context.Context, *connect.Request[ledgerv1.CreateSettlementRequest]) (*connect.Response[ledgerv1.CreateSettlementResponse], error) {
	return nil, unimplemented(LedgerServiceCreateSettlementProcedure)
}

func (UnimplementedLedgerServiceHandler) ConfirmSettlement(context.Context, *connect.Request[ledgerv1.ConfirmSettlementRequest]) (*connect.Response[ledgerv1.ConfirmSettlementResponse], error) {
	return nil, unimplemented(LedgerServiceConfirmSettlementProcedure)
}

func (UnimplementedLedgerServiceHandler) ListSettlements(context.Context, *connect.Request[ledgerv1.ListSettlementsRequest]) (*connect.Response[ledgerv1.ListSettlementsResponse], error) {
	return nil, unimplemented(LedgerServiceListSettlementsProcedure)
}
