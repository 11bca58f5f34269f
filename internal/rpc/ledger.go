package rpc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "splitledger.v1.LedgerService"

// LedgerService procedures.
const (
	LedgerServiceComputeSplitsProcedure         = "/splitledger.v1.LedgerService/ComputeSplits"
	LedgerServiceRecordExpenseProcedure         = "/splitledger.v1.LedgerService/RecordExpense"
	LedgerServiceRecordSettlementProcedure      = "/splitledger.v1.LedgerService/RecordSettlement"
	LedgerServiceListExpensesProcedure          = "/splitledger.v1.LedgerService/ListExpenses"
	LedgerServiceResolvePairBalanceProcedure    = "/splitledger.v1.LedgerService/ResolvePairBalance"
	LedgerServiceResolveGroupBalancesProcedure  = "/splitledger.v1.LedgerService/ResolveGroupBalances"
	LedgerServiceListContactsAndGroupsProcedure = "/splitledger.v1.LedgerService/ListContactsAndGroups"
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	ComputeSplits(context.Context, *connect.Request[ComputeSplitsRequest]) (*connect.Response[ComputeSplitsResponse], error)
	RecordExpense(context.Context, *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordExpenseResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	ResolvePairBalance(context.Context, *connect.Request[ResolvePairBalanceRequest]) (*connect.Response[ResolvePairBalanceResponse], error)
	ResolveGroupBalances(context.Context, *connect.Request[ResolveGroupBalancesRequest]) (*connect.Response[ResolveGroupBalancesResponse], error)
	ListContactsAndGroups(context.Context, *connect.Request[ListContactsAndGroupsRequest]) (*connect.Response[ListContactsAndGroupsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc. It returns the path
// prefix to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceComputeSplitsProcedure, connect.NewUnaryHandler(LedgerServiceComputeSplitsProcedure, svc.ComputeSplits, opts...))
	mux.Handle(LedgerServiceRecordExpenseProcedure, connect.NewUnaryHandler(LedgerServiceRecordExpenseProcedure, svc.RecordExpense, opts...))
	mux.Handle(LedgerServiceRecordSettlementProcedure, connect.NewUnaryHandler(LedgerServiceRecordSettlementProcedure, svc.RecordSettlement, opts...))
	mux.Handle(LedgerServiceListExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerServiceResolvePairBalanceProcedure, connect.NewUnaryHandler(LedgerServiceResolvePairBalanceProcedure, svc.ResolvePairBalance, opts...))
	mux.Handle(LedgerServiceResolveGroupBalancesProcedure, connect.NewUnaryHandler(LedgerServiceResolveGroupBalancesProcedure, svc.ResolveGroupBalances, opts...))
	mux.Handle(LedgerServiceListContactsAndGroupsProcedure, connect.NewUnaryHandler(LedgerServiceListContactsAndGroupsProcedure, svc.ListContactsAndGroups, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient calls LedgerService.
type LedgerServiceClient struct {
	computeSplits         *connect.Client[ComputeSplitsRequest, ComputeSplitsResponse]
	recordExpense         *connect.Client[RecordExpenseRequest, RecordExpenseResponse]
	recordSettlement      *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
	listExpenses          *connect.Client[ListExpensesRequest, ListExpensesResponse]
	resolvePairBalance    *connect.Client[ResolvePairBalanceRequest, ResolvePairBalanceResponse]
	resolveGroupBalances  *connect.Client[ResolveGroupBalancesRequest, ResolveGroupBalancesResponse]
	listContactsAndGroups *connect.Client[ListContactsAndGroupsRequest, ListContactsAndGroupsResponse]
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		computeSplits:         connect.NewClient[ComputeSplitsRequest, ComputeSplitsResponse](httpClient, baseURL+LedgerServiceComputeSplitsProcedure, opts...),
		recordExpense:         connect.NewClient[RecordExpenseRequest, RecordExpenseResponse](httpClient, baseURL+LedgerServiceRecordExpenseProcedure, opts...),
		recordSettlement:      connect.NewClient[RecordSettlementRequest, RecordSettlementResponse](httpClient, baseURL+LedgerServiceRecordSettlementProcedure, opts...),
		listExpenses:          connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		resolvePairBalance:    connect.NewClient[ResolvePairBalanceRequest, ResolvePairBalanceResponse](httpClient, baseURL+LedgerServiceResolvePairBalanceProcedure, opts...),
		resolveGroupBalances:  connect.NewClient[ResolveGroupBalancesRequest, ResolveGroupBalancesResponse](httpClient, baseURL+LedgerServiceResolveGroupBalancesProcedure, opts...),
		listContactsAndGroups: connect.NewClient[ListContactsAndGroupsRequest, ListContactsAndGroupsResponse](httpClient, baseURL+LedgerServiceListContactsAndGroupsProcedure, opts...),
	}
}

func (c *LedgerServiceClient) ComputeSplits(ctx context.Context, req *connect.Request[ComputeSplitsRequest]) (*connect.Response[ComputeSplitsResponse], error) {
	return c.computeSplits.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RecordExpense(ctx context.Context, req *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordExpenseResponse], error) {
	return c.recordExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ResolvePairBalance(ctx context.Context, req *connect.Request[ResolvePairBalanceRequest]) (*connect.Response[ResolvePairBalanceResponse], error) {
	return c.resolvePairBalance.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ResolveGroupBalances(ctx context.Context, req *connect.Request[ResolveGroupBalancesRequest]) (*connect.Response[ResolveGroupBalancesResponse], error) {
	return c.resolveGroupBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListContactsAndGroups(ctx context.Context, req *connect.Request[ListContactsAndGroupsRequest]) (*connect.Response[ListContactsAndGroupsResponse], error) {
	return c.listContactsAndGroups.CallUnary(ctx, req)
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func unimplemented(method string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(LedgerServiceName+"."+method+" is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ComputeSplits(context.Context, *connect.Request[ComputeSplitsRequest]) (*connect.Response[ComputeSplitsResponse], error) {
	return nil, unimplemented("ComputeSplits")
}

func (UnimplementedLedgerServiceHandler) RecordExpense(context.Context, *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordExpenseResponse], error) {
	return nil, unimplemented("RecordExpense")
}

func (UnimplementedLedgerServiceHandler) RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return nil, unimplemented("RecordSettlement")
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return nil, unimplemented("ListExpenses")
}

func (UnimplementedLedgerServiceHandler) ResolvePairBalance(context.Context, *connect.Request[ResolvePairBalanceRequest]) (*connect.Response[ResolvePairBalanceResponse], error) {
	return nil, unimplemented("ResolvePairBalance")
}

func (UnimplementedLedgerServiceHandler) ResolveGroupBalances(context.Context, *connect.Request[ResolveGroupBalancesRequest]) (*connect.Response[ResolveGroupBalancesResponse], error) {
	return nil, unimplemented("ResolveGroupBalances")
}

func (UnimplementedLedgerServiceHandler) ListContactsAndGroups(context.Context, *connect.Request[ListContactsAndGroupsRequest]) (*connect.Response[ListContactsAndGroupsResponse], error) {
	return nil, unimplemented("ListContactsAndGroups")
}
