package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/rpc"
)

// LedgerService implements the Connect LedgerService. The acting user is
// always the authenticated caller.
type LedgerService struct {
	ledger *ledger.Ledger
	logger *slog.Logger
}

var _ rpc.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService over l.
func NewLedgerService(l *ledger.Ledger, logger *slog.Logger) *LedgerService {
	return &LedgerService{ledger: l, logger: logger}
}

// ComputeSplits previews the splits of an expense without recording it.
func (s *LedgerService) ComputeSplits(ctx context.Context, req *connect.Request[rpc.ComputeSplitsRequest]) (*connect.Response[rpc.ComputeSplitsResponse], error) {
	actorID := middleware.GetUserID(ctx)
	splits, err := s.ledger.PreviewSplits(actorID, req.Msg.Amount, models.SplitPolicy(req.Msg.SplitPolicy),
		participantsFromRPC(req.Msg.Participants), req.Msg.PayerID)
	if err != nil {
		return nil, connectError(s.logger, "ComputeSplits failed", err, "user_id", actorID)
	}
	return connect.NewResponse(&rpc.ComputeSplitsResponse{Splits: splitsToRPC(splits)}), nil
}

// RecordExpense records a one-to-one or group expense.
func (s *LedgerService) RecordExpense(ctx context.Context, req *connect.Request[rpc.RecordExpenseRequest]) (*connect.Response[rpc.RecordExpenseResponse], error) {
	actorID := middleware.GetUserID(ctx)
	msg := req.Msg

	splits := make([]ledger.SplitInput, len(msg.Splits))
	for i, sp := range msg.Splits {
		splits[i] = ledger.SplitInput{UserID: sp.UserID, Amount: sp.Amount}
	}

	expense, err := s.ledger.RecordExpense(ctx, actorID, ledger.ExpenseInput{
		Description: msg.Description,
		Amount:      msg.Amount,
		Category:    msg.Category,
		Date:        msg.Date,
		PayerID:     msg.PayerID,
		Policy:      models.SplitPolicy(msg.SplitPolicy),
		Splits:      splits,
		GroupID:     msg.GroupID,
	})
	if err != nil {
		return nil, connectError(s.logger, "RecordExpense failed", err, "user_id", actorID, "group_id", msg.GroupID)
	}

	return connect.NewResponse(&rpc.RecordExpenseResponse{Expense: expenseToRPC(expense)}), nil
}

// RecordSettlement records a payment between two users.
func (s *LedgerService) RecordSettlement(ctx context.Context, req *connect.Request[rpc.RecordSettlementRequest]) (*connect.Response[rpc.RecordSettlementResponse], error) {
	actorID := middleware.GetUserID(ctx)
	msg := req.Msg

	settlement, err := s.ledger.RecordSettlement(ctx, actorID, ledger.SettlementInput{
		Amount:            msg.Amount,
		Note:              msg.Note,
		Date:              msg.Date,
		PayerID:           msg.PayerID,
		ReceiverID:        msg.ReceiverID,
		GroupID:           msg.GroupID,
		RelatedExpenseIDs: msg.RelatedExpenseIDs,
	})
	if err != nil {
		return nil, connectError(s.logger, "RecordSettlement failed", err, "user_id", actorID, "group_id", msg.GroupID)
	}

	return connect.NewResponse(&rpc.RecordSettlementResponse{Settlement: settlementToRPC(settlement)}), nil
}

// ListExpenses lists expenses visible to the caller.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[rpc.ListExpensesRequest]) (*connect.Response[rpc.ListExpensesResponse], error) {
	actorID := middleware.GetUserID(ctx)
	expenses, err := s.ledger.ListExpenses(ctx, actorID, ledger.ExpenseQuery{
		GroupID:   req.Msg.GroupID,
		PayerID:   req.Msg.PayerID,
		CreatedBy: req.Msg.CreatedBy,
		From:      req.Msg.From,
		To:        req.Msg.To,
	})
	if err != nil {
		return nil, connectError(s.logger, "ListExpenses failed", err, "user_id", actorID, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&rpc.ListExpensesResponse{Expenses: expensesToRPC(expenses)}), nil
}

// ResolvePairBalance returns the caller's one-to-one balance with another user.
func (s *LedgerService) ResolvePairBalance(ctx context.Context, req *connect.Request[rpc.ResolvePairBalanceRequest]) (*connect.Response[rpc.ResolvePairBalanceResponse], error) {
	actorID := middleware.GetUserID(ctx)
	pair, err := s.ledger.ResolvePairBalance(ctx, actorID, req.Msg.OtherUserID)
	if err != nil {
		return nil, connectError(s.logger, "ResolvePairBalance failed", err, "user_id", actorID, "other_id", req.Msg.OtherUserID)
	}
	return connect.NewResponse(&rpc.ResolvePairBalanceResponse{
		Balance:     pair.Balance,
		Other:       profileToRPC(pair.Other),
		Expenses:    expensesToRPC(pair.Expenses),
		Settlements: settlementsToRPC(pair.Settlements),
	}), nil
}

// ResolveGroupBalances returns member positions and the settle-up plan of a
// group.
func (s *LedgerService) ResolveGroupBalances(ctx context.Context, req *connect.Request[rpc.ResolveGroupBalancesRequest]) (*connect.Response[rpc.ResolveGroupBalancesResponse], error) {
	actorID := middleware.GetUserID(ctx)
	balances, err := s.ledger.ResolveGroupBalances(ctx, actorID, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(s.logger, "ResolveGroupBalances failed", err, "user_id", actorID, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(groupBalancesToRPC(balances)), nil
}

// ListContactsAndGroups returns the caller's one-to-one contacts and groups.
func (s *LedgerService) ListContactsAndGroups(ctx context.Context, _ *connect.Request[rpc.ListContactsAndGroupsRequest]) (*connect.Response[rpc.ListContactsAndGroupsResponse], error) {
	actorID := middleware.GetUserID(ctx)
	dir, err := s.ledger.ListContactsAndGroups(ctx, actorID)
	if err != nil {
		return nil, connectError(s.logger, "ListContactsAndGroups failed", err, "user_id", actorID)
	}

	resp := &rpc.ListContactsAndGroupsResponse{
		Users:  make([]rpc.User, len(dir.Users)),
		Groups: make([]rpc.GroupSummary, len(dir.Groups)),
	}
	for i, u := range dir.Users {
		resp.Users[i] = profileToRPC(u)
	}
	for i, g := range dir.Groups {
		resp.Groups[i] = rpc.GroupSummary{ID: g.ID, Name: g.Name, Description: g.Description, MemberCount: g.MemberCount}
	}
	return connect.NewResponse(resp), nil
}
