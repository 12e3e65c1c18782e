package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1/ledgerv1connect"
)

// LedgerService implements the Connect LedgerService.
// Every call requires the caller to be a member of the group it touches.
type LedgerService struct {
	ledgerv1connect.UnimplementedLedgerServiceHandler

	store       storage.Store
	expenses    *ledger.ExpenseRecorder
	balances    *ledger.BalanceEngine
	settlements *ledger.SettlementRecorder
	metrics     *metrics.Metrics
}

// NewLedgerService creates a LedgerService. m may be nil.
func NewLedgerService(store storage.Store, m *metrics.Metrics, opts ...ledger.Option) *LedgerService {
	return &LedgerService{
		store:       store,
		expenses:    ledger.NewExpenseRecorder(store, opts...),
		balances:    ledger.NewBalanceEngine(store),
		settlements: ledger.NewSettlementRecorder(store, opts...),
		metrics:     m,
	}
}

// CreateExpense records an expense paid by the caller.
func (s *LedgerService) CreateExpense(ctx context.Context, req *connect.Request[ledgerv1.CreateExpenseRequest]) (*connect.Response[ledgerv1.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"splits_count", len(req.Msg.Splits),
		"split_between_count", len(req.Msg.SplitBetween),
	)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	in := ledger.NewExpense{
		GroupID:      req.Msg.GroupID,
		PaidBy:       userID,
		Description:  req.Msg.Description,
		Amount:       req.Msg.Amount,
		Category:     req.Msg.Category,
		Date:         req.Msg.Date,
		ReceiptURL:   req.Msg.ReceiptURL,
		SplitBetween: req.Msg.SplitBetween,
	}
	for _, split := range req.Msg.Splits {
		if split == nil {
			return nil, invalidArgument("splits must not contain null entries")
		}
		in.Splits = append(in.Splits, ledger.SplitInput{UserID: split.UserID, Amount: split.Amount})
	}

	expense, err := s.expenses.Record(ctx, in)
	if err != nil {
		slog.Error("CreateExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	if s.metrics != nil {
		s.metrics.ExpensesRecorded.Inc()
	}

	return connect.NewResponse(&ledgerv1.CreateExpenseResponse{
		ExpenseID: expense.ID,
		Expense:   toAPIExpense(expense),
	}), nil
}

// GetExpense returns an expense with its splits.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[ledgerv1.GetExpenseRequest]) (*connect.Response[ledgerv1.GetExpenseResponse], error) {
	expense, err := s.visibleExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ledgerv1.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns the expenses of a group, newest first. Without a group
// it returns the expenses of every group the caller belongs to.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var expenses []*models.Expense
	if req.Msg.GroupID == "" {
		expenses, err = s.expenses.ListForUser(ctx, userID)
	} else {
		if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
			return nil, err
		}
		expenses, err = s.expenses.ListByGroup(ctx, req.Msg.GroupID)
	}
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*ledgerv1.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(out))

	return connect.NewResponse(&ledgerv1.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense. Only its payer may delete it.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[ledgerv1.DeleteExpenseRequest]) (*connect.Response[ledgerv1.DeleteExpenseResponse], error) {
	expense, err := s.visibleExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}
	userID := middleware.GetUserID(ctx)
	if expense.PaidBy != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("only the payer can delete an expense"))
	}

	if err := s.expenses.Delete(ctx, expense.ID, userID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&ledgerv1.DeleteExpenseResponse{}), nil
}

// SettleSplit marks one split as settled. The split's user or the expense's payer may do this.
func (s *LedgerService) SettleSplit(ctx context.Context, req *connect.Request[ledgerv1.SettleSplitRequest]) (*connect.Response[ledgerv1.SettleSplitResponse], error) {
	if strings.TrimSpace(req.Msg.SplitID) == "" {
		return nil, invalidArgument("split_id is required")
	}
	split, err := s.store.GetSplit(ctx, req.Msg.SplitID)
	if err != nil {
		return nil, toConnectError(err)
	}
	expense, err := s.visibleExpense(ctx, split.ExpenseID)
	if err != nil {
		return nil, err
	}
	userID := middleware.GetUserID(ctx)
	if userID != split.UserID && userID != expense.PaidBy {
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("only the ower or the payer can settle a split"))
	}

	settled, err := s.expenses.SettleSplit(ctx, split.ID)
	if err != nil {
		slog.Error("SettleSplit failed", "split_id", split.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&ledgerv1.SettleSplitResponse{Split: toAPISplit(settled)}), nil
}

// GetGroupBalances returns the pairwise "ower owes payer" balances of a group.
func (s *LedgerService) GetGroupBalances(ctx context.Context, req *connect.Request[ledgerv1.GetGroupBalancesRequest]) (*connect.Response[ledgerv1.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}

	balances, err := s.balances.GroupBalances(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*ledgerv1.Balance, len(balances))
	for i, b := range balances {
		out[i] = toAPIBalance(b)
	}

	return connect.NewResponse(&ledgerv1.GetGroupBalancesResponse{Balances: out}), nil
}

// GetUserBalances returns the caller's pairwise balances across all of their groups.
func (s *LedgerService) GetUserBalances(ctx context.Context, req *connect.Request[ledgerv1.GetUserBalancesRequest]) (*connect.Response[ledgerv1.GetUserBalancesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.balances.UserBalances(ctx, userID)
	if err != nil {
		slog.Error("GetUserBalances failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*ledgerv1.Balance, len(balances))
	for i, b := range balances {
		out[i] = toAPIBalance(b)
	}
	slog.Info("GetUserBalances successful", "user_id", userID, "count", len(out))

	return connect.NewResponse(&ledgerv1.GetUserBalancesResponse{Balances: out}), nil
}

// GetSimplifiedDebts returns per-member net positions and the transfers that settle them.
func (s *LedgerService) GetSimplifiedDebts(ctx context.Context, req *connect.Request[ledgerv1.GetSimplifiedDebtsRequest]) (*connect.Response[ledgerv1.GetSimplifiedDebtsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	summary, err := s.balances.SimplifiedDebts(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetSimplifiedDebts failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &ledgerv1.GetSimplifiedDebtsResponse{
		Transfers: make([]*ledgerv1.Transfer, len(summary.Transfers)),
		Members:   make([]*ledgerv1.MemberBalance, len(summary.Members)),
	}
	for i, t := range summary.Transfers {
		resp.Transfers[i] = toAPITransfer(t)
	}
	for i, m := range summary.Members {
		resp.Members[i] = toAPIMemberBalance(m)
	}

	return connect.NewResponse(resp), nil
}

// CreateSettlement records a pending payment between two users of a group.
func (s *LedgerService) CreateSettlement(ctx context.Context, req *connect.Request[ledgerv1.CreateSettlementRequest]) (*connect.Response[ledgerv1.CreateSettlementResponse], error) {
	slog.Info("CreateSettlement request received", "group_id", req.Msg.GroupID)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	settlement, err := s.settlements.Record(ctx, ledger.NewSettlement{
		GroupID:    req.Msg.GroupID,
		PayerID:    req.Msg.PayerID,
		ReceiverID: req.Msg.ReceiverID,
		Amount:     req.Msg.Amount,
		Note:       req.Msg.Note,
	})
	if err != nil {
		slog.Error("CreateSettlement failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	s.countSettlement(settlement.Status)

	return connect.NewResponse(&ledgerv1.CreateSettlementResponse{
		SettlementID: settlement.ID,
		Settlement:   toAPISettlement(settlement),
	}), nil
}

// ConfirmSettlement marks a pending settlement confirmed. Only its receiver may confirm it.
func (s *LedgerService) ConfirmSettlement(ctx context.Context, req *connect.Request[ledgerv1.ConfirmSettlementRequest]) (*connect.Response[ledgerv1.ConfirmSettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.SettlementID) == "" {
		return nil, invalidArgument("settlement_id is required")
	}

	existing, err := s.settlements.Get(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if existing.ReceiverID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("only the receiver can confirm a settlement"))
	}

	settlement, err := s.settlements.Confirm(ctx, existing.ID, userID)
	if err != nil {
		slog.Error("ConfirmSettlement failed", "settlement_id", existing.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.countSettlement(settlement.Status)

	return connect.NewResponse(&ledgerv1.ConfirmSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements returns the settlements of a group, newest first.
func (s *LedgerService) ListSettlements(ctx context.Context, req *connect.Request[ledgerv1.ListSettlementsRequest]) (*connect.Response[ledgerv1.ListSettlementsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	settlements, err := s.settlements.ListByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*ledgerv1.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}

	return connect.NewResponse(&ledgerv1.ListSettlementsResponse{Settlements: out}), nil
}

// visibleExpense loads an expense the caller is allowed to see.
func (s *LedgerService) visibleExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(expenseID) == "" {
		return nil, invalidArgument("expense_id is required")
	}

	expense, err := s.expenses.Get(ctx, expenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := requireMember(ctx, s.store, expense.GroupID, userID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *LedgerService) countSettlement(status models.SettlementStatus) {
	if s.metrics != nil {
		s.metrics.SettlementsRecorded.WithLabelValues(string(status)).Inc()
	}
}
