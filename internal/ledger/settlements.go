package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const maxNoteLength = 500

// NewSettlement is the input to SettlementRecorder.Record.
type NewSettlement struct {
	GroupID    string
	PayerID    string
	ReceiverID string
	Amount     decimal.Decimal
	Note       string
}

// SettlementRecorder records payments between members.
// Settlements are never checked against the group's balances.
type SettlementRecorder struct {
	store storage.Store
	opts  options
}

func NewSettlementRecorder(store storage.Store, opts ...Option) *SettlementRecorder {
	return &SettlementRecorder{store: store, opts: buildOptions(opts)}
}

// Record stores a new pending settlement.
func (r *SettlementRecorder) Record(ctx context.Context, in NewSettlement) (*models.Settlement, error) {
	const op = "record settlement"

	switch {
	case strings.TrimSpace(in.GroupID) == "":
		return nil, validationError(op, "group_id is required")
	case strings.TrimSpace(in.PayerID) == "":
		return nil, validationError(op, "payer_id is required")
	case strings.TrimSpace(in.ReceiverID) == "":
		return nil, validationError(op, "receiver_id is required")
	case in.PayerID == in.ReceiverID:
		return nil, validationError(op, "payer and receiver must be different users")
	}
	if err := checkAmount(op, "amount", in.Amount, false); err != nil {
		return nil, err
	}
	note := strings.TrimSpace(in.Note)
	if len(note) > maxNoteLength {
		return nil, validationError(op, "note must be at most %d characters", maxNoteLength)
	}

	if _, err := r.store.GetGroup(ctx, in.GroupID); err != nil {
		return nil, fromStorage(op, err)
	}
	users, err := r.store.GetUsersByIDs(ctx, []string{in.PayerID, in.ReceiverID})
	if err != nil {
		return nil, fromStorage(op, err)
	}
	for _, id := range []string{in.PayerID, in.ReceiverID} {
		if _, ok := users[id]; !ok {
			return nil, referenceError(op, "user %s does not exist", id)
		}
	}

	settlement := &models.Settlement{
		GroupID:    in.GroupID,
		PayerID:    in.PayerID,
		ReceiverID: in.ReceiverID,
		Amount:     in.Amount,
		Note:       note,
	}
	if err := r.store.CreateSettlement(ctx, settlement); err != nil {
		slog.ErrorContext(ctx, "CreateSettlement failed", "group_id", in.GroupID, "error", err)
		return nil, fromStorage(op, err)
	}

	slog.InfoContext(ctx, "Recorded settlement",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount.StringFixed(2))

	event := events.New(events.SettlementRecorded, settlement.GroupID, settlement.ID)
	event.ActorID = settlement.PayerID
	event.Amount = settlement.Amount.StringFixed(2)
	r.opts.publish(ctx, event)

	return settlement, nil
}

// Get returns a settlement by ID.
func (r *SettlementRecorder) Get(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := r.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, fromStorage("get settlement", err)
	}
	return settlement, nil
}

// Confirm moves a pending settlement to confirmed.
func (r *SettlementRecorder) Confirm(ctx context.Context, settlementID, actorID string) (*models.Settlement, error) {
	settlement, err := r.store.ConfirmSettlement(ctx, settlementID, r.opts.now().Unix())
	if err != nil {
		return nil, fromStorage("confirm settlement", err)
	}

	slog.InfoContext(ctx, "Confirmed settlement", "settlement_id", settlement.ID, "group_id", settlement.GroupID)

	event := events.New(events.SettlementConfirmed, settlement.GroupID, settlement.ID)
	event.ActorID = actorID
	event.Amount = settlement.Amount.StringFixed(2)
	r.opts.publish(ctx, event)

	return settlement, nil
}

// ListByGroup returns the settlements of a group, newest first.
func (r *SettlementRecorder) ListByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	const op = "list settlements"

	if _, err := r.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStorage(op, err)
	}
	settlements, err := r.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, fromStorage(op, err)
	}
	return settlements, nil
}
