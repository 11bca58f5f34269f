package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/cache"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
)

// SettlementInput is the data needed to record a settlement.
type SettlementInput struct {
	Amount float64
	Note   string

	// Date is a Unix timestamp; zero means now.
	Date int64

	PayerID    string
	ReceiverID string

	// GroupID is empty for a one-to-one settlement.
	GroupID string

	RelatedExpenseIDs []string
}

// RecordSettlement validates and persists a payment from PayerID to
// ReceiverID. Group membership is checked the same way as for expenses.
// Related expenses must exist; duplicates are dropped.
func (l *Ledger) RecordSettlement(ctx context.Context, actorID string, in SettlementInput) (*models.Settlement, error) {
	const op = "record_settlement"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}

	var errs []models.FieldError
	if !calculator.IsFinite(in.Amount) {
		errs = append(errs, models.FieldError{Field: "amount", Message: "must be a finite number"})
	}
	if in.PayerID == "" {
		errs = append(errs, models.FieldError{Field: "payer_id", Message: "is required"})
	}
	if in.ReceiverID == "" {
		errs = append(errs, models.FieldError{Field: "receiver_id", Message: "is required"})
	}
	if in.PayerID != "" && in.PayerID == in.ReceiverID {
		errs = append(errs, models.FieldError{Field: "receiver_id", Message: "must differ from the payer"})
	}
	if len(errs) > 0 {
		return nil, fail(op, &models.ValidationError{Errors: errs})
	}

	if in.GroupID != "" {
		if _, err := l.groupForMember(ctx, in.GroupID, actorID); err != nil {
			return nil, fail(op, err)
		}
	}

	users, err := l.resolveUsers(ctx, []string{in.PayerID, in.ReceiverID})
	if err != nil {
		return nil, fail(op, err)
	}

	var related []string
	seen := make(map[string]bool, len(in.RelatedExpenseIDs))
	for _, id := range in.RelatedExpenseIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if _, err := l.store.GetExpense(ctx, id); err != nil {
			return nil, fail(op, err)
		}
		related = append(related, id)
	}

	date := in.Date
	if date == 0 {
		date = l.now().Unix()
	}

	settlement := &models.Settlement{
		Amount:            in.Amount,
		Note:              strings.TrimSpace(in.Note),
		Date:              date,
		PayerID:           in.PayerID,
		PayerSnapshot:     users[in.PayerID].Snapshot(),
		ReceiverID:        in.ReceiverID,
		ReceiverSnapshot:  users[in.ReceiverID].Snapshot(),
		GroupID:           in.GroupID,
		RelatedExpenseIDs: related,
		CreatedBy:         actorID,
		CreatedAt:         l.now().Unix(),
	}
	if err := l.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fail(op, err)
	}

	if settlement.GroupID != "" {
		l.invalidate(ctx, cache.GroupKey(settlement.GroupID))
	} else {
		l.invalidatePairs(ctx, settlement.PayerID, []string{settlement.ReceiverID})
	}

	metrics.SettlementsRecorded.WithLabelValues(metrics.Scope(settlement.GroupID)).Inc()
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"payer_id", settlement.PayerID,
		"receiver_id", settlement.ReceiverID,
		"amount", settlement.Amount,
		"user_id", actorID,
	)
	return settlement, nil
}
