package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/cache"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// SplitInput is one participant's owed amount as submitted.
type SplitInput struct {
	UserID string
	Amount float64
}

// ExpenseInput is the data needed to record an expense.
type ExpenseInput struct {
	Description string
	Amount      float64

	// Category defaults to models.DefaultCategory.
	Category string

	// Date is a Unix timestamp; zero means now.
	Date int64

	PayerID string
	Policy  models.SplitPolicy
	Splits  []SplitInput

	// GroupID is empty for a one-to-one expense.
	GroupID string
}

func validateExpense(in ExpenseInput) error {
	var errs []models.FieldError
	add := func(field, msg string) {
		errs = append(errs, models.FieldError{Field: field, Message: msg})
	}

	if !calculator.IsFinite(in.Amount) {
		add("amount", "must be a finite number")
	}
	if !in.Policy.Valid() {
		add("split_policy", fmt.Sprintf("unknown split policy %q", in.Policy))
	}
	if in.PayerID == "" {
		add("payer_id", "is required")
	}
	if len(in.Splits) == 0 {
		add("splits", "must have at least one participant")
	}

	seen := make(map[string]bool, len(in.Splits))
	for _, s := range in.Splits {
		switch {
		case s.UserID == "":
			add("splits", "participant ID is required")
		case seen[s.UserID]:
			add("splits", fmt.Sprintf("duplicate participant %s", s.UserID))
		case !calculator.IsFinite(s.Amount):
			add("splits", fmt.Sprintf("amount for %s must be a finite number", s.UserID))
		case in.Amount >= 0 && s.Amount < 0, in.Amount < 0 && s.Amount > 0:
			// A refund splits into refunds; a charge never credits anyone.
			add("splits", fmt.Sprintf("amount for %s must have the same sign as the expense", s.UserID))
		}
		seen[s.UserID] = true
	}

	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

// RecordExpense validates and persists an expense.
//
// The splits must add up to the amount within calculator.SplitTolerance.
// With a group, the group must exist and actorID must be a member. The payer
// and every participant must exist. Paid flags are derived: only the payer's
// own split is paid. Nothing is written when any check fails.
func (l *Ledger) RecordExpense(ctx context.Context, actorID string, in ExpenseInput) (*models.Expense, error) {
	const op = "record_expense"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}
	if err := validateExpense(in); err != nil {
		return nil, fail(op, err)
	}

	splits := make([]models.Split, len(in.Splits))
	userIDs := []string{in.PayerID}
	for i, s := range in.Splits {
		splits[i] = models.Split{UserID: s.UserID, Amount: s.Amount, Paid: s.UserID == in.PayerID}
		if s.UserID != in.PayerID {
			userIDs = append(userIDs, s.UserID)
		}
	}
	if !calculator.SplitsMatchAmount(splits, in.Amount) {
		return nil, fail(op, models.NewValidationError("splits", "split amounts must add up to the total expense amount"))
	}

	if in.GroupID != "" {
		if _, err := l.groupForMember(ctx, in.GroupID, actorID); err != nil {
			return nil, fail(op, err)
		}
	}

	users, err := l.resolveUsers(ctx, userIDs)
	if err != nil {
		return nil, fail(op, err)
	}
	for i := range splits {
		splits[i].Snapshot = users[splits[i].UserID].Snapshot()
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}
	date := in.Date
	if date == 0 {
		date = l.now().Unix()
	}

	expense := &models.Expense{
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		Category:      category,
		Date:          date,
		PayerID:       in.PayerID,
		PayerSnapshot: users[in.PayerID].Snapshot(),
		Policy:        in.Policy,
		Splits:        splits,
		GroupID:       in.GroupID,
		CreatedBy:     actorID,
		CreatedAt:     l.now().Unix(),
	}
	if err := l.store.CreateExpense(ctx, expense); err != nil {
		return nil, fail(op, err)
	}

	if expense.GroupID != "" {
		l.invalidate(ctx, cache.GroupKey(expense.GroupID))
	} else {
		l.invalidatePairs(ctx, expense.PayerID, userIDs)
	}

	metrics.ExpensesRecorded.WithLabelValues(metrics.Scope(expense.GroupID)).Inc()
	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"splits", len(expense.Splits),
		"user_id", actorID,
	)
	return expense, nil
}

// PreviewSplits computes the splits an expense would get without recording
// anything.
func (l *Ledger) PreviewSplits(actorID string, amount float64, policy models.SplitPolicy, participants []calculator.Participant, payerID string) ([]models.Split, error) {
	const op = "preview_splits"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}
	if !calculator.IsFinite(amount) {
		return nil, fail(op, models.NewValidationError("amount", "must be a finite number"))
	}
	splits, err := calculator.ComputeSplits(amount, policy, participants, payerID)
	if err != nil {
		return nil, fail(op, err)
	}
	return splits, nil
}

// ExpenseQuery filters ListExpenses. Zero fields do not filter.
type ExpenseQuery struct {
	GroupID   string
	PayerID   string
	CreatedBy string
	From      int64
	To        int64
}

// ListExpenses returns expenses visible to actorID, newest first.
// With a group, actorID must be a member and sees every group expense.
// Without one, only expenses actorID paid or shares are returned.
func (l *Ledger) ListExpenses(ctx context.Context, actorID string, q ExpenseQuery) ([]models.Expense, error) {
	const op = "list_expenses"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}

	filter := storage.ExpenseFilter{
		GroupID:   q.GroupID,
		PayerID:   q.PayerID,
		CreatedBy: q.CreatedBy,
		From:      q.From,
		To:        q.To,
	}
	if q.GroupID != "" {
		if _, err := l.groupForMember(ctx, q.GroupID, actorID); err != nil {
			return nil, fail(op, err)
		}
	} else {
		filter.InvolvingID = actorID
	}

	expenses, err := l.store.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fail(op, err)
	}
	return expenses, nil
}
