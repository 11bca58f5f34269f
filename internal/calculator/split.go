package calculator

import (
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// Participant is one person sharing an expense.
// Share is required for the percentage (percentage points) and exact (owed
// amount) policies and ignored for equal.
type Participant struct {
	UserID string
	Share  *float64
}

// ComputeSplits derives per-participant owed amounts from a total.
//
// equal:      amount / len(participants) each, no remainder redistribution
// percentage: amount * share / 100
// exact:      share as given
//
// The payer's split is marked paid; every other split starts unpaid.
func ComputeSplits(amount float64, policy models.SplitPolicy, participants []Participant, payerID string) ([]models.Split, error) {
	if len(participants) == 0 {
		return nil, models.NewValidationError("participants", "must have at least one participant")
	}

	splits := make([]models.Split, 0, len(participants))

	switch policy {
	case models.SplitEqual:
		share := amount / float64(len(participants))
		for _, p := range participants {
			splits = append(splits, models.Split{
				UserID: p.UserID,
				Amount: share,
				Paid:   p.UserID == payerID,
			})
		}

	case models.SplitPercentage:
		for _, p := range participants {
			if p.Share == nil {
				return nil, models.NewValidationError("participants", fmt.Sprintf("missing share percentage for %s", p.UserID))
			}
			splits = append(splits, models.Split{
				UserID: p.UserID,
				Amount: amount * *p.Share / 100,
				Paid:   p.UserID == payerID,
			})
		}

	case models.SplitExact:
		for _, p := range participants {
			if p.Share == nil {
				return nil, models.NewValidationError("participants", fmt.Sprintf("missing exact amount for %s", p.UserID))
			}
			splits = append(splits, models.Split{
				UserID: p.UserID,
				Amount: *p.Share,
				Paid:   p.UserID == payerID,
			})
		}

	default:
		return nil, models.NewValidationError("policy", fmt.Sprintf("unknown split policy %q", policy))
	}

	return splits, nil
}
