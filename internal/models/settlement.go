package models

// Settlement represents a direct payment from one user to another.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Amount is the payment amount.
	Amount float64

	// Note is an optional description for the settlement.
	Note string

	// Date is the Unix timestamp when the payment was made.
	Date int64

	// PayerID is the user who paid (debtor settling up).
	PayerID       string
	PayerSnapshot UserSnapshot

	// ReceiverID is the user who received payment (creditor being paid).
	ReceiverID       string
	ReceiverSnapshot UserSnapshot

	// GroupID is empty for one-to-one settlements.
	GroupID string

	// RelatedExpenseIDs lists the expenses this payment is understood to cover.
	RelatedExpenseIDs []string

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}

// Between reports whether the settlement was made between a and b in either
// direction.
func (s *Settlement) Between(a, b string) bool {
	return (s.PayerID == a && s.ReceiverID == b) || (s.PayerID == b && s.ReceiverID == a)
}
