package models

// SplitPolicy is the rule used to derive splits from an expense total.
type SplitPolicy string

// Supported split policies.
const (
	SplitEqual      SplitPolicy = "equal"
	SplitPercentage SplitPolicy = "percentage"
	SplitExact      SplitPolicy = "exact"
)

// DefaultCategory is stored when an expense is recorded without a category.
const DefaultCategory = "Other"

// Valid reports whether p is a known policy.
func (p SplitPolicy) Valid() bool {
	switch p {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// Expense is an immutable record of a shared payment.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	Description string

	// Amount is the total paid by the payer.
	Amount float64

	Category string

	// Date is the Unix timestamp when the expense was incurred.
	Date int64

	PayerID       string
	PayerSnapshot UserSnapshot

	Policy SplitPolicy

	// Splits holds one entry per participant, in the order they were given.
	// The sum of split amounts equals Amount within SplitTolerance.
	Splits []Split

	// GroupID is empty for one-to-one expenses.
	GroupID string

	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one participant's owed share of an expense.
type Split struct {
	UserID   string
	Snapshot UserSnapshot
	Amount   float64

	// Paid is true only for the payer's own split.
	Paid bool
}

// SplitFor returns the split of userID, if present.
func (e *Expense) SplitFor(userID string) (Split, bool) {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s, true
		}
	}
	return Split{}, false
}

// Involves reports whether userID paid for or shares the expense.
func (e *Expense) Involves(userID string) bool {
	if e.PayerID == userID {
		return true
	}
	_, ok := e.SplitFor(userID)
	return ok
}

// IsOneToOne reports whether the expense is outside any group.
func (e *Expense) IsOneToOne() bool {
	return e.GroupID == ""
}
