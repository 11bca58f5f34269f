package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	UserID     string
	NetBalance float64 // Positive = owed money, Negative = owes money
	TotalPaid  float64 // Expenses paid for plus settlements paid out
	TotalOwed  float64 // Own split shares plus settlements received
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount float64
}

// PairBalance folds expenses and settlements into self's signed balance
// against other. Positive means other owes self; negative means self owes
// other.
//
// Per expense:
//   - self paid: other's unpaid split adds to the balance
//   - other paid: self's unpaid split subtracts from it
//   - otherwise nothing
//
// Per settlement: a payment by self to other adds its amount, a payment by
// other to self subtracts it.
//
// Every term depends only on its own record, so the result does not depend on
// how the records were fetched. Callers pass the complete sets.
func PairBalance(selfID, otherID string, expenses []models.Expense, settlements []models.Settlement) float64 {
	var balance float64
	for i := range expenses {
		balance += expenseTerm(selfID, otherID, &expenses[i])
	}
	for i := range settlements {
		balance += settlementTerm(selfID, otherID, &settlements[i])
	}
	return Normalize(balance)
}

func expenseTerm(selfID, otherID string, e *models.Expense) float64 {
	switch e.PayerID {
	case selfID:
		if s, ok := e.SplitFor(otherID); ok && !s.Paid {
			return s.Amount
		}
	case otherID:
		if s, ok := e.SplitFor(selfID); ok && !s.Paid {
			return -s.Amount
		}
	}
	return 0
}

func settlementTerm(selfID, otherID string, s *models.Settlement) float64 {
	switch {
	case s.PayerID == selfID && s.ReceiverID == otherID:
		return s.Amount
	case s.PayerID == otherID && s.ReceiverID == selfID:
		return -s.Amount
	}
	return 0
}

// Nets holds pairwise balances: Nets[a][b] is what b owes a (negative when a
// owes b). Nets[a][b] == -Nets[b][a] for every pair.
type Nets map[string]map[string]float64

// Between returns self's normalized balance against other.
func (n Nets) Between(selfID, otherID string) float64 {
	return Normalize(n[selfID][otherID])
}

func (n Nets) add(a, b string, amount float64) {
	if n[a] == nil {
		n[a] = make(map[string]float64)
	}
	if n[b] == nil {
		n[b] = make(map[string]float64)
	}
	n[a][b] += amount
	n[b][a] -= amount
}

// FoldPairwise decomposes every expense into payer/participant debts and every
// settlement into a payer/receiver credit, applying the same per-record rules
// as PairBalance to every pair at once.
func FoldPairwise(expenses []models.Expense, settlements []models.Settlement) Nets {
	nets := make(Nets)
	for i := range expenses {
		e := &expenses[i]
		for _, s := range e.Splits {
			if s.UserID == e.PayerID || s.Paid {
				continue
			}
			nets.add(e.PayerID, s.UserID, s.Amount)
		}
	}
	for i := range settlements {
		s := &settlements[i]
		if s.PayerID == s.ReceiverID {
			continue
		}
		nets.add(s.PayerID, s.ReceiverID, s.Amount)
	}
	return nets
}

// CalculateGroupBalances computes member balances across a group's expenses
// and settlements. Members listed in memberIDs always appear in the result;
// anyone else referenced by a record (e.g. a former member) is appended.
//
// NetBalance is the sum of the member's pairwise nets, so the balances of all
// members sum to zero up to rounding.
func CalculateGroupBalances(memberIDs []string, expenses []models.Expense, settlements []models.Settlement) ([]MemberBalance, Nets) {
	nets := FoldPairwise(expenses, settlements)

	balances := make(map[string]*MemberBalance)
	order := make([]string, 0, len(memberIDs))
	touch := func(id string) *MemberBalance {
		if b, ok := balances[id]; ok {
			return b
		}
		b := &MemberBalance{UserID: id}
		balances[id] = b
		order = append(order, id)
		return b
	}

	for _, id := range memberIDs {
		touch(id)
	}

	for _, e := range expenses {
		touch(e.PayerID).TotalPaid += e.Amount
		for _, s := range e.Splits {
			touch(s.UserID).TotalOwed += s.Amount
		}
	}

	// Payer's balance improves, receiver's balance decreases.
	for _, s := range settlements {
		touch(s.PayerID).TotalPaid += s.Amount
		touch(s.ReceiverID).TotalOwed += s.Amount
	}

	result := make([]MemberBalance, 0, len(order))
	for _, id := range order {
		b := balances[id]
		var net float64
		for _, amount := range nets[id] {
			net += amount
		}
		b.NetBalance = Normalize(net)
		result = append(result, *b)
	}

	return result, nets
}

// SimplifyDebts turns member balances into a short list of payments that
// settles the group. Largest debts are matched with largest credits; amounts
// at or below one cent are treated as noise.
func SimplifyDebts(balances []MemberBalance) []DebtEdge {
	var creditors, debtors []MemberBalance
	for _, bal := range balances {
		if bal.NetBalance > 0 {
			creditors = append(creditors, bal)
		} else if bal.NetBalance < 0 {
			debtors = append(debtors, bal)
		}
	}

	byMagnitude := func(a, b MemberBalance) int {
		if c := cmp.Compare(abs(b.NetBalance), abs(a.NetBalance)); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	}
	slices.SortFunc(creditors, byMagnitude)
	slices.SortFunc(debtors, byMagnitude)

	debtorBalance := make(map[string]float64, len(debtors))
	creditorBalance := make(map[string]float64, len(creditors))
	for _, debtor := range debtors {
		debtorBalance[debtor.UserID] = -debtor.NetBalance
	}
	for _, creditor := range creditors {
		creditorBalance[creditor.UserID] = creditor.NetBalance
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].UserID
		creditor := creditors[j].UserID

		amount := min(debtorBalance[debtor], creditorBalance[creditor])
		if amount > SplitTolerance {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: RoundCents(amount)})
		}

		debtorBalance[debtor] -= amount
		creditorBalance[creditor] -= amount

		if debtorBalance[debtor] < SplitTolerance {
			i++
		}
		if creditorBalance[creditor] < SplitTolerance {
			j++
		}
	}

	return edges
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
