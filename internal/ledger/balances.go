package ledger

import (
	"cmp"
	"context"
	"slices"

	"github.com/mmynk/splitledger/internal/cache"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// PairBalance is the one-to-one position between the caller and another user.
type PairBalance struct {
	// Balance is positive when Other owes the caller and negative when the
	// caller owes Other.
	Balance float64

	// Expenses and Settlements are the one-to-one records between the two
	// users, newest first.
	Expenses    []models.Expense
	Settlements []models.Settlement

	Other models.Profile
}

// ResolvePairBalance folds every one-to-one expense and settlement between
// selfID and otherID into a signed balance. Fails with ErrNotFound if otherID
// does not resolve to a user.
func (l *Ledger) ResolvePairBalance(ctx context.Context, selfID, otherID string) (*PairBalance, error) {
	const op = "resolve_pair_balance"
	if err := requireActor(selfID); err != nil {
		return nil, fail(op, err)
	}
	if otherID == "" {
		return nil, fail(op, models.NewValidationError("user_id", "is required"))
	}
	if otherID == selfID {
		return nil, fail(op, models.NewValidationError("user_id", "cannot resolve a balance with yourself"))
	}

	other, err := l.store.GetUserByID(ctx, otherID)
	if err != nil {
		return nil, fail(op, err)
	}
	if other == nil {
		return nil, fail(op, models.NotFound("user", otherID))
	}

	key := cache.PairKey(selfID, otherID)
	var cached PairBalance
	if l.cacheGet(ctx, "pair", key, &cached) {
		cached.Other = other.Profile()
		return &cached, nil
	}
	version, cacheable := l.cacheVersion(ctx, key)

	pair := storage.Between(selfID, otherID)
	expenses, err := l.store.ListExpenses(ctx, storage.ExpenseFilter{OneToOne: true, Between: pair})
	if err != nil {
		return nil, fail(op, err)
	}
	settlements, err := l.store.ListSettlements(ctx, storage.SettlementFilter{OneToOne: true, Between: pair})
	if err != nil {
		return nil, fail(op, err)
	}

	result := &PairBalance{
		Balance:     calculator.PairBalance(selfID, otherID, expenses, settlements),
		Expenses:    expenses,
		Settlements: settlements,
		Other:       other.Profile(),
	}
	sortNewestFirst(result.Expenses, result.Settlements)

	if cacheable {
		l.cacheSet(ctx, "pair", key, version, result)
	}
	return result, nil
}

func sortNewestFirst(expenses []models.Expense, settlements []models.Settlement) {
	slices.SortStableFunc(expenses, func(a, b models.Expense) int {
		return cmp.Compare(b.Date, a.Date)
	})
	slices.SortStableFunc(settlements, func(a, b models.Settlement) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// MemberBalance is one user's total position inside a group.
type MemberBalance struct {
	UserID string
	Name   string

	// Role is empty for a former member who still appears in the records.
	Role string

	// Net is positive when the group owes the user money.
	Net       float64
	TotalPaid float64
	TotalOwed float64
}

// CounterpartyBalance is the caller's balance against one other member.
type CounterpartyBalance struct {
	UserID string
	Name   string

	// Balance is positive when UserID owes the caller.
	Balance float64
}

// GroupBalances is the state of a group as seen by one member.
type GroupBalances struct {
	Group   *models.Group
	Members []MemberBalance
	Pairs   []CounterpartyBalance
	Debts   []calculator.DebtEdge
}

// groupFold is the cached, caller-independent part of GroupBalances.
type groupFold struct {
	Members []calculator.MemberBalance
	Nets    calculator.Nets
	Debts   []calculator.DebtEdge
}

// ResolveGroupBalances folds a group's expenses and settlements into member
// positions, selfID's pairwise balances and a simplified settle-up plan.
// selfID must be a member.
func (l *Ledger) ResolveGroupBalances(ctx context.Context, selfID, groupID string) (*GroupBalances, error) {
	const op = "resolve_group_balances"
	if err := requireActor(selfID); err != nil {
		return nil, fail(op, err)
	}

	// The fold depends on the member list, so the generation is taken before
	// the group is loaded.
	key := cache.GroupKey(groupID)
	version, cacheable := l.cacheVersion(ctx, key)

	group, err := l.groupForMember(ctx, groupID, selfID)
	if err != nil {
		return nil, fail(op, err)
	}

	var fold groupFold
	if !l.cacheGet(ctx, "group", key, &fold) {
		expenses, err := l.store.ListExpenses(ctx, storage.ExpenseFilter{GroupID: groupID})
		if err != nil {
			return nil, fail(op, err)
		}
		settlements, err := l.store.ListSettlements(ctx, storage.SettlementFilter{GroupID: groupID})
		if err != nil {
			return nil, fail(op, err)
		}

		fold.Members, fold.Nets = calculator.CalculateGroupBalances(group.MemberIDs(), expenses, settlements)
		fold.Debts = calculator.SimplifyDebts(fold.Members)
		if cacheable {
			l.cacheSet(ctx, "group", key, version, fold)
		}
	}

	names, err := l.memberNames(ctx, group, fold.Members)
	if err != nil {
		return nil, fail(op, err)
	}

	result := &GroupBalances{Group: group, Debts: fold.Debts}
	for _, mb := range fold.Members {
		m, _ := group.Member(mb.UserID)
		result.Members = append(result.Members, MemberBalance{
			UserID:    mb.UserID,
			Name:      names[mb.UserID],
			Role:      m.Role,
			Net:       mb.NetBalance,
			TotalPaid: mb.TotalPaid,
			TotalOwed: mb.TotalOwed,
		})
		if mb.UserID == selfID {
			continue
		}
		result.Pairs = append(result.Pairs, CounterpartyBalance{
			UserID:  mb.UserID,
			Name:    names[mb.UserID],
			Balance: fold.Nets.Between(selfID, mb.UserID),
		})
	}
	return result, nil
}

// memberNames returns display names for every balance entry: the member
// snapshot for current members, a user lookup for former ones.
func (l *Ledger) memberNames(ctx context.Context, group *models.Group, balances []calculator.MemberBalance) (map[string]string, error) {
	names := make(map[string]string, len(balances))
	var former []string
	for _, b := range balances {
		if m, ok := group.Member(b.UserID); ok {
			names[b.UserID] = m.Snapshot.Name
		} else {
			former = append(former, b.UserID)
		}
	}
	if len(former) == 0 {
		return names, nil
	}

	users, err := l.store.GetUsersByIDs(ctx, former)
	if err != nil {
		return nil, err
	}
	for _, id := range former {
		if u, ok := users[id]; ok {
			names[id] = u.Name
		} else {
			names[id] = UnknownUserName
		}
	}
	return names, nil
}
