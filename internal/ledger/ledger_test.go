package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/cache"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx    context.Context
	store  *sqlite.SQLiteStore
	cache  *cache.InMemoryCache
	ledger *Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c := cache.NewInMemoryCache(time.Hour)
	return &fixture{
		ctx:    context.Background(),
		store:  store,
		cache:  c,
		ledger: New(store, WithCache(c), WithClock(func() time.Time { return testNow })),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := models.NewUser(name+"@example.com", name, "hash")
	require.NoError(t, f.store.CreateUser(f.ctx, u))
	return u
}

func (f *fixture) group(t *testing.T, admin *models.User, members ...*models.User) *models.Group {
	t.Helper()
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	g, err := f.ledger.CreateGroup(f.ctx, admin.ID, GroupInput{Name: "Group", MemberIDs: ids})
	require.NoError(t, err)
	return g
}

// equal builds an equal split of amount across participants.
func equal(payer *models.User, amount float64, participants ...*models.User) ExpenseInput {
	in := ExpenseInput{
		Description: "Shared",
		Amount:      amount,
		Date:        testNow.Unix(),
		PayerID:     payer.ID,
		Policy:      models.SplitEqual,
	}
	share := amount / float64(len(participants))
	for _, p := range participants {
		in.Splits = append(in.Splits, SplitInput{UserID: p.ID, Amount: share})
	}
	return in
}

func (f *fixture) expense(t *testing.T, actor *models.User, in ExpenseInput) *models.Expense {
	t.Helper()
	e, err := f.ledger.RecordExpense(f.ctx, actor.ID, in)
	require.NoError(t, err)
	return e
}

func (f *fixture) settle(t *testing.T, payer, receiver *models.User, amount float64, groupID string) *models.Settlement {
	t.Helper()
	s, err := f.ledger.RecordSettlement(f.ctx, payer.ID, SettlementInput{
		Amount:     amount,
		PayerID:    payer.ID,
		ReceiverID: receiver.ID,
		GroupID:    groupID,
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) pairBalance(t *testing.T, self, other *models.User) float64 {
	t.Helper()
	res, err := f.ledger.ResolvePairBalance(f.ctx, self.ID, other.ID)
	require.NoError(t, err)
	return res.Balance
}
