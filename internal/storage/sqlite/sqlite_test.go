package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")

	t.Run("lookup by email and ID", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, "hash", got.PasswordHash)

		got, err = store.GetUserByID(ctx, bob.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "bob@example.com", got.Email)
	})

	t.Run("missing user is nil", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash"))
		assert.Error(t, err)
	})

	t.Run("batch lookup omits missing", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "ghost"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "Bob", users[bob.ID].Name)

		users, err = store.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("list", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	group := &models.Group{
		Name:      "Trip",
		CreatedBy: alice.ID,
		Members: []models.GroupMember{
			{UserID: alice.ID, Snapshot: alice.Snapshot(), Role: models.RoleAdmin},
			{UserID: bob.ID, Snapshot: bob.Snapshot(), Role: models.RoleMember},
		},
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	assert.NotEmpty(t, group.ID)
	assert.NotZero(t, group.CreatedAt)

	t.Run("get with members", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Trip", got.Name)
		require.Len(t, got.Members, 2)
		assert.True(t, got.IsAdmin(alice.ID))
		assert.True(t, got.IsMember(bob.ID))
		assert.False(t, got.IsAdmin(bob.ID))
		m, _ := got.Member(bob.ID)
		assert.Equal(t, "Bob", m.Snapshot.Name)
	})

	t.Run("missing group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("add and remove members", func(t *testing.T) {
		member := models.GroupMember{UserID: carol.ID, Snapshot: carol.Snapshot(), Role: models.RoleMember}
		require.NoError(t, store.AddGroupMember(ctx, group.ID, member))
		require.NoError(t, store.AddGroupMember(ctx, group.ID, member), "re-adding is a no-op")

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, got.Members, 3)

		require.NoError(t, store.RemoveGroupMember(ctx, group.ID, bob.ID))
		require.NoError(t, store.RemoveGroupMember(ctx, group.ID, bob.ID))

		got, err = store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{alice.ID, carol.ID}, got.MemberIDs())
	})

	t.Run("list by member", func(t *testing.T) {
		other := &models.Group{
			Name:      "Flat",
			CreatedBy: carol.ID,
			Members:   []models.GroupMember{{UserID: carol.ID, Snapshot: carol.Snapshot(), Role: models.RoleAdmin}},
		}
		require.NoError(t, store.CreateGroup(ctx, other))

		groups, err := store.ListGroupsByMember(ctx, carol.ID)
		require.NoError(t, err)
		assert.Len(t, groups, 2)

		groups, err = store.ListGroupsByMember(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Members, 2)

		groups, err = store.ListGroupsByMember(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, groups)
	})
}

func TestLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	split := func(u *models.User, amount float64, paid bool) models.Split {
		return models.Split{UserID: u.ID, Snapshot: u.Snapshot(), Amount: amount, Paid: paid}
	}

	dinner := &models.Expense{
		Description:   "Dinner",
		Amount:        30,
		Category:      "Food",
		Date:          100,
		PayerID:       alice.ID,
		PayerSnapshot: alice.Snapshot(),
		Policy:        models.SplitEqual,
		Splits:        []models.Split{split(bob, 15, false), split(alice, 15, true)},
		CreatedBy:     alice.ID,
	}
	require.NoError(t, store.CreateExpense(ctx, dinner))
	assert.NotEmpty(t, dinner.ID)

	taxi := &models.Expense{
		Description:   "Taxi",
		Amount:        12,
		Category:      models.DefaultCategory,
		Date:          200,
		PayerID:       carol.ID,
		PayerSnapshot: carol.Snapshot(),
		Policy:        models.SplitEqual,
		Splits:        []models.Split{split(carol, 6, true), split(alice, 6, false)},
		GroupID:       "g1",
		CreatedBy:     carol.ID,
	}
	require.NoError(t, store.CreateExpense(ctx, taxi))

	t.Run("get expense preserves split order", func(t *testing.T) {
		got, err := store.GetExpense(ctx, dinner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dinner", got.Description)
		assert.Equal(t, models.SplitEqual, got.Policy)
		assert.Empty(t, got.GroupID)
		require.Len(t, got.Splits, 2)
		assert.Equal(t, bob.ID, got.Splits[0].UserID)
		assert.False(t, got.Splits[0].Paid)
		assert.True(t, got.Splits[1].Paid)
		assert.Equal(t, "Bob", got.Splits[0].Snapshot.Name)
	})

	t.Run("missing expense", func(t *testing.T) {
		_, err := store.GetExpense(ctx, "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("filters", func(t *testing.T) {
		all, err := store.ListExpenses(ctx, storage.ExpenseFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, taxi.ID, all[0].ID, "newest first")

		oneToOne, err := store.ListExpenses(ctx, storage.ExpenseFilter{OneToOne: true})
		require.NoError(t, err)
		require.Len(t, oneToOne, 1)
		assert.Equal(t, dinner.ID, oneToOne[0].ID)

		grouped, err := store.ListExpenses(ctx, storage.ExpenseFilter{GroupID: "g1"})
		require.NoError(t, err)
		require.Len(t, grouped, 1)
		assert.Equal(t, "g1", grouped[0].GroupID)

		pair, err := store.ListExpenses(ctx, storage.ExpenseFilter{Between: storage.Between(bob.ID, alice.ID)})
		require.NoError(t, err)
		require.Len(t, pair, 1)
		assert.Equal(t, dinner.ID, pair[0].ID)

		involving, err := store.ListExpenses(ctx, storage.ExpenseFilter{InvolvingID: bob.ID})
		require.NoError(t, err)
		assert.Len(t, involving, 1)

		ranged, err := store.ListExpenses(ctx, storage.ExpenseFilter{From: 150})
		require.NoError(t, err)
		require.Len(t, ranged, 1)
		assert.Equal(t, taxi.ID, ranged[0].ID)

		none, err := store.ListExpenses(ctx, storage.ExpenseFilter{PayerID: bob.ID})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("settlements", func(t *testing.T) {
		payment := &models.Settlement{
			Amount:            15,
			Note:              "dinner",
			Date:              300,
			PayerID:           bob.ID,
			PayerSnapshot:     bob.Snapshot(),
			ReceiverID:        alice.ID,
			ReceiverSnapshot:  alice.Snapshot(),
			RelatedExpenseIDs: []string{dinner.ID},
			CreatedBy:         bob.ID,
		}
		require.NoError(t, store.CreateSettlement(ctx, payment))
		assert.NotEmpty(t, payment.ID)

		grouped := &models.Settlement{
			Amount:     6,
			Date:       400,
			PayerID:    alice.ID,
			ReceiverID: carol.ID,
			GroupID:    "g1",
			CreatedBy:  alice.ID,
		}
		require.NoError(t, store.CreateSettlement(ctx, grouped))

		pair, err := store.ListSettlements(ctx, storage.SettlementFilter{
			OneToOne: true,
			Between:  storage.Between(alice.ID, bob.ID),
		})
		require.NoError(t, err)
		require.Len(t, pair, 1)
		assert.Equal(t, "dinner", pair[0].Note)
		assert.Equal(t, []string{dinner.ID}, pair[0].RelatedExpenseIDs)
		assert.Equal(t, "Alice", pair[0].ReceiverSnapshot.Name)

		involving, err := store.ListSettlements(ctx, storage.SettlementFilter{InvolvingID: alice.ID})
		require.NoError(t, err)
		require.Len(t, involving, 2)
		assert.Equal(t, grouped.ID, involving[0].ID)
		assert.Empty(t, involving[0].RelatedExpenseIDs)

		inGroup, err := store.ListSettlements(ctx, storage.SettlementFilter{GroupID: "g1"})
		require.NoError(t, err)
		assert.Len(t, inGroup, 1)
	})
}
