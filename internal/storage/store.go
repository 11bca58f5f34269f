// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// UserStore defines user persistence operations.
type UserStore interface {
	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil if no user has this email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil, nil if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID.
	// Missing users are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns every user ordered by ID.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// GroupStore defines group persistence operations.
type GroupStore interface {
	// CreateGroup persists a new group with its members.
	// The group.ID and CreatedAt fields are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns an error wrapping models.ErrNotFound if the group does
	// not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns every group userID belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember inserts a member. Adding an existing member is a no-op.
	AddGroupMember(ctx context.Context, groupID string, member models.GroupMember) error

	// RemoveGroupMember deletes a member. Removing a non-member is a no-op.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error
}

// ExpenseFilter selects expenses. Zero-valued fields do not filter.
type ExpenseFilter struct {
	// GroupID restricts to one group.
	GroupID string

	// OneToOne restricts to expenses without a group.
	OneToOne bool

	PayerID   string
	CreatedBy string

	// InvolvingID restricts to expenses the user paid for or shares.
	InvolvingID string

	// Between restricts to expenses where one of the two users paid and the
	// other has a split.
	Between [2]string

	// From and To bound Date (inclusive), as Unix timestamps.
	From int64
	To   int64
}

// SettlementFilter selects settlements. Zero-valued fields do not filter.
type SettlementFilter struct {
	GroupID  string
	OneToOne bool

	PayerID    string
	ReceiverID string

	// InvolvingID restricts to settlements the user paid or received.
	InvolvingID string

	// Between restricts to settlements between two users in either direction.
	Between [2]string

	From int64
	To   int64
}

// LedgerStore defines expense and settlement persistence operations.
// Records are append-only.
type LedgerStore interface {
	// CreateExpense persists an expense and its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense returns an error wrapping models.ErrNotFound if missing.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns matching expenses, newest first.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error)

	// CreateSettlement persists a settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements returns matching settlements, newest first.
	ListSettlements(ctx context.Context, filter SettlementFilter) ([]models.Settlement, error)
}

// Store is the full storage surface used by the ledger.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the ledger or service layers.
type Store interface {
	UserStore
	GroupStore
	LedgerStore

	// Close releases any resources held by the store.
	Close() error
}

// Between builds an ExpenseFilter/SettlementFilter pair value.
func Between(a, b string) [2]string {
	return [2]string{a, b}
}
