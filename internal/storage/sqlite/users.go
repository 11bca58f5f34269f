package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/query"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := execSQL(ctx, s.db, s.qb.InsertUser(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, sq.Eq{"email": email})
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *SQLiteStore) getUser(ctx context.Context, where sq.Sqlizer) (*models.User, error) {
	row, err := s.queryRow(ctx, s.qb.SelectUsers(where))
	if err != nil {
		return nil, err
	}

	user, err := query.ScanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	if len(ids) == 0 {
		return users, nil
	}

	list, err := s.listUsers(ctx, sq.Eq{"id": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	for _, u := range list {
		users[u.ID] = u
	}
	return users, nil
}

// ListUsers returns every user.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.listUsers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *SQLiteStore) listUsers(ctx context.Context, where sq.Sqlizer) ([]*models.User, error) {
	rows, err := s.queryRows(ctx, s.qb.SelectUsers(where))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := query.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
