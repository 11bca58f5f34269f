package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/query"
)

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := execSQL(ctx, s.pool, s.qb.InsertUser(user)); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByEmail returns nil, nil when no user has this email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, sq.Eq{"email": email})
}

// GetUserByID returns nil, nil when the user does not exist.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Store) getUser(ctx context.Context, where sq.Sqlizer) (*models.User, error) {
	row, err := s.queryRow(ctx, s.qb.SelectUsers(where))
	if err != nil {
		return nil, err
	}
	user, err := query.ScanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUsersByIDs returns existing users keyed by ID.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	if len(ids) == 0 {
		return users, nil
	}
	list, err := s.listUsers(ctx, sq.Eq{"id": ids})
	if err != nil {
		return nil, fmt.Errorf("get users by IDs: %w", err)
	}
	for _, u := range list {
		users[u.ID] = u
	}
	return users, nil
}

// ListUsers returns every user.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.listUsers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) listUsers(ctx context.Context, where sq.Sqlizer) ([]*models.User, error) {
	rows, err := s.queryRows(ctx, s.qb.SelectUsers(where))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := query.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
