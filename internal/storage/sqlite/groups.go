package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/query"
)

// CreateGroup persists a new group with its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := execSQL(ctx, tx, s.qb.InsertGroup(group)); err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		for i := range group.Members {
			if group.Members[i].JoinedAt == 0 {
				group.Members[i].JoinedAt = group.CreatedAt
			}
			if err := execSQL(ctx, tx, s.qb.InsertMember(group.ID, group.Members[i])); err != nil {
				return fmt.Errorf("failed to insert member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group with its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row, err := s.queryRow(ctx, s.qb.SelectGroup(groupID))
	if err != nil {
		return nil, err
	}

	group, err := query.ScanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadMembers(ctx, []*models.Group{group}); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsByMember returns the groups userID belongs to, oldest first.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.queryRows(ctx, s.qb.SelectGroupsByMember(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := query.ScanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	rows.Close()

	if err := s.loadMembers(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddGroupMember adds a member to a group.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID string, member models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	if err := execSQL(ctx, s.db, s.qb.InsertMember(groupID, member)); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveGroupMember removes a member from a group.
func (s *SQLiteStore) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	if err := execSQL(ctx, s.db, s.qb.DeleteMember(groupID, userID)); err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, groups []*models.Group) error {
	if len(groups) == 0 {
		return nil
	}

	byID := make(map[string]*models.Group, len(groups))
	ids := make([]string, len(groups))
	for i, g := range groups {
		byID[g.ID] = g
		ids[i] = g.ID
	}

	rows, err := s.queryRows(ctx, s.qb.SelectMembers(ids))
	if err != nil {
		return fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		groupID, m, err := query.ScanMember(rows)
		if err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Members = append(g.Members, m)
		}
	}
	return rows.Err()
}
