package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/query"
)

// CreateGroup persists a new group with its members.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := execSQL(ctx, tx, s.qb.InsertGroup(group)); err != nil {
			return fmt.Errorf("insert group: %w", err)
		}
		for i := range group.Members {
			if group.Members[i].JoinedAt == 0 {
				group.Members[i].JoinedAt = group.CreatedAt
			}
			if err := execSQL(ctx, tx, s.qb.InsertMember(group.ID, group.Members[i])); err != nil {
				return fmt.Errorf("insert member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group with its members.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row, err := s.queryRow(ctx, s.qb.SelectGroup(groupID))
	if err != nil {
		return nil, err
	}
	group, err := query.ScanGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if err := s.loadMembers(ctx, []*models.Group{group}); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsByMember returns the groups userID belongs to, oldest first.
func (s *Store) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.queryRows(ctx, s.qb.SelectGroupsByMember(userID))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group, err := query.ScanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	if err := s.loadMembers(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddGroupMember adds a member; an existing membership is left unchanged.
func (s *Store) AddGroupMember(ctx context.Context, groupID string, member models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	if err := execSQL(ctx, s.pool, s.qb.InsertMember(groupID, member)); err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

// RemoveGroupMember removes a member.
func (s *Store) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	if err := execSQL(ctx, s.pool, s.qb.DeleteMember(groupID, userID)); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

func (s *Store) loadMembers(ctx context.Context, groups []*models.Group) error {
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
		return fmt.Errorf("query group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		groupID, m, err := query.ScanMember(rows)
		if err != nil {
			return fmt.Errorf("scan group member: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Members = append(g.Members, m)
		}
	}
	return rows.Err()
}
