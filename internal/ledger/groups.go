package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/cache"
	"github.com/mmynk/splitledger/internal/models"
)

// GroupInput is the data needed to create a group.
type GroupInput struct {
	Name        string
	Description string
	MemberIDs   []string
}

// CreateGroup creates a group with actorID as its admin. Member IDs are
// deduplicated and must all exist.
func (l *Ledger) CreateGroup(ctx context.Context, actorID string, in GroupInput) (*models.Group, error) {
	const op = "create_group"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fail(op, models.NewValidationError("name", "group name cannot be empty"))
	}

	ids := []string{actorID}
	seen := map[string]bool{actorID: true}
	for _, id := range in.MemberIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	users, err := l.resolveUsers(ctx, ids)
	if err != nil {
		return nil, fail(op, err)
	}

	now := l.now().Unix()
	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   actorID,
		CreatedAt:   now,
	}
	for _, id := range ids {
		role := models.RoleMember
		if id == actorID {
			role = models.RoleAdmin
		}
		group.Members = append(group.Members, models.GroupMember{
			UserID:   id,
			Snapshot: users[id].Snapshot(),
			Role:     role,
			JoinedAt: now,
		})
	}

	if err := l.store.CreateGroup(ctx, group); err != nil {
		return nil, fail(op, err)
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members), "user_id", actorID)
	return group, nil
}

// GetGroup returns a group to one of its members.
func (l *Ledger) GetGroup(ctx context.Context, actorID, groupID string) (*models.Group, error) {
	const op = "get_group"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}
	group, err := l.groupForMember(ctx, groupID, actorID)
	if err != nil {
		return nil, fail(op, err)
	}
	return group, nil
}

// AddGroupMember adds userID to a group. Only admins may add members.
// Adding an existing member changes nothing.
func (l *Ledger) AddGroupMember(ctx context.Context, actorID, groupID, userID string) (*models.Group, error) {
	const op = "add_group_member"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}
	if userID == "" {
		return nil, fail(op, models.NewValidationError("user_id", "is required"))
	}

	group, err := l.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fail(op, err)
	}
	if !group.IsAdmin(actorID) {
		return nil, fail(op, models.Forbidden("only group admins can add members"))
	}
	if group.IsMember(userID) {
		return group, nil
	}

	user, err := l.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fail(op, err)
	}
	if user == nil {
		return nil, fail(op, models.NotFound("user", userID))
	}

	member := models.GroupMember{
		UserID:   userID,
		Snapshot: user.Snapshot(),
		Role:     models.RoleMember,
		JoinedAt: l.now().Unix(),
	}
	if err := l.store.AddGroupMember(ctx, groupID, member); err != nil {
		return nil, fail(op, err)
	}
	l.invalidate(ctx, cache.GroupKey(groupID))

	slog.Info("Group member added", "group_id", groupID, "member_id", userID, "user_id", actorID)
	return l.store.GetGroup(ctx, groupID)
}

// RemoveGroupMember removes userID from a group. Admins may remove anyone
// but the creator; members may only remove themselves. Removing a
// non-member changes nothing. Past records keep referencing the user.
func (l *Ledger) RemoveGroupMember(ctx context.Context, actorID, groupID, userID string) (*models.Group, error) {
	const op = "remove_group_member"
	if err := requireActor(actorID); err != nil {
		return nil, fail(op, err)
	}
	if userID == "" {
		return nil, fail(op, models.NewValidationError("user_id", "is required"))
	}

	group, err := l.groupForMember(ctx, groupID, actorID)
	if err != nil {
		return nil, fail(op, err)
	}
	if userID != actorID && !group.IsAdmin(actorID) {
		return nil, fail(op, models.Forbidden("only group admins can remove other members"))
	}
	if userID == group.CreatedBy {
		return nil, fail(op, models.NewValidationError("user_id", "the group creator cannot be removed"))
	}
	if !group.IsMember(userID) {
		return group, nil
	}

	if err := l.store.RemoveGroupMember(ctx, groupID, userID); err != nil {
		return nil, fail(op, err)
	}
	l.invalidate(ctx, cache.GroupKey(groupID))

	slog.Info("Group member removed", "group_id", groupID, "member_id", userID, "user_id", actorID)
	return l.store.GetGroup(ctx, groupID)
}
