package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/rpc"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	ledger *ledger.Ledger
	logger *slog.Logger
}

var _ rpc.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a GroupService over l.
func NewGroupService(l *ledger.Ledger, logger *slog.Logger) *GroupService {
	return &GroupService{ledger: l, logger: logger}
}

// CreateGroup creates a new group with the caller as admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[rpc.CreateGroupRequest]) (*connect.Response[rpc.GroupResponse], error) {
	actorID := middleware.GetUserID(ctx)
	s.logger.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	group, err := s.ledger.CreateGroup(ctx, actorID, ledger.GroupInput{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		MemberIDs:   req.Msg.MemberIDs,
	})
	if err != nil {
		return nil, connectError(s.logger, "CreateGroup failed", err, "user_id", actorID)
	}

	return connect.NewResponse(&rpc.GroupResponse{Group: groupToRPC(group)}), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[rpc.GetGroupRequest]) (*connect.Response[rpc.GroupResponse], error) {
	actorID := middleware.GetUserID(ctx)
	group, err := s.ledger.GetGroup(ctx, actorID, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(s.logger, "GetGroup failed", err, "user_id", actorID, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&rpc.GroupResponse{Group: groupToRPC(group)}), nil
}

// AddMember adds a user to a group. Admins only.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[rpc.AddMemberRequest]) (*connect.Response[rpc.GroupResponse], error) {
	actorID := middleware.GetUserID(ctx)
	group, err := s.ledger.AddGroupMember(ctx, actorID, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, connectError(s.logger, "AddMember failed", err, "user_id", actorID, "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)
	}

	return connect.NewResponse(&rpc.GroupResponse{Group: groupToRPC(group)}), nil
}

// RemoveMember removes a user from a group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[rpc.RemoveMemberRequest]) (*connect.Response[rpc.GroupResponse], error) {
	actorID := middleware.GetUserID(ctx)
	group, err := s.ledger.RemoveGroupMember(ctx, actorID, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, connectError(s.logger, "RemoveMember failed", err, "user_id", actorID, "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)
	}

	return connect.NewResponse(&rpc.GroupResponse{Group: groupToRPC(group)}), nil
}
