package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[ledgerv1.CreateGroupRequest]) (*connect.Response[ledgerv1.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		Category:    strings.TrimSpace(req.Msg.Category),
		CreatedBy:   userID,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group, req.Msg.MemberIDs); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	members, err := s.members(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ledgerv1.CreateGroupResponse{Group: toAPIGroup(group, members)}), nil
}

// GetGroup retrieves a group with its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[ledgerv1.GetGroupRequest]) (*connect.Response[ledgerv1.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	members, err := s.members(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&ledgerv1.GetGroupResponse{Group: toAPIGroup(group, members)}), nil
}

// ListGroups returns the groups the caller belongs to. Members are not included.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ledgerv1.ListGroupsRequest]) (*connect.Response[ledgerv1.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*ledgerv1.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group, nil)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&ledgerv1.ListGroupsResponse{Groups: out}), nil
}

// AddMember adds a user, by ID or email, to a group the caller belongs to.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[ledgerv1.AddMemberRequest]) (*connect.Response[ledgerv1.AddMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	var user *models.User
	switch {
	case req.Msg.UserID != "":
		user, err = s.store.GetUserByID(ctx, req.Msg.UserID)
	case req.Msg.Email != "":
		user, err = s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Msg.Email)))
	default:
		return nil, invalidArgument("user_id or email is required")
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	membership, err := s.store.AddGroupMember(ctx, req.Msg.GroupID, user.ID)
	if err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupID, "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupID, "user_id", user.ID)

	return connect.NewResponse(&ledgerv1.AddMemberResponse{Member: &ledgerv1.Member{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		JoinedAt:    membership.JoinedAt,
	}}), nil
}

func (s *GroupService) members(ctx context.Context, groupID string) ([]*ledgerv1.Member, error) {
	memberships, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	ids := make([]string, len(memberships))
	for i, m := range memberships {
		ids[i] = m.UserID
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, toConnectError(err)
	}

	members := make([]*ledgerv1.Member, 0, len(memberships))
	for _, m := range memberships {
		user, ok := users[m.UserID]
		if !ok {
			return nil, connect.NewError(connect.CodeInternal, errors.New("membership references a missing user"))
		}
		members = append(members, &ledgerv1.Member{
			UserID:      user.ID,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			JoinedAt:    m.JoinedAt,
		})
	}
	return members, nil
}
