package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage"
)

// callerID returns the authenticated user from the context.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errNotAuthed)
	}
	return userID, nil
}

// requireMember checks that the group exists and userID belongs to it.
func requireMember(ctx context.Context, store storage.GroupStore, groupID, userID string) error {
	if strings.TrimSpace(groupID) == "" {
		return invalidArgument("group_id is required")
	}
	if _, err := store.GetGroup(ctx, groupID); err != nil {
		return toConnectError(err)
	}
	ok, err := store.IsGroupMember(ctx, groupID, userID)
	if err != nil {
		return toConnectError(err)
	}
	if !ok {
		return connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return nil
}
