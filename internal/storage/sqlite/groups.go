package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateGroup persists a new group together with its initial memberships.
// The creator always becomes a member; duplicate member IDs are ignored.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, memberIDs []string) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ok, err := exists(ctx, tx, "users", group.CreatedBy)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("creator %s: %w", group.CreatedBy, storage.ErrInvalidReference)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, description, category, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.Description, group.Category, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	seen := make(map[string]bool, len(memberIDs)+1)
	for _, userID := range append([]string{group.CreatedBy}, memberIDs...) {
		if seen[userID] {
			continue
		}
		seen[userID] = true

		ok, err := exists(ctx, tx, "users", userID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("member %s: %w", userID, storage.ErrInvalidReference)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
			group.ID, userID, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, category, created_by, created_at FROM groups WHERE id = ?`,
		groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &group.Category, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroupsForUser returns every group the user is a member of, newest first.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.description, g.category, g.created_by, g.created_at
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC, g.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		g := &models.Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Category, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// AddGroupMember adds a user to a group.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	m := &models.Membership{GroupID: groupID, UserID: userID, JoinedAt: time.Now().Unix()}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
		m.GroupID, m.UserID, m.JoinedAt,
	)
	switch {
	case isUniqueViolation(err):
		return nil, fmt.Errorf("user %s already in group %s: %w", userID, groupID, storage.ErrConflict)
	case isForeignKeyViolation(err):
		return nil, fmt.Errorf("group %s or user %s: %w", groupID, userID, storage.ErrInvalidReference)
	case err != nil:
		return nil, fmt.Errorf("failed to add group member: %w", err)
	}

	return m, nil
}

// ListGroupMembers returns the memberships of a group in join order.
func (s *SQLiteStore) ListGroupMembers(ctx context.Context, groupID string) ([]*models.Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, user_id, joined_at FROM group_members
		 WHERE group_id = ? ORDER BY joined_at, user_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []*models.Membership
	for rows.Next() {
		m := &models.Membership{}
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}

	return members, nil
}

// IsGroupMember reports whether the user belongs to the group.
func (s *SQLiteStore) IsGroupMember(ctx context.Context, groupID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return true, nil
}
