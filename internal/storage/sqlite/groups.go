package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage"
)

// CreateGroup persists a new group and its member rows in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	stamp := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, updated_at, is_deleted) VALUES (?, ?, ?, 0)",
		group.ID, group.Name, stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, userID := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id) VALUES (?, ?)",
			group.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	group.UpdatedAt = fromNanos(stamp)
	group.IsDeleted = false
	return nil
}

// GroupForUser retrieves a single group the user is a member of.
// Tombstoned groups are still returned; non-membership and absence both
// surface as storage.ErrNotFound.
func (s *SQLiteStore) GroupForUser(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group := &models.Group{}
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.updated_at, g.is_deleted
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE g.id = ? AND m.user_id = ?
	`, groupID, userID).Scan(&group.ID, &group.Name, &updatedAt, &group.IsDeleted)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.UpdatedAt = fromNanos(updatedAt)

	if group.Members, err = s.groupMembers(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// GroupsForUser lists every group the user belongs to, tombstones included.
func (s *SQLiteStore) GroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.updated_at, g.is_deleted
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.updated_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var group models.Group
		var updatedAt int64
		if err := rows.Scan(&group.ID, &group.Name, &updatedAt, &group.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		group.UpdatedAt = fromNanos(updatedAt)
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for i := range groups {
		if groups[i].Members, err = s.groupMembers(ctx, groups[i].ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// UpdateGroup replaces the group's name and member set and re-stamps UpdatedAt.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	stamp := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE groups SET name = ?, updated_at = ? WHERE id = ?",
		group.Name, stamp, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}
	for _, userID := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id) VALUES (?, ?)",
			group.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	group.UpdatedAt = fromNanos(stamp)
	return nil
}

// SoftDeleteGroup marks the group as a tombstone. Idempotent: deleting an
// already-deleted group only advances UpdatedAt.
func (s *SQLiteStore) SoftDeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE groups SET is_deleted = 1, updated_at = ? WHERE id = ?",
		now(), groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft-delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) groupMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY user_id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}
