package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Quill/internal/core/follows"
)

type postgresFollowRepo struct {
	db *sql.DB
}

// NewFollowRepository creates a new PostgreSQL follow repository
func NewFollowRepository(db *sql.DB) follows.Repository {
	return &postgresFollowRepo{db: db}
}

// Create inserts a follow edge, translating the table's constraints into domain errors
func (r *postgresFollowRepo) Create(ctx context.Context, follow *follows.Follow) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, follow.FollowerID, follow.FollowedID).
		Scan(&follow.ID, &follow.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "follows_follower_followed_key"):
			return follows.ErrAlreadyFollowing
		case isCheckViolation(err, "follows_no_self_follow"):
			return follows.ErrSelfFollow
		case isForeignKeyViolation(err, "fk_follows_followed"):
			return follows.ErrFollowedNotFound
		case isForeignKeyViolation(err, "fk_follows_follower"):
			return follows.ErrFollowerNotFound
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// GetByID retrieves a follow edge
func (r *postgresFollowRepo) GetByID(ctx context.Context, id int64) (*follows.Follow, error) {
	follow := &follows.Follow{}
	query := `SELECT id, follower_id, followed_id, created_at FROM follows WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&follow.ID, &follow.FollowerID, &follow.FollowedID, &follow.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, follows.ErrFollowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get follow: %w", err)
	}
	return follow, nil
}

// Delete removes a follow edge by id
func (r *postgresFollowRepo) Delete(ctx context.Context, id int64) error {
	return r.execDelete(ctx, `DELETE FROM follows WHERE id = $1`, id)
}

// DeleteByPair removes the edge follower -> followed
func (r *postgresFollowRepo) DeleteByPair(ctx context.Context, followerID, followedID int64) error {
	return r.execDelete(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`, followerID, followedID)
}

func (r *postgresFollowRepo) execDelete(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return follows.ErrFollowNotFound
	}
	return nil
}

// List returns follow edges newest first, optionally filtered by either end
func (r *postgresFollowRepo) List(ctx context.Context, filter follows.FollowFilter) ([]*follows.Follow, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.FollowerID > 0 {
		args = append(args, filter.FollowerID)
		where = append(where, fmt.Sprintf("follower_id = $%d", len(args)))
	}
	if filter.FollowedID > 0 {
		args = append(args, filter.FollowedID)
		where = append(where, fmt.Sprintf("followed_id = $%d", len(args)))
	}

	query := `SELECT id, follower_id, followed_id, created_at FROM follows`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*follows.Follow, 0)
	for rows.Next() {
		follow := &follows.Follow{}
		if err := rows.Scan(&follow.ID, &follow.FollowerID, &follow.FollowedID, &follow.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan follow: %w", err)
		}
		result = append(result, follow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follows: %w", err)
	}

	return result, nil
}
