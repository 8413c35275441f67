package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Quill/internal/core/favorites"
)

type postgresFavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new PostgreSQL favorite repository
func NewFavoriteRepository(db *sql.DB) favorites.Repository {
	return &postgresFavoriteRepo{db: db}
}

// Create inserts a favorite edge.
// ON CONFLICT DO NOTHING returns no row for an existing pair, which is reported as created=false.
func (r *postgresFavoriteRepo) Create(ctx context.Context, userID, postID int64) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, postID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		switch {
		case isForeignKeyViolation(err, "fk_favorites_post"):
			return false, favorites.ErrPostNotFound
		case isForeignKeyViolation(err, "fk_favorites_user"):
			return false, favorites.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}

	return true, nil
}

// Delete removes a favorite edge, reporting whether one existed
func (r *postgresFavoriteRepo) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return rowsAffected > 0, nil
}

// ListByUser returns a user's favorites joined with their posts, newest first
func (r *postgresFavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]*favorites.FavoriteView, error) {
	query := `
		SELECT f.post_id, p.slug, p.title, f.created_at
		FROM favorites f
		JOIN posts p ON p.id = f.post_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*favorites.FavoriteView, 0)
	for rows.Next() {
		view := &favorites.FavoriteView{}
		if err := rows.Scan(&view.PostID, &view.Slug, &view.Title, &view.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return result, nil
}
