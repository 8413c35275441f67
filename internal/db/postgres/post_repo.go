package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Quill/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// postColumns is the select list shared by every post read, joined with the owner
const postColumns = `
	p.id, p.title, p.content, p.slug, p.category, p.created,
	p.thumbnail, p.is_public, p.user_id, u.username`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	post := &posts.Post{}
	var thumbnail sql.NullString
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Slug, &post.Category, &post.Created,
		&thumbnail, &post.IsPublic, &post.UserID, &post.OwnerUsername,
	)
	if err != nil {
		return nil, err
	}
	if thumbnail.Valid {
		post.Thumbnail = &thumbnail.String
	}
	return post, nil
}

// Create inserts a post and fills ID, Created and OwnerUsername
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		WITH inserted AS (
			INSERT INTO posts (title, content, slug, category, thumbnail, is_public, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created, user_id
		)
		SELECT i.id, i.created, u.username
		FROM inserted i
		JOIN users u ON u.id = i.user_id`

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Slug, string(post.Category),
		nullableString(post.Thumbnail), post.IsPublic, post.UserID,
	).Scan(&post.ID, &post.Created, &post.OwnerUsername)
	if err != nil {
		switch {
		case isUniqueViolation(err, "posts_slug_key"):
			return posts.ErrSlugTaken
		case isForeignKeyViolation(err, "fk_posts_user"):
			return posts.ErrOwnerNotFound
		case isCheckViolation(err, "posts_category_check"):
			return posts.NewValidationError("category", "invalid category")
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetBySlug retrieves a post by its slug
func (r *postgresPostRepo) GetBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	query := `SELECT` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.slug = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return post, nil
}

// SlugExists reports whether any post holds slug
func (r *postgresPostRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// Update writes the mutable fields of a post and refreshes it from the stored row.
// slug, created and user_id are never written.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		WITH updated AS (
			UPDATE posts
			SET title = $2, content = $3, category = $4, thumbnail = $5, is_public = $6
			WHERE id = $1
			RETURNING *
		)
		SELECT` + postColumns + `
		FROM updated p
		JOIN users u ON u.id = p.user_id`

	updated, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, string(post.Category),
		nullableString(post.Thumbnail), post.IsPublic,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return posts.ErrNotFound
	}
	if err != nil {
		if isCheckViolation(err, "posts_category_check") {
			return posts.NewValidationError("category", "invalid category")
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	*post = *updated
	return nil
}

// Delete removes a post. Favorites cascade.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// List returns posts newest first, ties broken by id
func (r *postgresPostRepo) List(ctx context.Context, opts posts.ListOptions) ([]*posts.Post, error) {
	var (
		where []string
		args  []interface{}
	)
	if opts.Category != "" {
		args = append(args, string(opts.Category))
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)))
	}

	query := `SELECT` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY p.created DESC, p.id DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf("\n\t\tLIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*posts.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}
