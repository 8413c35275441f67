package favorites

import (
	"context"

	"Quill/internal/core/posts"
)

// Service defines the business logic interface for favorites
type Service interface {
	// FavoritePost records that requesterID favorited the post with slug.
	// Repeat calls are no-ops; the response reports whether a new edge was created.
	FavoritePost(ctx context.Context, requesterID int64, slug string) (*FavoriteResponse, error)

	// UnfavoritePost removes the edge if present. Missing edges are not an error.
	UnfavoritePost(ctx context.Context, requesterID int64, slug string) error

	// ListFavorites returns the user's favorites, newest first
	ListFavorites(ctx context.Context, userID int64) ([]*FavoriteView, error)
}

// Repository defines the data access interface for favorites
type Repository interface {
	// Create inserts the edge with ON CONFLICT DO NOTHING.
	// Returns created=false when the pair already existed.
	Create(ctx context.Context, userID, postID int64) (created bool, err error)

	// Delete removes the edge, reporting whether a row was removed
	Delete(ctx context.Context, userID, postID int64) (deleted bool, err error)

	ListByUser(ctx context.Context, userID int64) ([]*FavoriteView, error)
}

// PostLookup resolves a slug to a post. posts.Repository satisfies it.
type PostLookup interface {
	GetBySlug(ctx context.Context, slug string) (*posts.Post, error)
}
