package posts

import "context"

// Service defines the business logic interface for posts.
// Every write takes the authenticated requester's user id explicitly.
type Service interface {
	// CreatePost validates the request, allocates a unique slug and stores the post
	// with requesterID as owner.
	CreatePost(ctx context.Context, requesterID int64, req CreatePostRequest) (*Post, error)

	GetPost(ctx context.Context, slug string) (*Post, error)

	// UpdatePost applies req to the post. partial=false (PUT) requires title and content.
	// The slug is never recomputed.
	UpdatePost(ctx context.Context, requesterID int64, slug string, req UpdatePostRequest, partial bool) (*Post, error)

	DeletePost(ctx context.Context, requesterID int64, slug string) error

	// ListPosts returns every post, newest first
	ListPosts(ctx context.Context) ([]*Post, error)

	// ListRecent returns at most limit posts (capped at MaxRecentPosts), newest first,
	// optionally restricted to one category.
	ListRecent(ctx context.Context, category string, limit int) ([]*Post, error)

	// ListByCategory returns every post in a category. Unknown categories are a validation error.
	ListByCategory(ctx context.Context, category string) ([]*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a post and fills ID, Created and OwnerUsername.
	// Returns ErrSlugTaken when the slug unique constraint rejects the row.
	Create(ctx context.Context, post *Post) error

	GetBySlug(ctx context.Context, slug string) (*Post, error)

	// SlugExists is a point lookup used to pick slug candidates. It is advisory only;
	// the unique constraint is authoritative.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Update persists the mutable fields of post (title, content, category,
	// thumbnail, is_public) and refreshes it from the stored row.
	Update(ctx context.Context, post *Post) error

	// Delete removes a post by id. Favorites cascade.
	Delete(ctx context.Context, id int64) error

	// List returns posts ordered by created DESC, id DESC
	List(ctx context.Context, opts ListOptions) ([]*Post, error)
}
