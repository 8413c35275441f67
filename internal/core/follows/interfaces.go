package follows

import "context"

// Service defines the business logic interface for the follow graph
type Service interface {
	// Follow creates the edge followerID -> followedID.
	// Self-follow, unknown target and duplicate edges are validation errors.
	Follow(ctx context.Context, followerID, followedID int64) (*Follow, error)

	// Unfollow removes the edge followerID -> followedID, or ErrFollowNotFound
	Unfollow(ctx context.Context, followerID, followedID int64) error

	// DeleteFollow removes an edge by id. Only its follower may do so.
	DeleteFollow(ctx context.Context, requesterID, id int64) error

	GetFollow(ctx context.Context, id int64) (*Follow, error)
	ListFollows(ctx context.Context, filter FollowFilter) ([]*Follow, error)
}

// Repository defines the data access interface for follows.
// Create translates the table's constraints into ErrSelfFollow, ErrAlreadyFollowing,
// ErrFollowedNotFound and ErrFollowerNotFound.
type Repository interface {
	Create(ctx context.Context, follow *Follow) error
	GetByID(ctx context.Context, id int64) (*Follow, error)
	Delete(ctx context.Context, id int64) error
	DeleteByPair(ctx context.Context, followerID, followedID int64) error

	// List returns edges ordered by created_at DESC, id DESC
	List(ctx context.Context, filter FollowFilter) ([]*Follow, error)
}
