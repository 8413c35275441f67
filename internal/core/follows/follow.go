package follows

import "time"

// Follow is a directed edge: FollowerID follows FollowedID
type Follow struct {
	CreatedAt  time.Time `json:"created" db:"created_at"`
	ID         int64     `json:"id" db:"id"`
	FollowerID int64     `json:"follower" db:"follower_id"`
	FollowedID int64     `json:"followed" db:"followed_id"`
}

// CreateFollowRequest is the body of a follow request.
// The follower is always the authenticated caller; any client-sent follower is ignored.
type CreateFollowRequest struct {
	FollowedID int64 `json:"followed"`
}

// FollowFilter narrows ListFollows. Zero fields match everything.
type FollowFilter struct {
	FollowerID int64
	FollowedID int64
}
