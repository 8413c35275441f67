package favorites

import "errors"

var (
	// ErrPostNotFound indicates the post being favorited doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound indicates the favoriting user no longer exists
	ErrUserNotFound = errors.New("user not found")
)
