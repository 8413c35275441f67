package follows

import (
	"errors"
	"fmt"
)

var (
	// ErrFollowNotFound indicates no such follow edge exists
	ErrFollowNotFound = errors.New("follow not found")

	// ErrForbidden indicates the requester is not the follower on the edge
	ErrForbidden = errors.New("only the follower may remove this follow")

	// ErrSelfFollow is returned by the repository when the no-self-follow check rejects a row
	ErrSelfFollow = errors.New("users cannot follow themselves")

	// ErrAlreadyFollowing is returned by the repository when the pair already exists
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrFollowedNotFound is returned by the repository when the followed user doesn't exist
	ErrFollowedNotFound = errors.New("followed user not found")

	// ErrFollowerNotFound is returned by the repository when the follower no longer exists
	ErrFollowerNotFound = errors.New("follower not found")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
